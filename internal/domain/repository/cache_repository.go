package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/structure-inspection/internal/domain"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет значение из кеша
	Delete(ctx context.Context, key string) error

	// GetStructure получает структуру из кеша (nil, nil - промах)
	GetStructure(ctx context.Context, id uuid.UUID) (*domain.Structure, error)

	// SetStructure сохраняет структуру в кеше
	SetStructure(ctx context.Context, s *domain.Structure, ttl time.Duration) error

	// InvalidateStructure удаляет структуру и статистику владельца из кеша
	InvalidateStructure(ctx context.Context, id, ownerID uuid.UUID) error

	// GetStats получает статистику владельца из кеша
	GetStats(ctx context.Context, ownerID uuid.UUID) (*domain.Statistics, error)

	// SetStats сохраняет статистику владельца в кеше
	SetStats(ctx context.Context, ownerID uuid.UUID, stats *domain.Statistics, ttl time.Duration) error
}
