package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/structure-inspection/internal/domain"
)

// StructureFilter - фильтр выборки структур аккаунта
type StructureFilter struct {
	OwnerID  uuid.UUID
	Statuses []domain.StructureStatus
	Limit    int
	Offset   int
}

// StructureRepository - хранилище структур. Дерево этажей и помещений
// записывается одним документом за операцию.
type StructureRepository interface {
	// Create сохраняет новую структуру
	Create(ctx context.Context, s *domain.Structure) error

	// GetByID возвращает структуру по UID (без проверки владельца)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Structure, error)

	// Save перезаписывает документ структуры целиком
	Save(ctx context.Context, s *domain.Structure) error

	// Delete удаляет структуру
	Delete(ctx context.Context, id uuid.UUID) error

	// List возвращает структуры владельца
	List(ctx context.Context, filter StructureFilter) ([]*domain.Structure, int, error)

	// ExistsIdentityNumber проверяет, занят ли номер любой структурой (всех владельцев)
	ExistsIdentityNumber(ctx context.Context, number string) (bool, error)

	// ListIdentityNumbersByPrefix возвращает номера с заданным префиксом локации
	ListIdentityNumbersByPrefix(ctx context.Context, prefix string) ([]string, error)

	// ListByGeohashPrefixes возвращает структуры владельца в указанных ячейках geohash
	ListByGeohashPrefixes(ctx context.Context, ownerID uuid.UUID, prefixes []string, limit int) ([]*domain.Structure, error)
}
