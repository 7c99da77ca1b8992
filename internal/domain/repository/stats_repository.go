package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/structure-inspection/internal/domain"
)

// StatsRepository определяет методы для получения статистики
type StatsRepository interface {
	// GetStatistics возвращает статистику по структурам владельца
	GetStatistics(ctx context.Context, ownerID uuid.UUID) (*domain.Statistics, error)
}
