package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/structure-inspection/internal/domain"
	"github.com/structure-inspection/internal/domain/repository"
)

type statsRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewStatsRepository создает новый экземпляр stats repository
func NewStatsRepository(db *DB, logger *zap.Logger) repository.StatsRepository {
	return &statsRepository{
		db:     db,
		logger: logger,
	}
}

// GetStatistics возвращает статистику по структурам владельца
func (r *statsRepository) GetStatistics(ctx context.Context, ownerID uuid.UUID) (*domain.Statistics, error) {
	stats := &domain.Statistics{
		LastUpdated: time.Now(),
	}

	structureStats, err := r.getStructureStats(ctx, ownerID)
	if err != nil {
		r.logger.Error("failed to get structure stats", zap.Error(err))
		return nil, fmt.Errorf("get structure stats: %w", err)
	}
	stats.Structures = *structureStats

	flatStats, err := r.getFlatStats(ctx, ownerID)
	if err != nil {
		r.logger.Error("failed to get flat stats", zap.Error(err))
		return nil, fmt.Errorf("get flat stats: %w", err)
	}
	stats.Flats = *flatStats

	return stats, nil
}

// getStructureStats - количество структур по статусам
func (r *statsRepository) getStructureStats(ctx context.Context, ownerID uuid.UUID) (*domain.StructureStats, error) {
	stats := &domain.StructureStats{
		ByStatus: make(map[string]int),
	}

	query := `
		SELECT status, COUNT(*) AS count
		FROM structures
		WHERE owner_id = $1
		GROUP BY status
	`

	rows, err := r.db.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query structure stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan structure stats: %w", err)
		}
		stats.ByStatus[status] = count
		stats.Total += count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("structure stats rows error: %w", err)
	}

	return stats, nil
}

// getFlatStats - количество помещений по итоговому состоянию
func (r *statsRepository) getFlatStats(ctx context.Context, ownerID uuid.UUID) (*domain.FlatStats, error) {
	stats := &domain.FlatStats{
		ByHealth: make(map[string]int),
	}

	query := `
		SELECT
			COALESCE(flat->'flat_overall_rating'->>'health_status', $2) AS health,
			COUNT(*) AS count
		FROM structures s
		CROSS JOIN LATERAL jsonb_array_elements(COALESCE(s.document->'floors', '[]'::jsonb)) AS floor
		CROSS JOIN LATERAL jsonb_array_elements(COALESCE(floor->'flats', '[]'::jsonb)) AS flat
		WHERE s.owner_id = $1
		GROUP BY health
	`

	rows, err := r.db.DB.QueryContext(ctx, query, ownerID, domain.UnratedHealthKey)
	if err != nil {
		return nil, fmt.Errorf("query flat stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var health string
		var count int
		if err := rows.Scan(&health, &count); err != nil {
			return nil, fmt.Errorf("scan flat stats: %w", err)
		}
		stats.ByHealth[health] = count
		stats.Total += count
		if health != domain.UnratedHealthKey {
			stats.Rated += count
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("flat stats rows error: %w", err)
	}

	return stats, nil
}
