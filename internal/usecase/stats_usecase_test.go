package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/structure-inspection/internal/domain"
	"github.com/structure-inspection/internal/usecase"
)

func TestStatsUseCase_GetStatistics(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	stats := &domain.Statistics{
		Structures: domain.StructureStats{Total: 3, ByStatus: map[string]int{"draft": 3}},
		Flats:      domain.FlatStats{Total: 4, Rated: 1, ByHealth: map[string]int{"Good": 1, "unrated": 3}},
	}

	t.Run("cache hit", func(t *testing.T) {
		statsRepo := &MockStatsRepository{}
		cache := &MockCacheRepository{}
		uc := usecase.NewStatsUseCase(statsRepo, cache, zap.NewNop(), time.Minute)

		cache.On("GetStats", ctx, owner).Return(stats, nil)

		got, err := uc.GetStatistics(ctx, owner)

		require.NoError(t, err)
		assert.Equal(t, 3, got.Structures.Total)
		statsRepo.AssertNotCalled(t, "GetStatistics", mock.Anything, mock.Anything)
	})

	t.Run("cache miss loads and caches", func(t *testing.T) {
		statsRepo := &MockStatsRepository{}
		cache := &MockCacheRepository{}
		uc := usecase.NewStatsUseCase(statsRepo, cache, zap.NewNop(), time.Minute)

		cache.On("GetStats", ctx, owner).Return(nil, nil)
		statsRepo.On("GetStatistics", ctx, owner).Return(stats, nil)
		cache.On("SetStats", ctx, owner, stats, time.Minute).Return(nil)

		got, err := uc.GetStatistics(ctx, owner)

		require.NoError(t, err)
		assert.Equal(t, 1, got.Flats.Rated)
		cache.AssertExpectations(t)
	})

	t.Run("cache errors are not fatal", func(t *testing.T) {
		statsRepo := &MockStatsRepository{}
		cache := &MockCacheRepository{}
		uc := usecase.NewStatsUseCase(statsRepo, cache, zap.NewNop(), time.Minute)

		cache.On("GetStats", ctx, owner).Return(nil, errors.New("redis down"))
		statsRepo.On("GetStatistics", ctx, owner).Return(stats, nil)
		cache.On("SetStats", ctx, owner, stats, time.Minute).Return(errors.New("redis down"))

		got, err := uc.GetStatistics(ctx, owner)

		require.NoError(t, err)
		assert.Same(t, stats, got)
	})

	t.Run("database error", func(t *testing.T) {
		statsRepo := &MockStatsRepository{}
		cache := &MockCacheRepository{}
		uc := usecase.NewStatsUseCase(statsRepo, cache, zap.NewNop(), time.Minute)

		cache.On("GetStats", ctx, owner).Return(nil, nil)
		statsRepo.On("GetStatistics", ctx, owner).Return(nil, errors.New("db down"))

		_, err := uc.GetStatistics(ctx, owner)

		assert.Error(t, err)
	})
}
