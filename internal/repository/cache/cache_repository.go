package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/structure-inspection/internal/domain"
	"github.com/structure-inspection/internal/domain/repository"
)

const (
	structureKeyPrefix = "structure:"
	statsKeyPrefix     = "stats:owner:"
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func structureKey(id uuid.UUID) string {
	return structureKeyPrefix + id.String()
}

func statsKey(ownerID uuid.UUID) string {
	return statsKeyPrefix + ownerID.String()
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

// GetStructure получает документ структуры из кеша
func (r *cacheRepository) GetStructure(ctx context.Context, id uuid.UUID) (*domain.Structure, error) {
	data, err := r.Get(ctx, structureKey(id))
	if err != nil || data == nil {
		return nil, err
	}

	var s domain.Structure
	if err := json.Unmarshal(data, &s); err != nil {
		r.logger.Error("Failed to unmarshal structure from cache", zap.String("uid", id.String()), zap.Error(err))
		return nil, fmt.Errorf("unmarshal structure: %w", err)
	}

	return &s, nil
}

// SetStructure сохраняет документ структуры в кеше
func (r *cacheRepository) SetStructure(ctx context.Context, s *domain.Structure, ttl time.Duration) error {
	data, err := json.Marshal(s)
	if err != nil {
		r.logger.Error("Failed to marshal structure", zap.Error(err))
		return fmt.Errorf("marshal structure: %w", err)
	}

	return r.Set(ctx, structureKey(s.UID), data, ttl)
}

// InvalidateStructure удаляет документ и статистику владельца одним DEL
func (r *cacheRepository) InvalidateStructure(ctx context.Context, id, ownerID uuid.UUID) error {
	keys := []string{structureKey(id), statsKey(ownerID)}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		r.logger.Error("Failed to invalidate structure", zap.Strings("keys", keys), zap.Error(err))
		return fmt.Errorf("cache invalidate error: %w", err)
	}
	return nil
}

// GetStats получает статистику из кеша
func (r *cacheRepository) GetStats(ctx context.Context, ownerID uuid.UUID) (*domain.Statistics, error) {
	data, err := r.Get(ctx, statsKey(ownerID))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil // Cache miss
	}

	var stats domain.Statistics
	if err := json.Unmarshal(data, &stats); err != nil {
		r.logger.Error("Failed to unmarshal stats from cache", zap.Error(err))
		return nil, fmt.Errorf("unmarshal stats: %w", err)
	}

	return &stats, nil
}

// SetStats сохраняет статистику в кеше
func (r *cacheRepository) SetStats(ctx context.Context, ownerID uuid.UUID, stats *domain.Statistics, ttl time.Duration) error {
	data, err := json.Marshal(stats)
	if err != nil {
		r.logger.Error("Failed to marshal stats", zap.Error(err))
		return fmt.Errorf("marshal stats: %w", err)
	}

	return r.Set(ctx, statsKey(ownerID), data, ttl)
}
