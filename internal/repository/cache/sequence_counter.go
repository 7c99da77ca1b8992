package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/structure-inspection/internal/domain/repository"
)

const sequenceKeyPrefix = "identity:seq:"

type sequenceCounter struct {
	client *redis.Client
	logger *zap.Logger
}

// NewSequenceCounter - счётчик порядковых номеров на Redis INCR
func NewSequenceCounter(redis *Redis) repository.SequenceCounter {
	return &sequenceCounter{
		client: redis.Client(),
		logger: redis.logger,
	}
}

// Next увеличивает счётчик префикса через INCR. Отсутствующий счётчик
// сначала инициализируется через SETNX значением seed; параллельные
// вызовы получают разные значения, т.к. обе команды атомарны.
func (c *sequenceCounter) Next(ctx context.Context, prefix string, seed repository.SeedFunc) (int, error) {
	key := sequenceKeyPrefix + prefix

	exists, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("check sequence counter %s: %w", key, err)
	}

	if exists == 0 {
		start, err := seed(ctx)
		if err != nil {
			return 0, fmt.Errorf("seed sequence counter %s: %w", key, err)
		}

		created, err := c.client.SetNX(ctx, key, start, 0).Result()
		if err != nil {
			return 0, fmt.Errorf("init sequence counter %s: %w", key, err)
		}
		if created {
			c.logger.Info("Sequence counter initialized", zap.String("prefix", prefix), zap.Int("seed", start))
		}
	}

	next, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("increment sequence counter %s: %w", key, err)
	}

	return int(next), nil
}
