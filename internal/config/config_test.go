package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutEnvFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("IDENTITY_MAX_ALLOC_ATTEMPTS", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 5, cfg.Identity.MaxAllocAttempts)
	assert.True(t, cfg.Identity.CounterEnabled)
	assert.Equal(t, uint(6), cfg.Identity.GeohashPrecision)
	assert.Equal(t, 300*time.Second, cfg.Cache.StructureCacheTTL)
	assert.Equal(t, "structure-rating-workers", cfg.Worker.ConsumerGroup)
	assert.Equal(t, 5*time.Second, cfg.Worker.StreamReadTimeout)
	assert.Equal(t, "0.0.0.0:8080", cfg.GetServerAddr())
}

func TestConfig_DSN(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host: "localhost", Port: 5433, User: "u", Password: "p", DBName: "inspection", SSLMode: "disable",
		},
		Redis: RedisConfig{Host: "redis", Port: 6380},
	}

	assert.Equal(t, "host=localhost port=5433 user=u password=p dbname=inspection sslmode=disable", cfg.GetDatabaseDSN())
	assert.Equal(t, "redis:6380", cfg.GetRedisAddr())
}
