package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"EPORTFOLIO_ADDR", "LOG_LEVEL", "DATABASE_URL", "REDIS_URL", "KAFKA_BROKERS",
		"PROGRESS_CACHE_TTL", "REQUEST_TTL", "EXPIRY_SWEEP_INTERVAL", "SEED_DEMO_DATA", "EVENTS_TOPIC"} {
		t.Setenv(key, "")
	}

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Empty(t, cfg.Redis.URL)
	assert.Equal(t, "eportfolio.events", cfg.Kafka.Topic)
	assert.Equal(t, 30*time.Second, cfg.ProgressCacheTTL)
	assert.Equal(t, 720*time.Hour, cfg.RequestTTL)
	assert.Zero(t, cfg.ExpirySweepInterval)
	assert.True(t, cfg.SeedDemoData)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("EPORTFOLIO_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("EXPIRY_SWEEP_INTERVAL", "10m")
	t.Setenv("SEED_DEMO_DATA", "false")
	t.Setenv("PROGRESS_CACHE_TTL", "not-a-duration")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 10*time.Minute, cfg.ExpirySweepInterval)
	assert.False(t, cfg.SeedDemoData)
	assert.Equal(t, 30*time.Second, cfg.ProgressCacheTTL, "unparsable values fall back to the default")
}

func TestFromEnvRejectsInvalid(t *testing.T) {
	t.Setenv("LOG_LEVEL", "chatty")
	_, err := FromEnv()
	require.Error(t, err)

	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("EXPIRY_SWEEP_INTERVAL", "-1m")
	_, err = FromEnv()
	require.Error(t, err)
}
