//go:build integration

package redis

import (
	"context"
	"testing"
	"time"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batoulgheleb/crisiszone/internal/platform/config"
	"github.com/batoulgheleb/crisiszone/pkg/testutil/containers"
)

func TestNewConnectsAndReportsHealth(t *testing.T) {
	rc := containers.GetManager().GetRedis(t)

	client, err := New(config.RedisConfig{
		URL:          "redis://" + rc.Addr,
		PoolSize:     4,
		MinIdleConns: 1,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	require.NoError(t, err)
	require.NotNil(t, client)
	defer client.Close() //nolint:errcheck // test cleanup

	ctx := context.Background()
	require.NoError(t, client.Health(ctx))
	setsBefore := promtest.ToFloat64(redisCommands.WithLabelValues("set", "ok"))
	require.NoError(t, client.Set(ctx, "progress:report:doc-0001", "0.0\n{}", time.Minute).Err())
	assert.Equal(t, setsBefore+1, promtest.ToFloat64(redisCommands.WithLabelValues("set", "ok")))

	client.RecordPoolStats()
	client.RecordPoolStats()
	assert.NotNil(t, client.lastStats)
}

func TestNewWithoutURLDisablesRedis(t *testing.T) {
	client, err := New(config.RedisConfig{})
	require.NoError(t, err)
	assert.Nil(t, client)
}

func TestNewRejectsBadURL(t *testing.T) {
	_, err := New(config.RedisConfig{URL: "://nope"})
	require.Error(t, err)
}
