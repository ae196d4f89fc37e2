package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctclostio/MojaveAdventure/internal/storage/redis"
)

func TestNewClient_RequiresEndpoint(t *testing.T) {
	_, err := redis.NewClient("", nil)
	assert.Error(t, err)
}

func TestNewClient_PingAndNil(t *testing.T) {
	mr := miniredis.RunT(t)
	c, err := redis.NewClient(mr.Addr(), &redis.Options{PoolSize: 2})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	ctx := context.Background()
	require.NoError(t, redis.Ping(ctx, c))

	_, err = c.Get(ctx, "missing").Result()
	assert.True(t, redis.IsNil(err))
	assert.False(t, redis.IsNil(nil))
}

func TestPing_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	c, err := redis.NewClient(mr.Addr(), &redis.Options{MaxRetries: -1})
	require.NoError(t, err)
	mr.Close()
	assert.Error(t, redis.Ping(context.Background(), c))
}
