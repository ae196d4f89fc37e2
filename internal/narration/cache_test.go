package narration_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/ctclostio/MojaveAdventure/internal/clock"
	"github.com/ctclostio/MojaveAdventure/internal/narration"
	"github.com/ctclostio/MojaveAdventure/internal/storage/redis"
)

var epoch = time.Date(2161, 3, 14, 8, 0, 0, 0, time.UTC)

func TestMemoryCache_ExpiresAfterTTL(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewManual(epoch)
	c := narration.NewMemoryCache(time.Minute, 10, clk)

	require.NoError(t, c.Set(ctx, "k", "v"))
	v, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	clk.Advance(time.Minute)
	_, ok, _ = c.Get(ctx, "k")
	assert.False(t, ok)
	assert.Zero(t, c.Len())
}

func TestMemoryCache_EvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	c := narration.NewMemoryCache(time.Hour, 2, clock.NewManual(epoch))
	require.NoError(t, c.Set(ctx, "a", "1"))
	require.NoError(t, c.Set(ctx, "b", "2"))
	_, _, _ = c.Get(ctx, "a")
	require.NoError(t, c.Set(ctx, "c", "3"))

	_, ok, _ := c.Get(ctx, "b")
	assert.False(t, ok)
	_, ok, _ = c.Get(ctx, "a")
	assert.True(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestMemoryCache_OverwriteRefreshes(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewManual(epoch)
	c := narration.NewMemoryCache(time.Minute, 0, clk)
	require.NoError(t, c.Set(ctx, "k", "old"))
	clk.Advance(50 * time.Second)
	require.NoError(t, c.Set(ctx, "k", "new"))
	clk.Advance(50 * time.Second)

	v, ok, _ := c.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, "new", v)
}

func TestMemoryCache_ConcurrentUse(t *testing.T) {
	ctx := context.Background()
	c := narration.NewMemoryCache(time.Hour, 16, nil)
	done := make(chan struct{})
	for g := range 8 {
		go func() {
			defer func() { done <- struct{}{} }()
			for i := range 100 {
				key := fmt.Sprintf("%d-%d", g, i%20)
				_ = c.Set(ctx, key, "v")
				_, _, _ = c.Get(ctx, key)
			}
		}()
	}
	for range 8 {
		<-done
	}
	assert.LessOrEqual(t, c.Len(), 16)
}

type RedisCacheSuite struct {
	suite.Suite
	mr    *miniredis.Miniredis
	cache *narration.RedisCache
	ctx   context.Context
}

func (s *RedisCacheSuite) SetupTest() {
	s.mr = miniredis.RunT(s.T())
	client, err := redis.NewClient(s.mr.Addr(), nil)
	s.Require().NoError(err)
	s.cache, err = narration.NewRedisCache(client, time.Minute)
	s.Require().NoError(err)
	s.ctx = context.Background()
}

func (s *RedisCacheSuite) TestMissThenHit() {
	_, ok, err := s.cache.Get(s.ctx, "k")
	s.Require().NoError(err)
	s.False(ok)

	s.Require().NoError(s.cache.Set(s.ctx, "k", "narration"))
	s.True(s.mr.Exists("narration:k"))

	v, ok, err := s.cache.Get(s.ctx, "k")
	s.Require().NoError(err)
	s.True(ok)
	s.Equal("narration", v)
}

func (s *RedisCacheSuite) TestExpires() {
	s.Require().NoError(s.cache.Set(s.ctx, "k", "v"))
	s.mr.FastForward(2 * time.Minute)
	_, ok, err := s.cache.Get(s.ctx, "k")
	s.Require().NoError(err)
	s.False(ok)
}

func (s *RedisCacheSuite) TestServerDown() {
	s.mr.Close()
	_, _, err := s.cache.Get(s.ctx, "k")
	s.Error(err)
}

func TestRedisCacheSuite(t *testing.T) {
	suite.Run(t, new(RedisCacheSuite))
}

func TestNewRedisCache_RequiresClient(t *testing.T) {
	_, err := narration.NewRedisCache(nil, 0)
	assert.Error(t, err)
}
