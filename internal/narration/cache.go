package narration

import (
	"container/list"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ctclostio/MojaveAdventure/internal/clock"
	"github.com/ctclostio/MojaveAdventure/internal/storage/redis"
)

// Cache stores narration keyed by request digest.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Default cache bounds.
const (
	DefaultCacheTTL      = 10 * time.Minute
	DefaultCacheCapacity = 256
)

type memoryEntry struct {
	key     string
	value   string
	expires time.Time
}

// MemoryCache is an in-process LRU cache with a per-entry TTL. Safe for
// concurrent use.
type MemoryCache struct {
	mu       sync.Mutex
	ttl      time.Duration
	capacity int
	clock    clock.Clock
	order    *list.List // front is most recently used
	entries  map[string]*list.Element
}

// NewMemoryCache creates a cache holding at most capacity entries for ttl
// each. Non-positive arguments use the defaults; a nil clk uses the system
// clock.
func NewMemoryCache(ttl time.Duration, capacity int, clk clock.Clock) *MemoryCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	if clk == nil {
		clk = clock.New()
	}
	return &MemoryCache{
		ttl:      ttl,
		capacity: capacity,
		clock:    clk,
		order:    list.New(),
		entries:  make(map[string]*list.Element),
	}
}

// Get returns the live entry for key. Expired entries are dropped.
func (c *MemoryCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.entries[key]
	if !ok {
		return "", false, nil
	}
	e := el.Value.(*memoryEntry)
	if !c.clock.Now().Before(e.expires) {
		c.order.Remove(el)
		delete(c.entries, key)
		return "", false, nil
	}
	c.order.MoveToFront(el)
	return e.value, true, nil
}

// Set stores value under key, evicting the least recently used entry when
// full.
func (c *MemoryCache) Set(_ context.Context, key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	expires := c.clock.Now().Add(c.ttl)
	if el, ok := c.entries[key]; ok {
		e := el.Value.(*memoryEntry)
		e.value, e.expires = value, expires
		c.order.MoveToFront(el)
		return nil
	}
	if c.order.Len() >= c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*memoryEntry).key)
	}
	c.entries[key] = c.order.PushFront(&memoryEntry{key: key, value: value, expires: expires})
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

const redisKeyPrefix = "narration:"

// RedisCache stores narration in Redis with a TTL, sharing cached replies
// across processes.
type RedisCache struct {
	client redis.Client
	ttl    time.Duration
}

// NewRedisCache wraps client. A non-positive ttl uses DefaultCacheTTL.
func NewRedisCache(client redis.Client, ttl time.Duration) (*RedisCache, error) {
	if client == nil {
		return nil, fmt.Errorf("narration: redis client is required")
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &RedisCache{client: client, ttl: ttl}, nil
}

// Get implements Cache.
func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := c.client.Get(ctx, redisKeyPrefix+key).Result()
	if redis.IsNil(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("narration: redis get: %w", err)
	}
	return v, true, nil
}

// Set implements Cache.
func (c *RedisCache) Set(ctx context.Context, key, value string) error {
	if err := c.client.Set(ctx, redisKeyPrefix+key, value, c.ttl).Err(); err != nil {
		return fmt.Errorf("narration: redis set: %w", err)
	}
	return nil
}
