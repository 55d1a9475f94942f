package starken

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultLocalityTTL = 12 * time.Hour

var ErrCacheMiss = errors.New("locality cache miss")

// LocalityCache stores the whole locality table under a single key.
// Concurrent refreshes may overwrite each other; the table is the same.
type LocalityCache interface {
	Get(ctx context.Context) ([]Locality, error)
	Set(ctx context.Context, localities []Locality) error
}

type MemoryLocalityCache struct {
	ttl time.Duration
	now func() time.Time

	mu         sync.RWMutex
	localities []Locality
	fetchedAt  time.Time
}

func NewMemoryLocalityCache(ttl time.Duration) *MemoryLocalityCache {
	if ttl <= 0 {
		ttl = DefaultLocalityTTL
	}
	return &MemoryLocalityCache{ttl: ttl, now: time.Now}
}

func (c *MemoryLocalityCache) Get(_ context.Context) ([]Locality, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.localities == nil || c.now().Sub(c.fetchedAt) >= c.ttl {
		return nil, ErrCacheMiss
	}
	return c.localities, nil
}

func (c *MemoryLocalityCache) Set(_ context.Context, localities []Locality) error {
	if localities == nil {
		localities = []Locality{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.localities = localities
	c.fetchedAt = c.now()
	return nil
}

const localityCacheKey = "praktico:starken:localities"

// RedisLocalityCache shares the table between instances; expiry is left to
// the key TTL.
type RedisLocalityCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisLocalityCache(client *redis.Client, ttl time.Duration) *RedisLocalityCache {
	if ttl <= 0 {
		ttl = DefaultLocalityTTL
	}
	return &RedisLocalityCache{client: client, ttl: ttl}
}

func (c *RedisLocalityCache) Get(ctx context.Context) ([]Locality, error) {
	data, err := c.client.Get(ctx, localityCacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var localities []Locality
	if err := json.Unmarshal(data, &localities); err != nil {
		return nil, fmt.Errorf("unmarshal localities failed: %w", err)
	}

	return localities, nil
}

func (c *RedisLocalityCache) Set(ctx context.Context, localities []Locality) error {
	if localities == nil {
		localities = []Locality{}
	}

	data, err := json.Marshal(localities)
	if err != nil {
		return fmt.Errorf("marshal localities failed: %w", err)
	}

	if err := c.client.Set(ctx, localityCacheKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}
