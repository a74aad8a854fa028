package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const generationKey = "moloco:dashboard:gen"

// RedisCache stores dashboard payloads in Redis so cached views are shared
// across instances. Invalidation bumps a generation counter that is part of
// every key, so stale entries simply expire instead of being scanned for.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) key(ctx context.Context, key string) string {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if err != nil {
		gen = 0
	}
	return fmt.Sprintf("moloco:dashboard:%d:%s", gen, key)
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.client.Get(ctx, c.key(ctx, key)).Bytes()
	if err != nil {
		return nil, false
	}
	return val, true
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte) {
	c.client.Set(ctx, c.key(ctx, key), value, c.ttl)
}

func (c *RedisCache) Invalidate(ctx context.Context) {
	c.client.Incr(ctx, generationKey)
}
