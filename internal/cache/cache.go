package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/redis/go-redis/v9"
)

// Cache is the Redis-backed counter store used for rate limiting and health.
// Implementations must be safe for concurrent use.
type Cache interface {
	Ping(ctx context.Context) error
	// IncrWithExpiry increments key and (re)sets its TTL, returning the new count.
	IncrWithExpiry(ctx context.Context, key string, expiry time.Duration) (int64, error)
	Close() error
}

// RedisCache implements the Cache interface using go-redis/v9.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a new RedisCache from a Redis URL.
func NewRedisCache(redisURL string) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	return &RedisCache{client: redis.NewClient(opts)}, nil
}

// Connect creates a RedisCache and waits until it answers a ping.
func Connect(ctx context.Context, redisURL string, attempts int) (*RedisCache, error) {
	rc, err := NewRedisCache(redisURL)
	if err != nil {
		return nil, err
	}
	if attempts < 1 {
		attempts = 1
	}
	err = retry.Do(
		func() error { return rc.Ping(ctx) },
		retry.Context(ctx),
		retry.Attempts(uint(attempts)),
		retry.Delay(250*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			slog.Warn("redis not ready, retrying", "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rc, nil
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) IncrWithExpiry(ctx context.Context, key string, expiry time.Duration) (int64, error) {
	pipe := c.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, expiry)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
