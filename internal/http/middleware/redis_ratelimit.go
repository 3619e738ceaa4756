package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter is a fixed-window counter shared by every server instance.
type RedisLimiter struct {
	client *redis.Client
	prefix string
	limit  int
	window time.Duration
}

// NewRedisLimiter allows limit requests per key per window.
func NewRedisLimiter(client *redis.Client, prefix string, limit int, window time.Duration) *RedisLimiter {
	if prefix == "" {
		prefix = "ratelimit"
	}
	if limit <= 0 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RedisLimiter{client: client, prefix: prefix, limit: limit, window: window}
}

func (l *RedisLimiter) Name() string { return "redis" }

// Allow increments the window counter for key. The counter is created with
// its expiry in the same MULTI/EXEC as the increment, so a key never
// outlives its window.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := fmt.Sprintf("%s:%s", l.prefix, key)

	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.SetNX(ctx, redisKey, 0, l.window)
		incr = p.Incr(ctx, redisKey)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("ratelimit: redis window: %w", err)
	}
	return incr.Val() <= int64(l.limit), nil
}
