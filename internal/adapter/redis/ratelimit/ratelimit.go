package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"gitlab.com/code-round.net/internal/core/ports/secondary"
)

const keyPrefix = "ratelimit:"

var _ secondary.RateLimiter = (*RedisLimiter)(nil)

// RedisLimiter enforces a fixed window per key, shared by every replica.
type RedisLimiter struct {
	redisClient *redis.Client
	timeout     time.Duration
}

func NewRedisLimiter(redisClient *redis.Client, timeout time.Duration) *RedisLimiter {
	if timeout <= 0 {
		timeout = 100 * time.Millisecond
	}
	return &RedisLimiter{redisClient: redisClient, timeout: timeout}
}

// Allow opens the window with SETNX and counts with INCR afterwards.
func (l *RedisLimiter) Allow(ctx context.Context, key string, max int, window time.Duration) (bool, error) {
	if max <= 0 {
		return true, nil
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	redisKey := keyPrefix + key
	acquired, err := l.redisClient.SetNX(ctx, redisKey, 1, window).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit check failed: %w", err)
	}
	count := int64(1)
	if !acquired {
		count, err = l.redisClient.Incr(ctx, redisKey).Result()
		if err != nil {
			return false, fmt.Errorf("rate limit check failed: %w", err)
		}
		// a key left without expiry would block the client forever
		if ttl, ttlErr := l.redisClient.TTL(ctx, redisKey).Result(); ttlErr == nil && ttl < 0 {
			_ = l.redisClient.Expire(ctx, redisKey, window).Err()
		}
	}
	return count <= int64(max), nil
}
