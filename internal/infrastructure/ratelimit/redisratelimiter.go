package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRateLimiter keeps one sorted set per key and window, scored by
// request time; expired members are trimmed before counting, giving a
// sliding window rather than fixed buckets.
type RedisRateLimiter struct {
	client *redis.Client
}

func NewRedisRateLimiter(client *redis.Client) *RedisRateLimiter {
	return &RedisRateLimiter{client: client}
}

func (l *RedisRateLimiter) Allow(ctx context.Context, key string, config RateLimitConfig) (bool, error) {
	now := time.Now()

	if config.RequestsPerMinute > 0 {
		ok, err := l.tally(ctx, key, time.Minute, config.RequestsPerMinute, now)
		if err != nil || !ok {
			return false, err
		}
	}
	if config.RequestsPerHour > 0 {
		ok, err := l.tally(ctx, key, time.Hour, config.RequestsPerHour, now)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

// tally records the attempt and reports whether it stayed within the
// window's budget. The attempt is recorded even when rejected, so a
// client hammering the endpoint never ages back into the budget.
func (l *RedisRateLimiter) tally(ctx context.Context, key string, window time.Duration, limit int, now time.Time) (bool, error) {
	setKey := fmt.Sprintf("ratelimit:%s:%s", key, window)
	cutoff := strconv.FormatInt(now.Add(-window).UnixNano(), 10)
	score := now.UnixNano()

	pipe := l.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, setKey, "0", cutoff)
	prior := pipe.ZCard(ctx, setKey)
	pipe.ZAdd(ctx, setKey, redis.Z{Score: float64(score), Member: score})
	pipe.Expire(ctx, setKey, window+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit check failed: %w", err)
	}

	return prior.Val() < int64(limit), nil
}
