package httpx

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aussiebroadwan/lounge/pkg/idx"
	"github.com/redis/go-redis/v9"
)

// RedisLimiter is a sliding-window limiter over a Redis sorted set, shared by
// every replica pointing at the same Redis.
type RedisLimiter struct {
	rdb    redis.UniversalClient
	prefix string
	cfg    RateLimitConfig
}

// NewRedisLimiter creates a limiter whose keys live under prefix.
func NewRedisLimiter(rdb redis.UniversalClient, prefix string, cfg RateLimitConfig) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, prefix: prefix, cfg: cfg}
}

// RedisLimiters returns a LimiterFactory that namespaces each bucket under
// "ratelimit:<bucket>:".
func RedisLimiters(rdb redis.UniversalClient) LimiterFactory {
	return func(bucket string, cfg RateLimitConfig) Limiter {
		return NewRedisLimiter(rdb, "ratelimit:"+bucket+":", cfg)
	}
}

func (l *RedisLimiter) Config() RateLimitConfig { return l.cfg }

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	now := time.Now()
	nowMs := now.UnixMilli()
	windowStart := nowMs - l.cfg.Window.Milliseconds()

	limitKey := l.prefix + key
	member := fmt.Sprintf("%d-%s", nowMs, idx.NewAt(now))

	pipe := l.rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, limitKey, "0", strconv.FormatInt(windowStart, 10))
	pipe.ZAdd(ctx, limitKey, redis.Z{Score: float64(nowMs), Member: member})
	countCmd := pipe.ZCard(ctx, limitKey)
	oldestCmd := pipe.ZRangeWithScores(ctx, limitKey, 0, 0)
	pipe.Expire(ctx, limitKey, l.cfg.Window+time.Second)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, fmt.Errorf("redis limiter: %w", err)
	}

	if countCmd.Val() <= int64(l.cfg.RequestsPerWindow) {
		return true, 0, nil
	}

	// Over the limit: take our entry back out so rejected calls do not
	// extend the window.
	if err := l.rdb.ZRem(ctx, limitKey, member).Err(); err != nil {
		return false, 0, fmt.Errorf("redis limiter: %w", err)
	}

	retryAfter := l.cfg.Window
	if oldest := oldestCmd.Val(); len(oldest) > 0 {
		freesAt := time.UnixMilli(int64(oldest[0].Score)).Add(l.cfg.Window)
		retryAfter = max(freesAt.Sub(now), time.Second)
	}
	return false, retryAfter, nil
}
