// Package ratelimit counts requests per key in fixed windows. The Redis
// limiter is shared by every instance; the local one serves single-instance
// deployments without Redis.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "crmdesk:ratelimit:"

type Limiter interface {
	// Allow counts one request for key. When it is over the limit, retryAfter
	// is the time left in the current window.
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
}

// RedisLimiter keeps one INCR counter per key and window bucket, with a TTL
// slightly longer than the window.
type RedisLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	nowFn  func() time.Time
}

func NewRedisLimiter(client *redis.Client, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, limit: limit, window: window, nowFn: time.Now}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	now := l.nowFn()
	bucket, retryAfter := windowBucket(now, l.window)
	redisKey := fmt.Sprintf("%s%s:%d", keyPrefix, key, bucket)

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to count request: %w", err)
	}
	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window+time.Second).Err(); err != nil {
			return false, 0, fmt.Errorf("failed to set window ttl: %w", err)
		}
	}

	if count > int64(l.limit) {
		return false, retryAfter, nil
	}
	return true, 0, nil
}

type LocalLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	buckets map[string]localBucket
	nowFn   func() time.Time
}

type localBucket struct {
	index int64
	count int
}

func NewLocalLimiter(limit int, window time.Duration) *LocalLimiter {
	return &LocalLimiter{
		limit:   limit,
		window:  window,
		buckets: make(map[string]localBucket),
		nowFn:   time.Now,
	}
}

func (l *LocalLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	index, retryAfter := windowBucket(l.nowFn(), l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	b := l.buckets[key]
	if b.index != index {
		b = localBucket{index: index}
		l.pruneLocked(index)
	}
	b.count++
	l.buckets[key] = b

	if b.count > l.limit {
		return false, retryAfter, nil
	}
	return true, 0, nil
}

// pruneLocked drops buckets from earlier windows so idle keys do not pile up.
func (l *LocalLimiter) pruneLocked(current int64) {
	for k, b := range l.buckets {
		if b.index != current {
			delete(l.buckets, k)
		}
	}
}

func windowBucket(now time.Time, window time.Duration) (int64, time.Duration) {
	if window <= 0 {
		window = time.Minute
	}
	index := now.UnixNano() / int64(window)
	end := time.Unix(0, (index+1)*int64(window))
	return index, end.Sub(now)
}
