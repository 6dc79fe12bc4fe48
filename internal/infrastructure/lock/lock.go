// Package lock provides the mutual exclusion that keeps two sync runs from
// overlapping: a Redis lock across instances, or an in-process one when Redis
// is not configured.
package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "crmdesk:lock:"

// ErrLockLost is returned by Extend once the lock expired or was taken over.
var ErrLockLost = errors.New("lock is no longer held")

// Lease is a held lock. Release is safe to call more than once.
type Lease struct {
	extend  func(ctx context.Context, ttl time.Duration) error
	release func()
	once    sync.Once
}

func NewLease(extend func(ctx context.Context, ttl time.Duration) error, release func()) *Lease {
	return &Lease{extend: extend, release: release}
}

// Extend moves the expiry to ttl from now.
func (l *Lease) Extend(ctx context.Context, ttl time.Duration) error {
	return l.extend(ctx, ttl)
}

func (l *Lease) Release() {
	l.once.Do(l.release)
}

type Locker interface {
	// TryAcquire never waits. acquired is false when someone else holds key.
	TryAcquire(ctx context.Context, key string, ttl time.Duration) (lease *Lease, acquired bool, err error)
}

// releaseScript deletes the key only if it still holds our token, so a lock
// that expired and was taken by another instance is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

var extendScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

type RedisLocker struct {
	client *redis.Client
}

func NewRedisLocker(client *redis.Client) *RedisLocker {
	return &RedisLocker{client: client}
}

func (l *RedisLocker) TryAcquire(ctx context.Context, key string, ttl time.Duration) (*Lease, bool, error) {
	fullKey := keyPrefix + key
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, fullKey, token, ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("failed to acquire lock %s: %w", key, err)
	}
	if !ok {
		return nil, false, nil
	}

	extend := func(ctx context.Context, ttl time.Duration) error {
		n, err := extendScript.Run(ctx, l.client, []string{fullKey}, token, ttl.Milliseconds()).Int()
		if err != nil {
			return fmt.Errorf("failed to extend lock %s: %w", key, err)
		}
		if n == 0 {
			return ErrLockLost
		}
		return nil
	}
	release := func() {
		// the caller's ctx may already be done when releasing
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = releaseScript.Run(releaseCtx, l.client, []string{fullKey}, token).Err()
	}
	return NewLease(extend, release), true, nil
}

// LocalLocker holds locks in memory. Expiry is honored so a leaked lock does
// not wedge the process.
type LocalLocker struct {
	mu     sync.Mutex
	held   map[string]localEntry
	tokens uint64
	nowFn  func() time.Time
}

type localEntry struct {
	token   uint64
	expires time.Time
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{
		held:  make(map[string]localEntry),
		nowFn: time.Now,
	}
}

func (l *LocalLocker) TryAcquire(_ context.Context, key string, ttl time.Duration) (*Lease, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.nowFn()
	if e, ok := l.held[key]; ok && e.live(now) {
		return nil, false, nil
	}

	l.tokens++
	token := l.tokens
	l.held[key] = localEntry{token: token, expires: expiry(now, ttl)}

	extend := func(_ context.Context, ttl time.Duration) error {
		l.mu.Lock()
		defer l.mu.Unlock()

		now := l.nowFn()
		cur, ok := l.held[key]
		if !ok || cur.token != token || !cur.live(now) {
			return ErrLockLost
		}
		cur.expires = expiry(now, ttl)
		l.held[key] = cur
		return nil
	}
	release := func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if cur, ok := l.held[key]; ok && cur.token == token {
			delete(l.held, key)
		}
	}
	return NewLease(extend, release), true, nil
}

func (e localEntry) live(now time.Time) bool {
	return e.expires.IsZero() || now.Before(e.expires)
}

// expiry is zero for a lock that never expires.
func expiry(now time.Time, ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return now.Add(ttl)
}
