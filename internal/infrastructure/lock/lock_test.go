package lock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLocker_RejectsSecondHolder(t *testing.T) {
	l := NewLocalLocker()
	ctx := context.Background()

	lease, ok, err := l.TryAcquire(ctx, "sync", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = l.TryAcquire(ctx, "sync", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, _ = l.TryAcquire(ctx, "other", time.Minute)
	assert.True(t, ok, "keys are independent")

	lease.Release()
	lease.Release()

	_, ok, _ = l.TryAcquire(ctx, "sync", time.Minute)
	assert.True(t, ok)
}

func TestLocalLocker_ExpiredLockCanBeRetaken(t *testing.T) {
	l := NewLocalLocker()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l.nowFn = func() time.Time { return now }

	stale, ok, _ := l.TryAcquire(context.Background(), "sync", time.Minute)
	require.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok, _ = l.TryAcquire(context.Background(), "sync", time.Minute)
	require.True(t, ok)

	// the stale holder must not free the new holder's lock
	stale.Release()
	_, ok, _ = l.TryAcquire(context.Background(), "sync", time.Minute)
	assert.False(t, ok)
}

func TestLocalLocker_ExtendOutlivesOriginalTTL(t *testing.T) {
	l := NewLocalLocker()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l.nowFn = func() time.Time { return now }
	ctx := context.Background()

	lease, ok, _ := l.TryAcquire(ctx, "sync", time.Minute)
	require.True(t, ok)

	for i := 0; i < 3; i++ {
		now = now.Add(50 * time.Second)
		require.NoError(t, lease.Extend(ctx, time.Minute))
	}

	_, ok, _ = l.TryAcquire(ctx, "sync", time.Minute)
	assert.False(t, ok, "renewed lock is still held")
}

func TestLocalLocker_ExtendAfterTakeoverIsLost(t *testing.T) {
	l := NewLocalLocker()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l.nowFn = func() time.Time { return now }
	ctx := context.Background()

	stale, ok, _ := l.TryAcquire(ctx, "sync", time.Minute)
	require.True(t, ok)

	now = now.Add(2 * time.Minute)
	assert.ErrorIs(t, stale.Extend(ctx, time.Minute), ErrLockLost)

	_, ok, _ = l.TryAcquire(ctx, "sync", time.Minute)
	require.True(t, ok)
	assert.ErrorIs(t, stale.Extend(ctx, time.Minute), ErrLockLost)
}
