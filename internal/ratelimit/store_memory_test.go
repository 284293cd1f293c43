package ratelimit

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_NewBucketStartsFull(t *testing.T) {
	store := NewMemoryStore(newFakeClock().Now)

	d, err := store.TryConsume(context.Background(), "k", testBucket, 1)

	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.InDelta(t, 3.0, d.Remaining, 1e-9)
}

func TestMemoryStore_ConcurrentConsumesAdmitExactlyCapacity(t *testing.T) {
	clock := newFakeClock()
	store := NewMemoryStore(clock.Now)
	bucket := BucketConfig{Capacity: 50, RefillRate: 1, RefillInterval: time.Hour}

	const calls = 51
	var allowed atomic.Int64
	var wg sync.WaitGroup
	for range calls {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d, err := store.TryConsume(context.Background(), "k", bucket, 1)
			if assert.NoError(t, err) && d.Allowed {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(50), allowed.Load())
}

func TestMemoryStore_RefillAfterOneInterval(t *testing.T) {
	clock := newFakeClock()
	store := NewMemoryStore(clock.Now)
	ctx := context.Background()

	for range testBucket.Capacity {
		d, _ := store.TryConsume(ctx, "k", testBucket, 1)
		require.True(t, d.Allowed)
	}
	d, _ := store.TryConsume(ctx, "k", testBucket, 1)
	require.False(t, d.Allowed)
	assert.Equal(t, 500*time.Millisecond, d.RetryAfter)

	clock.Advance(testBucket.RefillInterval)

	for range 2 {
		d, err := store.TryConsume(ctx, "k", testBucket, 1)
		require.NoError(t, err)
		assert.True(t, d.Allowed)
	}
	d, _ = store.TryConsume(ctx, "k", testBucket, 1)
	assert.False(t, d.Allowed)
}

func TestMemoryStore_RefillIsCappedAtCapacity(t *testing.T) {
	clock := newFakeClock()
	store := NewMemoryStore(clock.Now)
	ctx := context.Background()

	_, _ = store.TryConsume(ctx, "k", testBucket, 1)
	clock.Advance(100 * testBucket.RefillInterval)

	d, err := store.TryConsume(ctx, "k", testBucket, 1)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.InDelta(t, 3.0, d.Remaining, 1e-9)
}

func TestMemoryStore_KeysAreIndependent(t *testing.T) {
	store := NewMemoryStore(newFakeClock().Now)
	ctx := context.Background()
	one := BucketConfig{Capacity: 1, RefillRate: 1, RefillInterval: time.Hour}

	a, _ := store.TryConsume(ctx, "a", one, 1)
	b, _ := store.TryConsume(ctx, "b", one, 1)
	a2, _ := store.TryConsume(ctx, "a", one, 1)

	assert.True(t, a.Allowed)
	assert.True(t, b.Allowed)
	assert.False(t, a2.Allowed)
}

func TestMemoryStore_CanceledContext(t *testing.T) {
	store := NewMemoryStore(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.TryConsume(ctx, "k", testBucket, 1)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryStore_SweepDropsRefilledBuckets(t *testing.T) {
	clock := newFakeClock()
	store := NewMemoryStore(clock.Now)
	ctx := context.Background()

	_, _ = store.TryConsume(ctx, "idle", testBucket, 1)
	clock.Advance(testBucket.fullRefill())
	_, _ = store.TryConsume(ctx, "busy", testBucket, 1)
	require.Equal(t, 2, store.Len())

	store.mu.Lock()
	store.sweepLocked(clock.Now())
	store.mu.Unlock()

	assert.Equal(t, 1, store.Len())
}

func TestMemoryStore_Ping(t *testing.T) {
	assert.NoError(t, NewMemoryStore(nil).Ping(context.Background()))
}
