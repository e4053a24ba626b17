package cache

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a settable time source for expiry tests
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestIdempotencyStore(t *testing.T) (*InMemoryIdempotencyStore, *fakeClock) {
	t.Helper()
	store := NewInMemoryIdempotencyStore(time.Hour)
	clock := &fakeClock{now: time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)}
	store.now = clock.Now
	t.Cleanup(func() { _ = store.Close() })
	return store, clock
}

func TestInMemoryIdempotencyStore_Reserve(t *testing.T) {
	ctx := context.Background()

	t.Run("first reservation wins", func(t *testing.T) {
		store, _ := newTestIdempotencyStore(t)

		ok, err := store.Reserve(ctx, "key-1", time.Hour)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = store.Reserve(ctx, "key-1", time.Hour)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("completed key cannot be reserved again", func(t *testing.T) {
		store, _ := newTestIdempotencyStore(t)

		_, _ = store.Reserve(ctx, "key-2", time.Hour)
		require.NoError(t, store.Complete(ctx, "key-2", "payment-1", time.Hour))

		ok, err := store.Reserve(ctx, "key-2", time.Hour)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("expired reservation can be taken over", func(t *testing.T) {
		store, clock := newTestIdempotencyStore(t)

		_, _ = store.Reserve(ctx, "key-3", time.Minute)
		clock.Advance(time.Minute)

		ok, err := store.Reserve(ctx, "key-3", time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestInMemoryIdempotencyStore_Lookup(t *testing.T) {
	ctx := context.Background()
	store, clock := newTestIdempotencyStore(t)

	_, ok, err := store.Lookup(ctx, "unknown")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _ = store.Reserve(ctx, "key", time.Hour)
	_, ok, err = store.Lookup(ctx, "key")
	require.NoError(t, err)
	assert.False(t, ok, "pending key has no result yet")

	require.NoError(t, store.Complete(ctx, "key", "payment-42", time.Hour))
	id, ok, err := store.Lookup(ctx, "key")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "payment-42", id)

	clock.Advance(2 * time.Hour)
	_, ok, err = store.Lookup(ctx, "key")
	require.NoError(t, err)
	assert.False(t, ok, "expired result is forgotten")
}

func TestInMemoryIdempotencyStore_Release(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestIdempotencyStore(t)

	_, _ = store.Reserve(ctx, "pending", time.Hour)
	require.NoError(t, store.Release(ctx, "pending"))
	ok, err := store.Reserve(ctx, "pending", time.Hour)
	require.NoError(t, err)
	assert.True(t, ok, "released key is free again")

	_, _ = store.Reserve(ctx, "done", time.Hour)
	require.NoError(t, store.Complete(ctx, "done", "payment-1", time.Hour))
	require.NoError(t, store.Release(ctx, "done"))
	id, ok, err := store.Lookup(ctx, "done")
	require.NoError(t, err)
	assert.True(t, ok, "release keeps completed keys")
	assert.Equal(t, "payment-1", id)
}

func TestInMemoryIdempotencyStore_Cleanup(t *testing.T) {
	ctx := context.Background()
	store, clock := newTestIdempotencyStore(t)

	_, _ = store.Reserve(ctx, "short", time.Minute)
	_, _ = store.Reserve(ctx, "long", time.Hour)
	assert.Equal(t, 2, store.Size())

	clock.Advance(5 * time.Minute)
	store.cleanup()
	assert.Equal(t, 1, store.Size())
}

func TestInMemoryIdempotencyStore_ConcurrentReserve(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestIdempotencyStore(t)

	const goroutines = 50
	var winners atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := store.Reserve(ctx, "contended", time.Hour)
			assert.NoError(t, err)
			if ok {
				winners.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), winners.Load())

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, _ = store.Reserve(ctx, fmt.Sprintf("key-%d", n), time.Hour)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, goroutines+1, store.Size())
}

func TestInMemoryIdempotencyStore_Close(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Millisecond)
	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close(), "second close is a no-op")
}
