package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestCache() *MemoryCache {
	cfg := DefaultConfig()
	cfg.CleanupInterval = time.Minute
	return NewMemoryCache(cfg)
}

func TestMemoryCache_SetGet(t *testing.T) {
	c := newTestCache()
	defer c.Close()
	ctx := context.Background()

	err := c.Set(ctx, "k", []byte("v"), time.Minute)
	assert.NoError(t, err)

	got, err := c.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
}

func TestMemoryCache_GetMissing(t *testing.T) {
	c := newTestCache()
	defer c.Close()

	_, err := c.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestMemoryCache_Expiration(t *testing.T) {
	c := newTestCache()
	defer c.Close()
	ctx := context.Background()

	err := c.Set(ctx, "short", []byte("v"), 10*time.Millisecond)
	assert.NoError(t, err)

	time.Sleep(25 * time.Millisecond)

	_, err = c.Get(ctx, "short")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	exists, err := c.Exists(ctx, "short")
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestMemoryCache_Exists(t *testing.T) {
	c := newTestCache()
	defer c.Close()
	ctx := context.Background()

	exists, err := c.Exists(ctx, "k")
	assert.NoError(t, err)
	assert.False(t, exists)

	assert.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))

	exists, err = c.Exists(ctx, "k")
	assert.NoError(t, err)
	assert.True(t, exists)
}

func TestMemoryCache_Delete(t *testing.T) {
	c := newTestCache()
	defer c.Close()
	ctx := context.Background()

	assert.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	assert.NoError(t, c.Delete(ctx, "k"))

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestMemoryCache_Increment(t *testing.T) {
	c := newTestCache()
	defer c.Close()
	ctx := context.Background()

	n, err := c.Increment(ctx, "counter", 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = c.Increment(ctx, "counter", 2)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestMemoryCache_ClosedRejectsWrites(t *testing.T) {
	c := newTestCache()
	ctx := context.Background()

	assert.NoError(t, c.Close())

	err := c.Set(ctx, "k", []byte("v"), time.Minute)
	assert.ErrorIs(t, err, ErrCacheClosed)

	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheClosed)

	// Closing twice is fine
	assert.NoError(t, c.Close())
}
