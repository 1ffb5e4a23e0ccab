// Copyright (c) 2025 Beta Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/betasocial/beta-api/internal/cache"
)

// testClock lets tests advance the counter's idea of "now" without sleeping.
type testClock struct {
	current time.Time
}

func (tc *testClock) now() time.Time {
	return tc.current
}

func (tc *testClock) advance(d time.Duration) {
	tc.current = tc.current.Add(d)
}

func newTestCounter() (*WindowCounter, *testClock, cache.Cache) {
	store := cache.NewMemoryCache(nil)
	clock := &testClock{current: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	counter := NewWindowCounter(store)
	counter.now = clock.now
	return counter, clock, store
}

func TestWindowCounter_AllowsUnderCeiling(t *testing.T) {
	counter, _, store := newTestCounter()
	defer store.Close()
	ctx := context.Background()

	for i, wantRemaining := range []int{2, 1, 0} {
		result, err := counter.Check(ctx, "test", "id-1", time.Hour, 3)
		assert.NoError(t, err)
		assert.True(t, result.Allowed, "call %d should be allowed", i+1)
		assert.Equal(t, wantRemaining, result.Remaining)
		assert.Zero(t, result.RetryAfter)
	}
}

func TestWindowCounter_RejectsAtCeiling(t *testing.T) {
	counter, _, store := newTestCounter()
	defer store.Close()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		result, err := counter.Check(ctx, "test", "id-1", time.Hour, 3)
		assert.NoError(t, err)
		assert.True(t, result.Allowed)
	}

	result, err := counter.Check(ctx, "test", "id-1", time.Hour, 3)
	assert.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Zero(t, result.Remaining)
	assert.Greater(t, result.RetryAfter, 0)
	assert.LessOrEqual(t, result.RetryAfter, 3600)
}

func TestWindowCounter_WindowRolls(t *testing.T) {
	counter, clock, store := newTestCounter()
	defer store.Close()
	ctx := context.Background()

	// Two requests immediately, a third half an hour in
	for i := 0; i < 2; i++ {
		result, err := counter.Check(ctx, "test", "id-1", time.Hour, 3)
		assert.NoError(t, err)
		assert.True(t, result.Allowed)
	}
	clock.advance(30 * time.Minute)
	result, err := counter.Check(ctx, "test", "id-1", time.Hour, 3)
	assert.NoError(t, err)
	assert.True(t, result.Allowed)

	// 45 minutes in, all three are still inside the window
	clock.advance(15 * time.Minute)
	result, err = counter.Check(ctx, "test", "id-1", time.Hour, 3)
	assert.NoError(t, err)
	assert.False(t, result.Allowed)
	// The oldest entry leaves the window 15 minutes from now
	assert.Equal(t, 15*60, result.RetryAfter)

	// 61 minutes in, the first two have rolled out
	clock.advance(16 * time.Minute)
	result, err = counter.Check(ctx, "test", "id-1", time.Hour, 3)
	assert.NoError(t, err)
	assert.True(t, result.Allowed)
}

func TestWindowCounter_IdentifiersAreIndependent(t *testing.T) {
	counter, _, store := newTestCounter()
	defer store.Close()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := counter.Check(ctx, "test", "id-1", time.Hour, 3)
		assert.NoError(t, err)
	}
	result, err := counter.Check(ctx, "test", "id-1", time.Hour, 3)
	assert.NoError(t, err)
	assert.False(t, result.Allowed)

	result, err = counter.Check(ctx, "test", "id-2", time.Hour, 3)
	assert.NoError(t, err)
	assert.True(t, result.Allowed)
}

func TestWindowCounter_PurposesAreIndependent(t *testing.T) {
	counter, _, store := newTestCounter()
	defer store.Close()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := counter.Check(ctx, "purpose-a", "id-1", time.Hour, 3)
		assert.NoError(t, err)
	}

	result, err := counter.Check(ctx, "purpose-b", "id-1", time.Hour, 3)
	assert.NoError(t, err)
	assert.True(t, result.Allowed)
}

func TestWindowCounter_CorruptLedgerResetsWindow(t *testing.T) {
	counter, _, store := newTestCounter()
	defer store.Close()
	ctx := context.Background()

	err := store.Set(ctx, "test:id-1", []byte("not json"), time.Hour)
	assert.NoError(t, err)

	result, err := counter.Check(ctx, "test", "id-1", time.Hour, 3)
	assert.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, 2, result.Remaining)
}

func TestWindowCounter_InvalidParameters(t *testing.T) {
	counter, _, store := newTestCounter()
	defer store.Close()
	ctx := context.Background()

	_, err := counter.Check(ctx, "test", "id-1", time.Hour, 0)
	assert.Error(t, err)

	_, err = counter.Check(ctx, "test", "id-1", 0, 3)
	assert.Error(t, err)
}
