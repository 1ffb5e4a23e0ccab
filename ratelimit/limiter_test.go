// Copyright (c) 2025 Beta Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package ratelimit

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/betasocial/beta-api/internal/cache"
	platformconfig "github.com/betasocial/beta-api/internal/platform/config"
)

func newTestLimiter() (*PasswordResetLimiter, cache.Cache) {
	store := cache.NewMemoryCache(nil)
	counter := NewWindowCounter(store)
	limiter := NewPasswordResetLimiter(counter, platformconfig.RateLimitsConfig{
		PasswordResetIPMax:       5,
		PasswordResetIPWindow:    time.Hour,
		PasswordResetEmailMax:    3,
		PasswordResetEmailWindow: time.Hour,
	})
	return limiter, store
}

func TestPasswordResetLimiter_IPCeiling(t *testing.T) {
	limiter, store := newTestLimiter()
	defer store.Close()
	ctx := context.Background()

	// Distinct emails keep the email ledgers cold; only the IP ceiling counts
	for i := 0; i < 5; i++ {
		result, err := limiter.Check(ctx, "10.0.0.1", fmt.Sprintf("user%d@crag.test", i))
		assert.NoError(t, err)
		assert.True(t, result.Allowed, "request %d should pass", i+1)
	}

	result, err := limiter.Check(ctx, "10.0.0.1", "user6@crag.test")
	assert.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Greater(t, result.RetryAfter, 0)
}

func TestPasswordResetLimiter_EmailCeiling(t *testing.T) {
	limiter, store := newTestLimiter()
	defer store.Close()
	ctx := context.Background()

	// Distinct IPs keep the IP ledgers cold; only the email ceiling counts
	for i := 0; i < 3; i++ {
		result, err := limiter.Check(ctx, fmt.Sprintf("10.0.0.%d", i+1), "victim@crag.test")
		assert.NoError(t, err)
		assert.True(t, result.Allowed, "request %d should pass", i+1)
	}

	result, err := limiter.Check(ctx, "10.0.0.99", "victim@crag.test")
	assert.NoError(t, err)
	assert.False(t, result.Allowed)
}

func TestPasswordResetLimiter_EmailNormalized(t *testing.T) {
	limiter, store := newTestLimiter()
	defer store.Close()
	ctx := context.Background()

	variants := []string{"Climber@Crag.Test", "climber@crag.test", "  CLIMBER@CRAG.TEST "}
	for i, email := range variants {
		result, err := limiter.Check(ctx, fmt.Sprintf("10.0.0.%d", i+1), email)
		assert.NoError(t, err)
		assert.True(t, result.Allowed)
	}

	// All three variants landed on one ledger; the fourth attempt trips it
	result, err := limiter.Check(ctx, "10.0.0.9", "climber@crag.test")
	assert.NoError(t, err)
	assert.False(t, result.Allowed)
}

func TestPasswordResetLimiter_IPRejectionShortCircuits(t *testing.T) {
	limiter, store := newTestLimiter()
	defer store.Close()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := limiter.Check(ctx, "10.0.0.1", fmt.Sprintf("user%d@crag.test", i))
		assert.NoError(t, err)
	}

	// Blocked at the IP ceiling; the email ledger must stay untouched
	result, err := limiter.Check(ctx, "10.0.0.1", "fresh@crag.test")
	assert.NoError(t, err)
	assert.False(t, result.Allowed)

	// The email still has its full allowance from another source
	for i := 0; i < 3; i++ {
		result, err := limiter.Check(ctx, fmt.Sprintf("10.0.1.%d", i+1), "fresh@crag.test")
		assert.NoError(t, err)
		assert.True(t, result.Allowed, "request %d should pass", i+1)
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@b.c", NormalizeEmail("  A@B.C "))
	assert.Equal(t, "a@b.c", NormalizeEmail("a@b.c"))
	assert.Equal(t, "", NormalizeEmail("   "))
}
