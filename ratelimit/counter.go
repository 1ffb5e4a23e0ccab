// Copyright (c) 2025 Beta Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package ratelimit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/betasocial/beta-api/internal/cache"
)

// ttlBuffer keeps a key alive slightly past its window so in-window
// timestamps never vanish before they stop mattering.
const ttlBuffer = 60 * time.Second

// CheckResult is the outcome of a single window check.
type CheckResult struct {
	// Allowed reports whether the request fits under the ceiling.
	Allowed bool `json:"allowed"`

	// Remaining is how many further requests the window still admits.
	Remaining int `json:"remaining"`

	// RetryAfter is the whole seconds until the oldest in-window request
	// falls out. Zero when Allowed is true.
	RetryAfter int `json:"retryAfter,omitempty"`
}

// WindowCounter counts requests per (purpose, identifier) over a rolling
// window. The ledger for a key is the full ordered list of in-window request
// timestamps, replaced wholesale on every check. That costs one read and one
// write per call and keeps the window truly rolling, so a burst right at a
// bucket boundary cannot double the effective ceiling the way fixed-bucket
// counters allow. Lists stay short because ceilings are small.
type WindowCounter struct {
	store cache.Cache
	now   func() time.Time
}

// NewWindowCounter creates a counter backed by the given store.
func NewWindowCounter(store cache.Cache) *WindowCounter {
	return &WindowCounter{
		store: store,
		now:   time.Now,
	}
}

// Check records a request for (purpose, identifier) and reports whether it
// fits under maxRequests within the rolling window.
func (c *WindowCounter) Check(ctx context.Context, purpose, identifier string, window time.Duration, maxRequests int) (*CheckResult, error) {
	if maxRequests <= 0 || window <= 0 {
		return nil, fmt.Errorf("invalid window parameters: max=%d window=%s", maxRequests, window)
	}

	key := fmt.Sprintf("%s:%s", purpose, identifier)
	nowMs := c.now().UnixMilli()
	cutoff := nowMs - window.Milliseconds()

	timestamps, err := c.load(ctx, key)
	if err != nil {
		return nil, err
	}

	// Drop entries that have rolled out of the window
	surviving := timestamps[:0]
	for _, ts := range timestamps {
		if ts > cutoff {
			surviving = append(surviving, ts)
		}
	}

	ttl := window + ttlBuffer

	if len(surviving) >= maxRequests {
		// Rewrite the pruned list so the ledger never grows past the
		// ceiling even under sustained rejection
		if err := c.persist(ctx, key, surviving, ttl); err != nil {
			return nil, err
		}

		oldest := surviving[0]
		retryMs := oldest + window.Milliseconds() - nowMs
		retryAfter := int((retryMs + 999) / 1000)
		if retryAfter < 1 {
			retryAfter = 1
		}

		return &CheckResult{
			Allowed:    false,
			Remaining:  0,
			RetryAfter: retryAfter,
		}, nil
	}

	surviving = append(surviving, nowMs)
	if err := c.persist(ctx, key, surviving, ttl); err != nil {
		return nil, err
	}

	return &CheckResult{
		Allowed:   true,
		Remaining: maxRequests - len(surviving),
	}, nil
}

// load reads the timestamp list for a key. A missing key is an empty list.
func (c *WindowCounter) load(ctx context.Context, key string) ([]int64, error) {
	raw, err := c.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, cache.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read window ledger: %w", err)
	}

	var timestamps []int64
	if err := json.Unmarshal(raw, &timestamps); err != nil {
		// A corrupt ledger resets the window rather than locking the
		// identifier out
		return nil, nil
	}
	return timestamps, nil
}

// persist replaces the timestamp list for a key.
func (c *WindowCounter) persist(ctx context.Context, key string, timestamps []int64, ttl time.Duration) error {
	raw, err := json.Marshal(timestamps)
	if err != nil {
		return fmt.Errorf("failed to encode window ledger: %w", err)
	}
	if err := c.store.Set(ctx, key, raw, ttl); err != nil {
		return fmt.Errorf("failed to write window ledger: %w", err)
	}
	return nil
}
