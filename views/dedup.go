// Copyright (c) 2025 Beta Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package views

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	uuid "github.com/gofrs/uuid"

	"github.com/betasocial/beta-api/internal/cache"
)

// DefaultDedupTTL is how long one visitor stays "already counted" for one
// entity.
const DefaultDedupTTL = 24 * time.Hour

// dedupSentinel is the stored value; only the key's presence matters.
var dedupSentinel = []byte("1")

// ViewDeduplicator suppresses duplicate view counts from the same visitor
// within the TTL window. Visitor IPs are hashed before use as keys; the store
// never holds a raw IP.
type ViewDeduplicator struct {
	store cache.Cache
	ttl   time.Duration
}

// NewViewDeduplicator creates a deduplicator backed by the given store.
func NewViewDeduplicator(store cache.Cache, ttl time.Duration) *ViewDeduplicator {
	if ttl <= 0 {
		ttl = DefaultDedupTTL
	}
	return &ViewDeduplicator{
		store: store,
		ttl:   ttl,
	}
}

// MarkSeen records that a visitor viewed an entity. It returns true when this
// is the visitor's first view of the entity inside the window.
func (d *ViewDeduplicator) MarkSeen(ctx context.Context, kind EntityKind, entityID uuid.UUID, visitorIP string) (bool, error) {
	key := dedupKey(kind, entityID, visitorIP)

	exists, err := d.store.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("failed to check view dedup entry: %w", err)
	}
	if exists {
		return false, nil
	}

	if err := d.store.Set(ctx, key, dedupSentinel, d.ttl); err != nil {
		return false, fmt.Errorf("failed to write view dedup entry: %w", err)
	}
	return true, nil
}

// dedupKey builds the ledger key for one (entity, visitor) pair.
func dedupKey(kind EntityKind, entityID uuid.UUID, visitorIP string) string {
	return fmt.Sprintf("views:%s:%s:%s", kind, entityID, hashVisitor(visitorIP))
}

// hashVisitor reduces an IP to the first 8 bytes of its SHA-256, hex encoded.
// Enough to tell visitors apart, never reversible to the address.
func hashVisitor(visitorIP string) string {
	sum := sha256.Sum256([]byte(visitorIP))
	return hex.EncodeToString(sum[:8])
}
