// Copyright (c) 2025 Beta Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package views

import (
	"context"
	"testing"
	"time"

	uuid "github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/betasocial/beta-api/internal/cache"
)

func TestViewDeduplicator_FirstViewIsUnique(t *testing.T) {
	store := cache.NewMemoryCache(nil)
	defer store.Close()
	dedup := NewViewDeduplicator(store, time.Hour)
	ctx := context.Background()

	entityID := uuid.Must(uuid.NewV4())

	unique, err := dedup.MarkSeen(ctx, EntityCrag, entityID, "203.0.113.7")
	assert.NoError(t, err)
	assert.True(t, unique)

	unique, err = dedup.MarkSeen(ctx, EntityCrag, entityID, "203.0.113.7")
	assert.NoError(t, err)
	assert.False(t, unique)
}

func TestViewDeduplicator_WindowExpires(t *testing.T) {
	store := cache.NewMemoryCache(nil)
	defer store.Close()
	dedup := NewViewDeduplicator(store, 20*time.Millisecond)
	ctx := context.Background()

	entityID := uuid.Must(uuid.NewV4())

	unique, err := dedup.MarkSeen(ctx, EntityPost, entityID, "203.0.113.7")
	assert.NoError(t, err)
	assert.True(t, unique)

	time.Sleep(40 * time.Millisecond)

	unique, err = dedup.MarkSeen(ctx, EntityPost, entityID, "203.0.113.7")
	assert.NoError(t, err)
	assert.True(t, unique)
}

func TestViewDeduplicator_LedgersAreScoped(t *testing.T) {
	store := cache.NewMemoryCache(nil)
	defer store.Close()
	dedup := NewViewDeduplicator(store, time.Hour)
	ctx := context.Background()

	entityID := uuid.Must(uuid.NewV4())
	otherID := uuid.Must(uuid.NewV4())

	unique, err := dedup.MarkSeen(ctx, EntityGym, entityID, "203.0.113.7")
	assert.NoError(t, err)
	assert.True(t, unique)

	// Different visitor, same entity
	unique, err = dedup.MarkSeen(ctx, EntityGym, entityID, "203.0.113.8")
	assert.NoError(t, err)
	assert.True(t, unique)

	// Same visitor, different entity
	unique, err = dedup.MarkSeen(ctx, EntityGym, otherID, "203.0.113.7")
	assert.NoError(t, err)
	assert.True(t, unique)

	// Same visitor and id, different kind
	unique, err = dedup.MarkSeen(ctx, EntityGallery, entityID, "203.0.113.7")
	assert.NoError(t, err)
	assert.True(t, unique)
}

func TestHashVisitor_NeverStoresRawIP(t *testing.T) {
	hashed := hashVisitor("203.0.113.7")

	assert.Len(t, hashed, 16)
	assert.NotContains(t, hashed, "203")

	// Stable across calls, distinct across inputs
	assert.Equal(t, hashed, hashVisitor("203.0.113.7"))
	assert.NotEqual(t, hashed, hashVisitor("203.0.113.8"))
}
