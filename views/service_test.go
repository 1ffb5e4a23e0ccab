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
	"github.com/stretchr/testify/mock"

	"github.com/betasocial/beta-api/internal/cache"
)

func newTestService(repo ViewRepository) (ViewService, cache.Cache) {
	store := cache.NewMemoryCache(nil)
	dedup := NewViewDeduplicator(store, time.Hour)
	return NewViewService(repo, dedup), store
}

func TestViewService_CountsFirstViewOnly(t *testing.T) {
	repo := new(MockViewRepository)
	service, store := newTestService(repo)
	defer store.Close()
	ctx := context.Background()

	entityID := uuid.Must(uuid.NewV4())
	repo.On("IncrementViewCount", mock.Anything, EntityCrag, entityID).Return(nil).Once()

	unique, err := service.RecordView(ctx, EntityCrag, entityID, "203.0.113.7")
	assert.NoError(t, err)
	assert.True(t, unique)

	unique, err = service.RecordView(ctx, EntityCrag, entityID, "203.0.113.7")
	assert.NoError(t, err)
	assert.False(t, unique)

	// The increment ran exactly once
	repo.AssertExpectations(t)
}

func TestViewService_DistinctVisitorsEachCount(t *testing.T) {
	repo := new(MockViewRepository)
	service, store := newTestService(repo)
	defer store.Close()
	ctx := context.Background()

	entityID := uuid.Must(uuid.NewV4())
	repo.On("IncrementViewCount", mock.Anything, EntityPost, entityID).Return(nil).Twice()

	unique, err := service.RecordView(ctx, EntityPost, entityID, "203.0.113.7")
	assert.NoError(t, err)
	assert.True(t, unique)

	unique, err = service.RecordView(ctx, EntityPost, entityID, "203.0.113.8")
	assert.NoError(t, err)
	assert.True(t, unique)

	repo.AssertExpectations(t)
}

func TestViewService_MissingEntity(t *testing.T) {
	repo := new(MockViewRepository)
	service, store := newTestService(repo)
	defer store.Close()
	ctx := context.Background()

	entityID := uuid.Must(uuid.NewV4())
	repo.On("IncrementViewCount", mock.Anything, EntityGym, entityID).Return(ErrEntityNotFound).Once()

	unique, err := service.RecordView(ctx, EntityGym, entityID, "203.0.113.7")
	assert.ErrorIs(t, err, ErrEntityNotFound)
	assert.False(t, unique)
}

func TestViewService_LedgerDownSkipsCount(t *testing.T) {
	repo := new(MockViewRepository)
	store := cache.NewMemoryCache(nil)
	dedup := NewViewDeduplicator(store, time.Hour)
	service := NewViewService(repo, dedup)
	ctx := context.Background()

	// A closed store fails every dedup check
	assert.NoError(t, store.Close())

	unique, err := service.RecordView(ctx, EntityCrag, uuid.Must(uuid.NewV4()), "203.0.113.7")
	assert.NoError(t, err)
	assert.False(t, unique)

	// No increment when the ledger cannot vouch for uniqueness
	repo.AssertNotCalled(t, "IncrementViewCount", mock.Anything, mock.Anything, mock.Anything)
}

func TestParseEntityKind(t *testing.T) {
	for _, kind := range EntityKinds() {
		parsed, err := ParseEntityKind(string(kind))
		assert.NoError(t, err)
		assert.Equal(t, kind, parsed)
		assert.NotEmpty(t, kind.Table())
	}

	_, err := ParseEntityKind("route")
	assert.ErrorIs(t, err, ErrInvalidEntityKind)
}
