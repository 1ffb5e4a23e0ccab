// Copyright (c) 2025 Beta Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package views

import (
	"context"
	"fmt"

	uuid "github.com/gofrs/uuid"

	"github.com/betasocial/beta-api/internal/pkg/log"
)

// ViewService records entity views with per-visitor deduplication.
type ViewService interface {
	// RecordView counts a view if this visitor has not been counted for
	// the entity inside the dedup window. Returns whether the view was
	// unique (and therefore counted).
	RecordView(ctx context.Context, kind EntityKind, entityID uuid.UUID, visitorIP string) (bool, error)
}

// viewService implements ViewService
type viewService struct {
	repo  ViewRepository
	dedup *ViewDeduplicator
}

// NewViewService creates a new view service
func NewViewService(repo ViewRepository, dedup *ViewDeduplicator) ViewService {
	return &viewService{
		repo:  repo,
		dedup: dedup,
	}
}

// RecordView checks the dedup ledger and increments the persisted count only
// on a first view. View counting is best-effort: if the ledger store is
// unreachable the view is simply not counted, because a page render must
// never fail on its view counter.
func (s *viewService) RecordView(ctx context.Context, kind EntityKind, entityID uuid.UUID, visitorIP string) (bool, error) {
	unique, err := s.dedup.MarkSeen(ctx, kind, entityID, visitorIP)
	if err != nil {
		log.WarnWithContext(ctx, "[ViewService] dedup ledger unavailable, skipping view for %s %s: %s", kind, entityID, err.Error())
		return false, nil
	}
	if !unique {
		return false, nil
	}

	if err := s.repo.IncrementViewCount(ctx, kind, entityID); err != nil {
		return false, fmt.Errorf("failed to record view for %s %s: %w", kind, entityID, err)
	}
	return true, nil
}
