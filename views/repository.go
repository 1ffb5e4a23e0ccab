// Copyright (c) 2025 Beta Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package views

import (
	"context"
	"errors"
	"fmt"

	uuid "github.com/gofrs/uuid"

	"github.com/betasocial/beta-api/internal/database/postgres"
)

// EntityKind identifies which viewable entity a view lands on. Closed set;
// adding a kind means adding a constant and one entry to entityTables.
type EntityKind string

const (
	EntityPost    EntityKind = "post"
	EntityGym     EntityKind = "gym"
	EntityCrag    EntityKind = "crag"
	EntityGallery EntityKind = "gallery"
)

var entityTables = map[EntityKind]string{
	EntityPost:    "posts",
	EntityGym:     "gyms",
	EntityCrag:    "crags",
	EntityGallery: "galleries",
}

// Repository errors
var (
	ErrInvalidEntityKind = errors.New("invalid entity kind")
	ErrEntityNotFound    = errors.New("entity not found")
)

// ParseEntityKind validates a raw kind tag (e.g. from a URL segment).
func ParseEntityKind(raw string) (EntityKind, error) {
	kind := EntityKind(raw)
	if _, ok := entityTables[kind]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidEntityKind, raw)
	}
	return kind, nil
}

// Table returns the table name for the kind. The kind must have been
// validated with ParseEntityKind; unknown kinds panic to catch programming
// errors early rather than producing malformed SQL.
func (k EntityKind) Table() string {
	table, ok := entityTables[k]
	if !ok {
		panic(fmt.Sprintf("unmapped entity kind: %q", k))
	}
	return table
}

// EntityKinds returns all known entity kinds.
func EntityKinds() []EntityKind {
	return []EntityKind{EntityPost, EntityGym, EntityCrag, EntityGallery}
}

// ViewRepository persists view counts. Unlike interaction counters, a view
// count is a plain increment, not a recomputed COUNT(*): views are never
// un-viewed, so there is no toggle state to drift from.
type ViewRepository interface {
	// IncrementViewCount adds one to the entity's denormalized view count
	IncrementViewCount(ctx context.Context, kind EntityKind, entityID uuid.UUID) error
}

// postgresViewRepository implements ViewRepository using PostgreSQL
type postgresViewRepository struct {
	client *postgres.Client
}

// NewPostgresViewRepository creates a new PostgreSQL view repository
func NewPostgresViewRepository(client *postgres.Client) ViewRepository {
	return &postgresViewRepository{client: client}
}

// IncrementViewCount adds one to the entity's view count in a single
// statement.
func (r *postgresViewRepository) IncrementViewCount(ctx context.Context, kind EntityKind, entityID uuid.UUID) error {
	// Table name comes from the closed entityTables map, never from input
	query := fmt.Sprintf(`UPDATE %s SET view_count = view_count + 1 WHERE id = $1`, kind.Table())

	result, err := r.client.DB().ExecContext(ctx, query, entityID)
	if err != nil {
		return fmt.Errorf("failed to increment view count: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if rows == 0 {
		return ErrEntityNotFound
	}
	return nil
}
