// Copyright (c) 2025 Beta Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"

	uuid "github.com/gofrs/uuid"
	"github.com/betasocial/beta-api/interactions/models"
)

// InteractionRepository defines the polymorphic data access for likes,
// comments and reactions across all content kinds. The kind parameter
// selects the concrete tables via the models.ContentKind mapping; no
// business rules live here, only table resolution and raw reads/writes.
type InteractionRepository interface {
	// GetOwnerID resolves the owning user of a content row via its
	// biography. Returns errors wrapping interactions/errors.ErrContentNotFound
	// if the content does not exist.
	GetOwnerID(ctx context.Context, kind models.ContentKind, contentID uuid.UUID) (uuid.UUID, error)

	// HasLiked reports whether the user currently likes the content.
	HasLiked(ctx context.Context, kind models.ContentKind, contentID, userID uuid.UUID) (bool, error)

	// AddLike inserts a like row. A unique-constraint violation on the
	// (content, user) pair surfaces as ErrAlreadyExists so callers can
	// treat a lost insert race as already-in-desired-state.
	AddLike(ctx context.Context, kind models.ContentKind, contentID, userID uuid.UUID) error

	// RemoveLike hard-deletes the like row if present.
	RemoveLike(ctx context.Context, kind models.ContentKind, contentID, userID uuid.UUID) error

	// GetLikeCount counts like rows for the content. This COUNT(*) is the
	// source of truth the denormalized like_count column is refreshed from.
	GetLikeCount(ctx context.Context, kind models.ContentKind, contentID uuid.UUID) (int, error)

	// BatchCheckLikes returns the subset of contentIDs the user has liked,
	// in a single query. Avoids N+1 existence checks on list endpoints.
	BatchCheckLikes(ctx context.Context, kind models.ContentKind, contentIDs []uuid.UUID, userID uuid.UUID) (map[uuid.UUID]bool, error)

	// UpdateLikeCount writes the denormalized like_count column.
	UpdateLikeCount(ctx context.Context, kind models.ContentKind, contentID uuid.UUID, count int) error

	// GetComments lists comments for the content joined with author display
	// fields, newest first.
	GetComments(ctx context.Context, kind models.ContentKind, contentID uuid.UUID) ([]models.CommentWithAuthor, error)

	// GetComment loads a single comment row (no author join). Returns
	// errors wrapping ErrCommentNotFound if absent.
	GetComment(ctx context.Context, kind models.ContentKind, commentID uuid.UUID) (*models.Comment, error)

	// GetCommentWithAuthor loads a single comment joined with author fields.
	GetCommentWithAuthor(ctx context.Context, kind models.ContentKind, commentID uuid.UUID) (*models.CommentWithAuthor, error)

	// AddComment inserts a comment row.
	AddComment(ctx context.Context, kind models.ContentKind, comment *models.Comment) error

	// DeleteComment hard-deletes a comment row.
	DeleteComment(ctx context.Context, kind models.ContentKind, commentID uuid.UUID) error

	// GetCommentCount counts comment rows for the content.
	GetCommentCount(ctx context.Context, kind models.ContentKind, contentID uuid.UUID) (int, error)

	// UpdateCommentCount writes the denormalized comment_count column.
	UpdateCommentCount(ctx context.Context, kind models.ContentKind, contentID uuid.UUID, count int) error

	// HasReaction reports whether the user holds the given reaction type on
	// the content.
	HasReaction(ctx context.Context, kind models.ContentKind, contentID, userID uuid.UUID, reaction models.ReactionType) (bool, error)

	// AddReaction inserts a reaction row. A unique-constraint violation on
	// the (content, user, type) triple surfaces as ErrAlreadyExists.
	AddReaction(ctx context.Context, kind models.ContentKind, contentID, userID uuid.UUID, reaction models.ReactionType) error

	// RemoveReaction hard-deletes the reaction row if present.
	RemoveReaction(ctx context.Context, kind models.ContentKind, contentID, userID uuid.UUID, reaction models.ReactionType) error

	// GetReactionCounts counts rows per reaction type for the content with
	// one grouped query.
	GetReactionCounts(ctx context.Context, kind models.ContentKind, contentID uuid.UUID) (models.ReactionCounts, error)

	// BatchGetUserReactions returns, per content id, the reaction types the
	// user holds, in a single query.
	BatchGetUserReactions(ctx context.Context, kind models.ContentKind, contentIDs []uuid.UUID, userID uuid.UUID) (map[uuid.UUID][]models.ReactionType, error)

	// UpdateReactionCounts writes all three denormalized reaction counters
	// with a single UPDATE.
	UpdateReactionCounts(ctx context.Context, kind models.ContentKind, contentID uuid.UUID, counts models.ReactionCounts) error
}
