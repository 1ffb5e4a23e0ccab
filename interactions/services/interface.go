// Copyright (c) 2025 Beta Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"

	uuid "github.com/gofrs/uuid"
	"github.com/betasocial/beta-api/interactions/models"
)

// InteractionService is the business core for likes, comments and quick
// reactions on biography content. All toggles work by existence check: the
// caller can only ask to toggle, never to force a target state, so a retried
// request cannot double-apply.
type InteractionService interface {
	// ToggleLike flips the caller's like on the content and returns the new
	// state with the freshly recomputed like count.
	ToggleLike(ctx context.Context, kind models.ContentKind, contentID, userID uuid.UUID) (*models.LikeResult, error)

	// GetLikeStatusForContents annotates a list of content ids with the
	// viewer's like state using one batched query.
	GetLikeStatusForContents(ctx context.Context, kind models.ContentKind, contentIDs []uuid.UUID, userID uuid.UUID) ([]models.LikeStatus, error)

	// GetComments lists the content's comments with author display fields,
	// newest first.
	GetComments(ctx context.Context, kind models.ContentKind, contentID uuid.UUID) ([]models.CommentWithAuthor, error)

	// AddComment posts a comment (optionally as a reply to parentID) and
	// returns it joined with the author's display fields.
	AddComment(ctx context.Context, kind models.ContentKind, contentID, userID uuid.UUID, text string, parentID *uuid.UUID) (*models.CommentWithAuthor, error)

	// DeleteComment removes the caller's own comment. Deleting another
	// user's comment fails with ErrCommentForbidden.
	DeleteComment(ctx context.Context, kind models.ContentKind, commentID, userID uuid.UUID) error

	// ToggleReaction flips one reaction type for the caller and returns the
	// new state with all three recomputed reaction counters.
	ToggleReaction(ctx context.Context, kind models.ContentKind, contentID uuid.UUID, reaction models.ReactionType, userID uuid.UUID) (*models.ReactionResult, error)

	// GetReactionCounts returns the per-type reaction counts for the content.
	GetReactionCounts(ctx context.Context, kind models.ContentKind, contentID uuid.UUID) (models.ReactionCounts, error)

	// GetReactionStatusForContents annotates a list of content ids with the
	// viewer's reaction types using one batched query.
	GetReactionStatusForContents(ctx context.Context, kind models.ContentKind, contentIDs []uuid.UUID, userID uuid.UUID) ([]models.ReactionStatus, error)
}
