// Copyright (c) 2025 Beta Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	interactionErrors "github.com/betasocial/beta-api/interactions/errors"
	"github.com/betasocial/beta-api/interactions/models"
	"github.com/betasocial/beta-api/internal/database/postgres"
)

// uniqueViolation is the PostgreSQL error code for unique constraint violations
const uniqueViolation = "23505"

// postgresInteractionRepository implements InteractionRepository using raw SQL.
// Table and column names are resolved from the content kind mapping; the kind
// is a closed enum, so interpolating the resolved names into SQL is safe.
type postgresInteractionRepository struct {
	client *postgres.Client
}

// NewPostgresInteractionRepository creates a new PostgreSQL repository for
// content interactions
func NewPostgresInteractionRepository(client *postgres.Client) InteractionRepository {
	return &postgresInteractionRepository{client: client}
}

// getExecutor returns either the transaction from context or the DB connection
func (r *postgresInteractionRepository) getExecutor(ctx context.Context) sqlx.ExtContext {
	if txVal := ctx.Value("tx"); txVal != nil {
		if tx, ok := txVal.(*sqlx.Tx); ok {
			return tx
		}
	}
	return r.client.DB()
}

// isUniqueViolation reports whether err is a unique-constraint violation
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// GetOwnerID resolves the owning user of a content row via its biography
func (r *postgresInteractionRepository) GetOwnerID(ctx context.Context, kind models.ContentKind, contentID uuid.UUID) (uuid.UUID, error) {
	t := kind.Tables()
	query := fmt.Sprintf(`
		SELECT b.user_id
		FROM %s c
		JOIN biographies b ON c.biography_id = b.id
		WHERE c.id = $1
	`, t.ContentTable)

	var ownerID uuid.UUID
	err := sqlx.GetContext(ctx, r.getExecutor(ctx), &ownerID, query, contentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, fmt.Errorf("%w: %s %s", interactionErrors.ErrContentNotFound, kind, contentID)
		}
		return uuid.Nil, fmt.Errorf("failed to resolve content owner: %w", err)
	}

	return ownerID, nil
}

// HasLiked reports whether the user currently likes the content
func (r *postgresInteractionRepository) HasLiked(ctx context.Context, kind models.ContentKind, contentID, userID uuid.UUID) (bool, error) {
	t := kind.Tables()
	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM %s WHERE %s = $1 AND user_id = $2
		)
	`, t.LikeTable, t.JoinColumn)

	var exists bool
	if err := sqlx.GetContext(ctx, r.getExecutor(ctx), &exists, query, contentID, userID); err != nil {
		return false, fmt.Errorf("failed to check like existence: %w", err)
	}
	return exists, nil
}

// AddLike inserts a like row for the (content, user) pair
func (r *postgresInteractionRepository) AddLike(ctx context.Context, kind models.ContentKind, contentID, userID uuid.UUID) error {
	likeID, err := uuid.NewV4()
	if err != nil {
		return fmt.Errorf("failed to generate like ID: %w", err)
	}

	t := kind.Tables()
	query := fmt.Sprintf(`
		INSERT INTO %s (id, %s, user_id, created_at)
		VALUES ($1, $2, $3, $4)
	`, t.LikeTable, t.JoinColumn)

	_, err = r.getExecutor(ctx).ExecContext(ctx, query, likeID, contentID, userID, time.Now().Unix())
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: like on %s %s", interactionErrors.ErrAlreadyExists, kind, contentID)
		}
		return fmt.Errorf("failed to insert like: %w", err)
	}
	return nil
}

// RemoveLike hard-deletes the like row if present
func (r *postgresInteractionRepository) RemoveLike(ctx context.Context, kind models.ContentKind, contentID, userID uuid.UUID) error {
	t := kind.Tables()
	query := fmt.Sprintf(`
		DELETE FROM %s WHERE %s = $1 AND user_id = $2
	`, t.LikeTable, t.JoinColumn)

	if _, err := r.getExecutor(ctx).ExecContext(ctx, query, contentID, userID); err != nil {
		return fmt.Errorf("failed to delete like: %w", err)
	}
	return nil
}

// GetLikeCount counts like rows for the content
func (r *postgresInteractionRepository) GetLikeCount(ctx context.Context, kind models.ContentKind, contentID uuid.UUID) (int, error) {
	t := kind.Tables()
	query := fmt.Sprintf(`
		SELECT COUNT(*) FROM %s WHERE %s = $1
	`, t.LikeTable, t.JoinColumn)

	var count int
	if err := sqlx.GetContext(ctx, r.getExecutor(ctx), &count, query, contentID); err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}

// BatchCheckLikes returns the subset of contentIDs the user has liked
func (r *postgresInteractionRepository) BatchCheckLikes(ctx context.Context, kind models.ContentKind, contentIDs []uuid.UUID, userID uuid.UUID) (map[uuid.UUID]bool, error) {
	liked := make(map[uuid.UUID]bool, len(contentIDs))
	if len(contentIDs) == 0 {
		return liked, nil
	}

	idsArray := make([]string, len(contentIDs))
	for i, id := range contentIDs {
		idsArray[i] = id.String()
	}

	t := kind.Tables()
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE user_id = $1 AND %s = ANY($2::uuid[])
	`, t.JoinColumn, t.LikeTable, t.JoinColumn)

	var likedIDs []uuid.UUID
	err := sqlx.SelectContext(ctx, r.getExecutor(ctx), &likedIDs, query, userID, pq.Array(idsArray))
	if err != nil {
		return nil, fmt.Errorf("failed to batch check likes: %w", err)
	}

	for _, id := range contentIDs {
		liked[id] = false
	}
	for _, id := range likedIDs {
		liked[id] = true
	}
	return liked, nil
}

// UpdateLikeCount writes the denormalized like_count column
func (r *postgresInteractionRepository) UpdateLikeCount(ctx context.Context, kind models.ContentKind, contentID uuid.UUID, count int) error {
	t := kind.Tables()
	query := fmt.Sprintf(`
		UPDATE %s SET like_count = $1 WHERE id = $2
	`, t.ContentTable)

	if _, err := r.getExecutor(ctx).ExecContext(ctx, query, count, contentID); err != nil {
		return fmt.Errorf("failed to update like count: %w", err)
	}
	return nil
}

// GetComments lists comments joined with author display fields, newest first
func (r *postgresInteractionRepository) GetComments(ctx context.Context, kind models.ContentKind, contentID uuid.UUID) ([]models.CommentWithAuthor, error) {
	t := kind.Tables()
	query := fmt.Sprintf(`
		SELECT c.id, c.%s AS content_id, c.user_id, c.parent_id, c.text, c.created_at,
		       u.username, u.display_name, u.avatar_url
		FROM %s c
		JOIN users u ON c.user_id = u.id
		WHERE c.%s = $1
		ORDER BY c.created_at DESC
	`, t.JoinColumn, t.CommentTable, t.JoinColumn)

	var comments []models.CommentWithAuthor
	if err := sqlx.SelectContext(ctx, r.getExecutor(ctx), &comments, query, contentID); err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// GetComment loads a single comment row without the author join
func (r *postgresInteractionRepository) GetComment(ctx context.Context, kind models.ContentKind, commentID uuid.UUID) (*models.Comment, error) {
	t := kind.Tables()
	query := fmt.Sprintf(`
		SELECT id, %s AS content_id, user_id, parent_id, text, created_at
		FROM %s
		WHERE id = $1
	`, t.JoinColumn, t.CommentTable)

	var comment models.Comment
	err := sqlx.GetContext(ctx, r.getExecutor(ctx), &comment, query, commentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", interactionErrors.ErrCommentNotFound, commentID)
		}
		return nil, fmt.Errorf("failed to load comment: %w", err)
	}
	return &comment, nil
}

// GetCommentWithAuthor loads a single comment joined with author fields
func (r *postgresInteractionRepository) GetCommentWithAuthor(ctx context.Context, kind models.ContentKind, commentID uuid.UUID) (*models.CommentWithAuthor, error) {
	t := kind.Tables()
	query := fmt.Sprintf(`
		SELECT c.id, c.%s AS content_id, c.user_id, c.parent_id, c.text, c.created_at,
		       u.username, u.display_name, u.avatar_url
		FROM %s c
		JOIN users u ON c.user_id = u.id
		WHERE c.id = $1
	`, t.JoinColumn, t.CommentTable)

	var comment models.CommentWithAuthor
	err := sqlx.GetContext(ctx, r.getExecutor(ctx), &comment, query, commentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", interactionErrors.ErrCommentNotFound, commentID)
		}
		return nil, fmt.Errorf("failed to load comment with author: %w", err)
	}
	return &comment, nil
}

// AddComment inserts a comment row
func (r *postgresInteractionRepository) AddComment(ctx context.Context, kind models.ContentKind, comment *models.Comment) error {
	if comment.CreatedAt == 0 {
		comment.CreatedAt = time.Now().Unix()
	}

	t := kind.Tables()
	query := fmt.Sprintf(`
		INSERT INTO %s (id, %s, user_id, parent_id, text, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, t.CommentTable, t.JoinColumn)

	_, err := r.getExecutor(ctx).ExecContext(ctx, query,
		comment.ID, comment.ContentID, comment.UserID, comment.ParentID, comment.Text, comment.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}
	return nil
}

// DeleteComment hard-deletes a comment row
func (r *postgresInteractionRepository) DeleteComment(ctx context.Context, kind models.ContentKind, commentID uuid.UUID) error {
	t := kind.Tables()
	query := fmt.Sprintf(`
		DELETE FROM %s WHERE id = $1
	`, t.CommentTable)

	if _, err := r.getExecutor(ctx).ExecContext(ctx, query, commentID); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}

// GetCommentCount counts comment rows for the content
func (r *postgresInteractionRepository) GetCommentCount(ctx context.Context, kind models.ContentKind, contentID uuid.UUID) (int, error) {
	t := kind.Tables()
	query := fmt.Sprintf(`
		SELECT COUNT(*) FROM %s WHERE %s = $1
	`, t.CommentTable, t.JoinColumn)

	var count int
	if err := sqlx.GetContext(ctx, r.getExecutor(ctx), &count, query, contentID); err != nil {
		return 0, fmt.Errorf("failed to count comments: %w", err)
	}
	return count, nil
}

// UpdateCommentCount writes the denormalized comment_count column
func (r *postgresInteractionRepository) UpdateCommentCount(ctx context.Context, kind models.ContentKind, contentID uuid.UUID, count int) error {
	t := kind.Tables()
	query := fmt.Sprintf(`
		UPDATE %s SET comment_count = $1 WHERE id = $2
	`, t.ContentTable)

	if _, err := r.getExecutor(ctx).ExecContext(ctx, query, count, contentID); err != nil {
		return fmt.Errorf("failed to update comment count: %w", err)
	}
	return nil
}

// HasReaction reports whether the user holds the reaction type on the content
func (r *postgresInteractionRepository) HasReaction(ctx context.Context, kind models.ContentKind, contentID, userID uuid.UUID, reaction models.ReactionType) (bool, error) {
	t := kind.Tables()
	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM %s WHERE %s = $1 AND user_id = $2 AND reaction_type = $3
		)
	`, t.ReactionTable, t.JoinColumn)

	var exists bool
	if err := sqlx.GetContext(ctx, r.getExecutor(ctx), &exists, query, contentID, userID, string(reaction)); err != nil {
		return false, fmt.Errorf("failed to check reaction existence: %w", err)
	}
	return exists, nil
}

// AddReaction inserts a reaction row for the (content, user, type) triple
func (r *postgresInteractionRepository) AddReaction(ctx context.Context, kind models.ContentKind, contentID, userID uuid.UUID, reaction models.ReactionType) error {
	reactionID, err := uuid.NewV4()
	if err != nil {
		return fmt.Errorf("failed to generate reaction ID: %w", err)
	}

	t := kind.Tables()
	query := fmt.Sprintf(`
		INSERT INTO %s (id, %s, user_id, reaction_type, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, t.ReactionTable, t.JoinColumn)

	_, err = r.getExecutor(ctx).ExecContext(ctx, query, reactionID, contentID, userID, string(reaction), time.Now().Unix())
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s reaction on %s %s", interactionErrors.ErrAlreadyExists, reaction, kind, contentID)
		}
		return fmt.Errorf("failed to insert reaction: %w", err)
	}
	return nil
}

// RemoveReaction hard-deletes the reaction row if present
func (r *postgresInteractionRepository) RemoveReaction(ctx context.Context, kind models.ContentKind, contentID, userID uuid.UUID, reaction models.ReactionType) error {
	t := kind.Tables()
	query := fmt.Sprintf(`
		DELETE FROM %s WHERE %s = $1 AND user_id = $2 AND reaction_type = $3
	`, t.ReactionTable, t.JoinColumn)

	if _, err := r.getExecutor(ctx).ExecContext(ctx, query, contentID, userID, string(reaction)); err != nil {
		return fmt.Errorf("failed to delete reaction: %w", err)
	}
	return nil
}

// GetReactionCounts counts rows per reaction type with one grouped query
func (r *postgresInteractionRepository) GetReactionCounts(ctx context.Context, kind models.ContentKind, contentID uuid.UUID) (models.ReactionCounts, error) {
	t := kind.Tables()
	query := fmt.Sprintf(`
		SELECT reaction_type, COUNT(*) AS count
		FROM %s
		WHERE %s = $1
		GROUP BY reaction_type
	`, t.ReactionTable, t.JoinColumn)

	type reactionRow struct {
		ReactionType string `db:"reaction_type"`
		Count        int    `db:"count"`
	}

	var rows []reactionRow
	if err := sqlx.SelectContext(ctx, r.getExecutor(ctx), &rows, query, contentID); err != nil {
		return models.ReactionCounts{}, fmt.Errorf("failed to count reactions: %w", err)
	}

	var counts models.ReactionCounts
	for _, row := range rows {
		switch models.ReactionType(row.ReactionType) {
		case models.ReactionMeToo:
			counts.MeToo = row.Count
		case models.ReactionPlusOne:
			counts.PlusOne = row.Count
		case models.ReactionWellSaid:
			counts.WellSaid = row.Count
		}
	}
	return counts, nil
}

// BatchGetUserReactions returns the user's reaction types per content id
func (r *postgresInteractionRepository) BatchGetUserReactions(ctx context.Context, kind models.ContentKind, contentIDs []uuid.UUID, userID uuid.UUID) (map[uuid.UUID][]models.ReactionType, error) {
	reactions := make(map[uuid.UUID][]models.ReactionType, len(contentIDs))
	if len(contentIDs) == 0 {
		return reactions, nil
	}

	idsArray := make([]string, len(contentIDs))
	for i, id := range contentIDs {
		idsArray[i] = id.String()
	}

	t := kind.Tables()
	query := fmt.Sprintf(`
		SELECT %s AS content_id, reaction_type
		FROM %s
		WHERE user_id = $1 AND %s = ANY($2::uuid[])
	`, t.JoinColumn, t.ReactionTable, t.JoinColumn)

	type reactionRow struct {
		ContentID    uuid.UUID `db:"content_id"`
		ReactionType string    `db:"reaction_type"`
	}

	var rows []reactionRow
	err := sqlx.SelectContext(ctx, r.getExecutor(ctx), &rows, query, userID, pq.Array(idsArray))
	if err != nil {
		return nil, fmt.Errorf("failed to batch get reactions: %w", err)
	}

	for _, row := range rows {
		reactions[row.ContentID] = append(reactions[row.ContentID], models.ReactionType(row.ReactionType))
	}
	return reactions, nil
}

// UpdateReactionCounts writes all three denormalized reaction counters atomically
func (r *postgresInteractionRepository) UpdateReactionCounts(ctx context.Context, kind models.ContentKind, contentID uuid.UUID, counts models.ReactionCounts) error {
	t := kind.Tables()
	query := fmt.Sprintf(`
		UPDATE %s
		SET me_too_count = $1, plus_one_count = $2, well_said_count = $3
		WHERE id = $4
	`, t.ContentTable)

	_, err := r.getExecutor(ctx).ExecContext(ctx, query, counts.MeToo, counts.PlusOne, counts.WellSaid, contentID)
	if err != nil {
		return fmt.Errorf("failed to update reaction counts: %w", err)
	}
	return nil
}
