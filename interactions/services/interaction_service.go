// Copyright (c) 2025 Beta Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	uuid "github.com/gofrs/uuid"

	interactionErrors "github.com/betasocial/beta-api/interactions/errors"
	"github.com/betasocial/beta-api/interactions/models"
	interactionRepository "github.com/betasocial/beta-api/interactions/repository"
	"github.com/betasocial/beta-api/internal/pkg/log"
	"github.com/betasocial/beta-api/notifications"
)

const notificationTimeout = 10 * time.Second

// notificationText holds the per-kind notification wording.
type notificationText struct {
	likedType        string
	likedTitle       string
	likedMessage     string
	commentedType    string
	commentedTitle   string
	commentedMessage string
}

var notificationTexts = map[models.ContentKind]notificationText{
	models.KindCoreStory: {
		likedType:        "core_story_liked",
		likedTitle:       "Your core story got a like",
		likedMessage:     "liked your core story",
		commentedType:    "core_story_commented",
		commentedTitle:   "New comment on your core story",
		commentedMessage: "commented on your core story",
	},
	models.KindOneLiner: {
		likedType:        "one_liner_liked",
		likedTitle:       "Your one-liner got a like",
		likedMessage:     "liked your one-liner",
		commentedType:    "one_liner_commented",
		commentedTitle:   "New comment on your one-liner",
		commentedMessage: "commented on your one-liner",
	},
	models.KindStory: {
		likedType:        "story_liked",
		likedTitle:       "Your story got a like",
		likedMessage:     "liked your story",
		commentedType:    "story_commented",
		commentedTitle:   "New comment on your story",
		commentedMessage: "commented on your story",
	},
}

// interactionService implements the InteractionService interface.
type interactionService struct {
	repo     interactionRepository.InteractionRepository
	notifier notifications.Notifier

	// spawn runs the notification dispatch off the critical path. Tests
	// replace it with a synchronous call.
	spawn func(fn func())
}

// NewInteractionService wires the interaction service with its dependencies.
func NewInteractionService(repo interactionRepository.InteractionRepository, notifier notifications.Notifier) InteractionService {
	return &interactionService{
		repo:     repo,
		notifier: notifier,
		spawn:    func(fn func()) { go fn() },
	}
}

// ToggleLike flips the caller's like on the content.
//
// The stored like row is the only source of truth for the current state; the
// denormalized like_count is recomputed from COUNT(*) after the mutation,
// never adjusted by ±1. Under a concurrent toggle both requests may read
// "not liked"; the unique (content, user) constraint rejects the second
// insert and that rejection is treated as already-in-desired-state.
func (s *interactionService) ToggleLike(ctx context.Context, kind models.ContentKind, contentID, userID uuid.UUID) (*models.LikeResult, error) {
	ownerID, err := s.repo.GetOwnerID(ctx, kind, contentID)
	if err != nil {
		return nil, err
	}

	hasLiked, err := s.repo.HasLiked(ctx, kind, contentID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check like state: %w", err)
	}

	liked := !hasLiked
	if hasLiked {
		if err := s.repo.RemoveLike(ctx, kind, contentID, userID); err != nil {
			return nil, fmt.Errorf("failed to remove like: %w", err)
		}
	} else {
		err := s.repo.AddLike(ctx, kind, contentID, userID)
		switch {
		case err == nil:
			if ownerID != userID {
				s.dispatchLikeNotification(kind, contentID, ownerID, userID)
			}
		case errors.Is(err, interactionErrors.ErrAlreadyExists):
			// Lost an insert race; the like exists, which is the state we
			// wanted. The winning request owns the notification.
			log.Warn("like insert lost race on %s %s, treating as liked", kind, contentID)
		default:
			return nil, fmt.Errorf("failed to add like: %w", err)
		}
	}

	likeCount, err := s.repo.GetLikeCount(ctx, kind, contentID)
	if err != nil {
		return nil, fmt.Errorf("failed to recompute like count: %w", err)
	}
	if err := s.repo.UpdateLikeCount(ctx, kind, contentID, likeCount); err != nil {
		return nil, fmt.Errorf("failed to persist like count: %w", err)
	}

	return &models.LikeResult{Liked: liked, LikeCount: likeCount}, nil
}

// GetLikeStatusForContents annotates content ids with the viewer's like state.
func (s *interactionService) GetLikeStatusForContents(ctx context.Context, kind models.ContentKind, contentIDs []uuid.UUID, userID uuid.UUID) ([]models.LikeStatus, error) {
	liked, err := s.repo.BatchCheckLikes(ctx, kind, contentIDs, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to batch check likes: %w", err)
	}

	statuses := make([]models.LikeStatus, 0, len(contentIDs))
	for _, id := range contentIDs {
		statuses = append(statuses, models.LikeStatus{ContentID: id, IsLiked: liked[id]})
	}
	return statuses, nil
}

// GetComments lists the content's comments, newest first.
func (s *interactionService) GetComments(ctx context.Context, kind models.ContentKind, contentID uuid.UUID) ([]models.CommentWithAuthor, error) {
	return s.repo.GetComments(ctx, kind, contentID)
}

// AddComment posts a comment and recomputes the comment count.
func (s *interactionService) AddComment(ctx context.Context, kind models.ContentKind, contentID, userID uuid.UUID, text string, parentID *uuid.UUID) (*models.CommentWithAuthor, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, interactionErrors.ErrEmptyCommentText
	}

	ownerID, err := s.repo.GetOwnerID(ctx, kind, contentID)
	if err != nil {
		return nil, err
	}

	if parentID != nil && *parentID != uuid.Nil {
		parent, err := s.repo.GetComment(ctx, kind, *parentID)
		if err != nil {
			if errors.Is(err, interactionErrors.ErrCommentNotFound) {
				return nil, fmt.Errorf("%w: %s", interactionErrors.ErrParentNotFound, *parentID)
			}
			return nil, fmt.Errorf("failed to load parent comment: %w", err)
		}
		if parent.ContentID != contentID {
			return nil, fmt.Errorf("%w: parent belongs to a different content", interactionErrors.ErrParentNotFound)
		}
	}

	commentID, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("failed to generate comment ID: %w", err)
	}

	comment := &models.Comment{
		ID:        commentID,
		ContentID: contentID,
		UserID:    userID,
		ParentID:  parentID,
		Text:      text,
	}
	if err := s.repo.AddComment(ctx, kind, comment); err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}

	commentCount, err := s.repo.GetCommentCount(ctx, kind, contentID)
	if err != nil {
		return nil, fmt.Errorf("failed to recompute comment count: %w", err)
	}
	if err := s.repo.UpdateCommentCount(ctx, kind, contentID, commentCount); err != nil {
		return nil, fmt.Errorf("failed to persist comment count: %w", err)
	}

	if ownerID != userID {
		s.dispatchCommentNotification(kind, contentID, ownerID, userID)
	}

	return s.repo.GetCommentWithAuthor(ctx, kind, commentID)
}

// DeleteComment removes the caller's own comment and recomputes the count
// against the comment's owning content.
func (s *interactionService) DeleteComment(ctx context.Context, kind models.ContentKind, commentID, userID uuid.UUID) error {
	comment, err := s.repo.GetComment(ctx, kind, commentID)
	if err != nil {
		return err
	}

	if comment.UserID != userID {
		return fmt.Errorf("%w: comment %s", interactionErrors.ErrCommentForbidden, commentID)
	}

	if err := s.repo.DeleteComment(ctx, kind, commentID); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	commentCount, err := s.repo.GetCommentCount(ctx, kind, comment.ContentID)
	if err != nil {
		return fmt.Errorf("failed to recompute comment count: %w", err)
	}
	if err := s.repo.UpdateCommentCount(ctx, kind, comment.ContentID, commentCount); err != nil {
		return fmt.Errorf("failed to persist comment count: %w", err)
	}

	return nil
}

// ToggleReaction flips one reaction type for the caller. No notifications are
// fired for reactions.
func (s *interactionService) ToggleReaction(ctx context.Context, kind models.ContentKind, contentID uuid.UUID, reaction models.ReactionType, userID uuid.UUID) (*models.ReactionResult, error) {
	if _, err := models.ParseReactionType(string(reaction)); err != nil {
		return nil, fmt.Errorf("%w: %s", interactionErrors.ErrInvalidReaction, reaction)
	}

	if _, err := s.repo.GetOwnerID(ctx, kind, contentID); err != nil {
		return nil, err
	}

	hasReacted, err := s.repo.HasReaction(ctx, kind, contentID, userID, reaction)
	if err != nil {
		return nil, fmt.Errorf("failed to check reaction state: %w", err)
	}

	reacted := !hasReacted
	if hasReacted {
		if err := s.repo.RemoveReaction(ctx, kind, contentID, userID, reaction); err != nil {
			return nil, fmt.Errorf("failed to remove reaction: %w", err)
		}
	} else {
		err := s.repo.AddReaction(ctx, kind, contentID, userID, reaction)
		switch {
		case err == nil:
		case errors.Is(err, interactionErrors.ErrAlreadyExists):
			log.Warn("reaction insert lost race on %s %s, treating as reacted", kind, contentID)
		default:
			return nil, fmt.Errorf("failed to add reaction: %w", err)
		}
	}

	counts, err := s.repo.GetReactionCounts(ctx, kind, contentID)
	if err != nil {
		return nil, fmt.Errorf("failed to recompute reaction counts: %w", err)
	}
	if err := s.repo.UpdateReactionCounts(ctx, kind, contentID, counts); err != nil {
		return nil, fmt.Errorf("failed to persist reaction counts: %w", err)
	}

	return &models.ReactionResult{Reacted: reacted, Counts: counts}, nil
}

// GetReactionCounts returns the per-type reaction counts for the content.
func (s *interactionService) GetReactionCounts(ctx context.Context, kind models.ContentKind, contentID uuid.UUID) (models.ReactionCounts, error) {
	return s.repo.GetReactionCounts(ctx, kind, contentID)
}

// GetReactionStatusForContents annotates content ids with the viewer's
// reaction types.
func (s *interactionService) GetReactionStatusForContents(ctx context.Context, kind models.ContentKind, contentIDs []uuid.UUID, userID uuid.UUID) ([]models.ReactionStatus, error) {
	reactions, err := s.repo.BatchGetUserReactions(ctx, kind, contentIDs, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to batch get reactions: %w", err)
	}

	statuses := make([]models.ReactionStatus, 0, len(contentIDs))
	for _, id := range contentIDs {
		statuses = append(statuses, models.ReactionStatus{ContentID: id, Reactions: reactions[id]})
	}
	return statuses, nil
}

// dispatchLikeNotification sends a like notification off the critical path.
func (s *interactionService) dispatchLikeNotification(kind models.ContentKind, contentID, ownerID, actorID uuid.UUID) {
	text := notificationTexts[kind]
	s.dispatch(&notifications.Notification{
		UserID:   ownerID,
		Type:     text.likedType,
		ActorID:  actorID,
		TargetID: contentID,
		Title:    text.likedTitle,
		Message:  text.likedMessage,
	})
}

// dispatchCommentNotification sends a comment notification off the critical path.
func (s *interactionService) dispatchCommentNotification(kind models.ContentKind, contentID, ownerID, actorID uuid.UUID) {
	text := notificationTexts[kind]
	s.dispatch(&notifications.Notification{
		UserID:   ownerID,
		Type:     text.commentedType,
		ActorID:  actorID,
		TargetID: contentID,
		Title:    text.commentedTitle,
		Message:  text.commentedMessage,
	})
}

// dispatch delivers a notification without ever blocking or failing the
// caller. The primary write already committed; a client disconnect or sink
// failure at this point must not surface. A fresh context is used so the
// delivery is not tied to the request lifetime.
func (s *interactionService) dispatch(notification *notifications.Notification) {
	s.spawn(func() {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error("notification dispatch panicked: %v", rec)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), notificationTimeout)
		defer cancel()

		if err := s.notifier.CreateNotification(ctx, notification); err != nil {
			log.Error("failed to create %s notification for user %s: %v", notification.Type, notification.UserID, err)
		}
	})
}
