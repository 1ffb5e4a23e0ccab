// Copyright (c) 2025 Beta Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"

	uuid "github.com/gofrs/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/betasocial/beta-api/interactions/models"
)

// MockInteractionRepository is a mock implementation of InteractionRepository for testing
type MockInteractionRepository struct {
	mock.Mock
}

// GetOwnerID mocks the GetOwnerID method
func (m *MockInteractionRepository) GetOwnerID(ctx context.Context, kind models.ContentKind, contentID uuid.UUID) (uuid.UUID, error) {
	args := m.Called(ctx, kind, contentID)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

// HasLiked mocks the HasLiked method
func (m *MockInteractionRepository) HasLiked(ctx context.Context, kind models.ContentKind, contentID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, kind, contentID, userID)
	return args.Bool(0), args.Error(1)
}

// AddLike mocks the AddLike method
func (m *MockInteractionRepository) AddLike(ctx context.Context, kind models.ContentKind, contentID, userID uuid.UUID) error {
	args := m.Called(ctx, kind, contentID, userID)
	return args.Error(0)
}

// RemoveLike mocks the RemoveLike method
func (m *MockInteractionRepository) RemoveLike(ctx context.Context, kind models.ContentKind, contentID, userID uuid.UUID) error {
	args := m.Called(ctx, kind, contentID, userID)
	return args.Error(0)
}

// GetLikeCount mocks the GetLikeCount method
func (m *MockInteractionRepository) GetLikeCount(ctx context.Context, kind models.ContentKind, contentID uuid.UUID) (int, error) {
	args := m.Called(ctx, kind, contentID)
	return args.Int(0), args.Error(1)
}

// BatchCheckLikes mocks the BatchCheckLikes method
func (m *MockInteractionRepository) BatchCheckLikes(ctx context.Context, kind models.ContentKind, contentIDs []uuid.UUID, userID uuid.UUID) (map[uuid.UUID]bool, error) {
	args := m.Called(ctx, kind, contentIDs, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]bool), args.Error(1)
}

// UpdateLikeCount mocks the UpdateLikeCount method
func (m *MockInteractionRepository) UpdateLikeCount(ctx context.Context, kind models.ContentKind, contentID uuid.UUID, count int) error {
	args := m.Called(ctx, kind, contentID, count)
	return args.Error(0)
}

// GetComments mocks the GetComments method
func (m *MockInteractionRepository) GetComments(ctx context.Context, kind models.ContentKind, contentID uuid.UUID) ([]models.CommentWithAuthor, error) {
	args := m.Called(ctx, kind, contentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CommentWithAuthor), args.Error(1)
}

// GetComment mocks the GetComment method
func (m *MockInteractionRepository) GetComment(ctx context.Context, kind models.ContentKind, commentID uuid.UUID) (*models.Comment, error) {
	args := m.Called(ctx, kind, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

// GetCommentWithAuthor mocks the GetCommentWithAuthor method
func (m *MockInteractionRepository) GetCommentWithAuthor(ctx context.Context, kind models.ContentKind, commentID uuid.UUID) (*models.CommentWithAuthor, error) {
	args := m.Called(ctx, kind, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CommentWithAuthor), args.Error(1)
}

// AddComment mocks the AddComment method
func (m *MockInteractionRepository) AddComment(ctx context.Context, kind models.ContentKind, comment *models.Comment) error {
	args := m.Called(ctx, kind, comment)
	return args.Error(0)
}

// DeleteComment mocks the DeleteComment method
func (m *MockInteractionRepository) DeleteComment(ctx context.Context, kind models.ContentKind, commentID uuid.UUID) error {
	args := m.Called(ctx, kind, commentID)
	return args.Error(0)
}

// GetCommentCount mocks the GetCommentCount method
func (m *MockInteractionRepository) GetCommentCount(ctx context.Context, kind models.ContentKind, contentID uuid.UUID) (int, error) {
	args := m.Called(ctx, kind, contentID)
	return args.Int(0), args.Error(1)
}

// UpdateCommentCount mocks the UpdateCommentCount method
func (m *MockInteractionRepository) UpdateCommentCount(ctx context.Context, kind models.ContentKind, contentID uuid.UUID, count int) error {
	args := m.Called(ctx, kind, contentID, count)
	return args.Error(0)
}

// HasReaction mocks the HasReaction method
func (m *MockInteractionRepository) HasReaction(ctx context.Context, kind models.ContentKind, contentID, userID uuid.UUID, reaction models.ReactionType) (bool, error) {
	args := m.Called(ctx, kind, contentID, userID, reaction)
	return args.Bool(0), args.Error(1)
}

// AddReaction mocks the AddReaction method
func (m *MockInteractionRepository) AddReaction(ctx context.Context, kind models.ContentKind, contentID, userID uuid.UUID, reaction models.ReactionType) error {
	args := m.Called(ctx, kind, contentID, userID, reaction)
	return args.Error(0)
}

// RemoveReaction mocks the RemoveReaction method
func (m *MockInteractionRepository) RemoveReaction(ctx context.Context, kind models.ContentKind, contentID, userID uuid.UUID, reaction models.ReactionType) error {
	args := m.Called(ctx, kind, contentID, userID, reaction)
	return args.Error(0)
}

// GetReactionCounts mocks the GetReactionCounts method
func (m *MockInteractionRepository) GetReactionCounts(ctx context.Context, kind models.ContentKind, contentID uuid.UUID) (models.ReactionCounts, error) {
	args := m.Called(ctx, kind, contentID)
	return args.Get(0).(models.ReactionCounts), args.Error(1)
}

// BatchGetUserReactions mocks the BatchGetUserReactions method
func (m *MockInteractionRepository) BatchGetUserReactions(ctx context.Context, kind models.ContentKind, contentIDs []uuid.UUID, userID uuid.UUID) (map[uuid.UUID][]models.ReactionType, error) {
	args := m.Called(ctx, kind, contentIDs, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID][]models.ReactionType), args.Error(1)
}

// UpdateReactionCounts mocks the UpdateReactionCounts method
func (m *MockInteractionRepository) UpdateReactionCounts(ctx context.Context, kind models.ContentKind, contentID uuid.UUID, counts models.ReactionCounts) error {
	args := m.Called(ctx, kind, contentID, counts)
	return args.Error(0)
}
