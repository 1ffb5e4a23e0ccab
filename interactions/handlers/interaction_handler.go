// Copyright (c) 2025 Beta Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package handlers

import (
	"net/http"
	"net/url"

	"github.com/gofiber/fiber/v2"
	uuid "github.com/gofrs/uuid"
	"github.com/gorilla/schema"

	"github.com/betasocial/beta-api/interactions/errors"
	"github.com/betasocial/beta-api/interactions/models"
	"github.com/betasocial/beta-api/interactions/services"
	"github.com/betasocial/beta-api/internal/types"
)

// queryDecoder decodes query strings into typed structs
var queryDecoder = newQueryDecoder()

func newQueryDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

// InteractionHandler handles all interaction-related HTTP requests
type InteractionHandler struct {
	interactionService services.InteractionService
}

// NewInteractionHandler creates a new InteractionHandler with injected dependencies
func NewInteractionHandler(interactionService services.InteractionService) *InteractionHandler {
	return &InteractionHandler{
		interactionService: interactionService,
	}
}

// AddCommentRequest represents the request body for posting a comment
type AddCommentRequest struct {
	Text     string `json:"text"`
	ParentID string `json:"parentId,omitempty"` // UUID as string, empty for root comments
}

// statusQuery represents the query string of the batch status endpoints
type statusQuery struct {
	ContentIDs []string `schema:"contentIds"`
}

// ToggleLike flips the caller's like on a piece of content
// Endpoint: POST /interactions/:kind/:contentId/like
func (h *InteractionHandler) ToggleLike(c *fiber.Ctx) error {
	kind, contentID, ok, err := h.parseTarget(c)
	if !ok {
		return err
	}

	user, okUser := c.Locals(types.UserCtxName).(types.UserContext)
	if !okUser {
		return errors.HandleUserContextError(c, "Invalid user context")
	}

	result, err := h.interactionService.ToggleLike(c.Context(), kind, contentID, user.UserID)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(result)
}

// GetLikeStatus annotates a list of content ids with the viewer's like state
// Endpoint: GET /interactions/:kind/like-status?contentIds=<id>&contentIds=<id>
func (h *InteractionHandler) GetLikeStatus(c *fiber.Ctx) error {
	kind, ok, err := h.parseKind(c)
	if !ok {
		return err
	}

	contentIDs, ok, err := h.parseContentIDs(c)
	if !ok {
		return err
	}

	user, okUser := c.Locals(types.UserCtxName).(types.UserContext)
	if !okUser {
		return errors.HandleUserContextError(c, "Invalid user context")
	}

	statuses, err := h.interactionService.GetLikeStatusForContents(c.Context(), kind, contentIDs, user.UserID)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"statuses": statuses,
	})
}

// GetComments lists a content's comments with author fields, newest first
// Endpoint: GET /interactions/:kind/:contentId/comments
func (h *InteractionHandler) GetComments(c *fiber.Ctx) error {
	kind, contentID, ok, err := h.parseTarget(c)
	if !ok {
		return err
	}

	comments, err := h.interactionService.GetComments(c.Context(), kind, contentID)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"comments": comments,
	})
}

// AddComment posts a comment, optionally as a reply
// Endpoint: POST /interactions/:kind/:contentId/comments
// Body: {"text": "...", "parentId": "uuid"}
func (h *InteractionHandler) AddComment(c *fiber.Ctx) error {
	kind, contentID, ok, err := h.parseTarget(c)
	if !ok {
		return err
	}

	var req AddCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleInvalidRequestError(c, "Invalid request body")
	}

	var parentID *uuid.UUID
	if req.ParentID != "" {
		parsed, err := uuid.FromString(req.ParentID)
		if err != nil {
			return errors.HandleUUIDError(c, "parentId")
		}
		parentID = &parsed
	}

	user, okUser := c.Locals(types.UserCtxName).(types.UserContext)
	if !okUser {
		return errors.HandleUserContextError(c, "Invalid user context")
	}

	comment, err := h.interactionService.AddComment(c.Context(), kind, contentID, user.UserID, req.Text, parentID)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(comment)
}

// DeleteComment removes the caller's own comment
// Endpoint: DELETE /interactions/:kind/comments/:commentId
func (h *InteractionHandler) DeleteComment(c *fiber.Ctx) error {
	kind, ok, err := h.parseKind(c)
	if !ok {
		return err
	}

	commentID, err := uuid.FromString(c.Params("commentId"))
	if err != nil {
		return errors.HandleUUIDError(c, "commentId")
	}

	user, okUser := c.Locals(types.UserCtxName).(types.UserContext)
	if !okUser {
		return errors.HandleUserContextError(c, "Invalid user context")
	}

	if err := h.interactionService.DeleteComment(c.Context(), kind, commentID, user.UserID); err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Comment deleted successfully",
	})
}

// ToggleReaction flips one reaction type for the caller
// Endpoint: POST /interactions/:kind/:contentId/reactions/:reactionType
func (h *InteractionHandler) ToggleReaction(c *fiber.Ctx) error {
	kind, contentID, ok, err := h.parseTarget(c)
	if !ok {
		return err
	}

	reaction, err := models.ParseReactionType(c.Params("reactionType"))
	if err != nil {
		return errors.HandleValidationError(c, "Invalid reaction type", err.Error())
	}

	user, okUser := c.Locals(types.UserCtxName).(types.UserContext)
	if !okUser {
		return errors.HandleUserContextError(c, "Invalid user context")
	}

	result, err := h.interactionService.ToggleReaction(c.Context(), kind, contentID, reaction, user.UserID)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(result)
}

// GetReactionCounts returns the per-type reaction counters of a content row
// Endpoint: GET /interactions/:kind/:contentId/reactions
func (h *InteractionHandler) GetReactionCounts(c *fiber.Ctx) error {
	kind, contentID, ok, err := h.parseTarget(c)
	if !ok {
		return err
	}

	counts, err := h.interactionService.GetReactionCounts(c.Context(), kind, contentID)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(counts)
}

// GetReactionStatus annotates a list of content ids with the viewer's reactions
// Endpoint: GET /interactions/:kind/reaction-status?contentIds=<id>&contentIds=<id>
func (h *InteractionHandler) GetReactionStatus(c *fiber.Ctx) error {
	kind, ok, err := h.parseKind(c)
	if !ok {
		return err
	}

	contentIDs, ok, err := h.parseContentIDs(c)
	if !ok {
		return err
	}

	user, okUser := c.Locals(types.UserCtxName).(types.UserContext)
	if !okUser {
		return errors.HandleUserContextError(c, "Invalid user context")
	}

	statuses, err := h.interactionService.GetReactionStatusForContents(c.Context(), kind, contentIDs, user.UserID)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"statuses": statuses,
	})
}

// parseKind validates the :kind path segment. The bool reports whether
// parsing succeeded; on false the returned error is the response already
// written to the client.
func (h *InteractionHandler) parseKind(c *fiber.Ctx) (models.ContentKind, bool, error) {
	kind, err := models.ParseContentKind(c.Params("kind"))
	if err != nil {
		return "", false, errors.HandleValidationError(c, "Invalid content kind", err.Error())
	}
	return kind, true, nil
}

// parseTarget validates the :kind and :contentId path segments.
func (h *InteractionHandler) parseTarget(c *fiber.Ctx) (models.ContentKind, uuid.UUID, bool, error) {
	kind, ok, err := h.parseKind(c)
	if !ok {
		return "", uuid.Nil, false, err
	}

	contentID, err := uuid.FromString(c.Params("contentId"))
	if err != nil {
		return "", uuid.Nil, false, errors.HandleUUIDError(c, "contentId")
	}

	return kind, contentID, true, nil
}

// parseContentIDs decodes the repeated contentIds query parameter.
func (h *InteractionHandler) parseContentIDs(c *fiber.Ctx) ([]uuid.UUID, bool, error) {
	values := url.Values{}
	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		values.Add(string(key), string(value))
	})

	var query statusQuery
	if err := queryDecoder.Decode(&query, values); err != nil {
		return nil, false, errors.HandleInvalidRequestError(c, "Invalid query parameters")
	}
	if len(query.ContentIDs) == 0 {
		return nil, false, errors.HandleValidationError(c, "contentIds is required")
	}

	ids := make([]uuid.UUID, 0, len(query.ContentIDs))
	for _, raw := range query.ContentIDs {
		id, err := uuid.FromString(raw)
		if err != nil {
			return nil, false, errors.HandleUUIDError(c, "contentIds")
		}
		ids = append(ids, id)
	}
	return ids, true, nil
}
