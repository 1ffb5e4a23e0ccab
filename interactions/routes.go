// Copyright (c) 2025 Beta Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package interactions

import (
	"github.com/gofiber/fiber/v2"

	"github.com/betasocial/beta-api/interactions/handlers"
)

// InteractionHandlers holds all the handlers this router needs
type InteractionHandlers struct {
	InteractionHandler *handlers.InteractionHandler
}

// RegisterRoutes is the single entry point for setting up interaction routes.
// Authentication is supplied by the caller: routes in the authenticated group
// expect the resolved identity in fiber locals.
func RegisterRoutes(app *fiber.App, h *InteractionHandlers, authMiddleware fiber.Handler) {
	group := app.Group("/interactions")

	// --- Public read routes ---
	group.Get("/:kind/:contentId/comments", h.InteractionHandler.GetComments)
	group.Get("/:kind/:contentId/reactions", h.InteractionHandler.GetReactionCounts)

	// --- Authenticated routes ---
	userGroup := group.Group("", authMiddleware)

	userGroup.Post("/:kind/:contentId/like", h.InteractionHandler.ToggleLike)
	userGroup.Get("/:kind/like-status", h.InteractionHandler.GetLikeStatus)

	userGroup.Post("/:kind/:contentId/comments", h.InteractionHandler.AddComment)
	userGroup.Delete("/:kind/comments/:commentId", h.InteractionHandler.DeleteComment)

	userGroup.Post("/:kind/:contentId/reactions/:reactionType", h.InteractionHandler.ToggleReaction)
	userGroup.Get("/:kind/reaction-status", h.InteractionHandler.GetReactionStatus)
}
