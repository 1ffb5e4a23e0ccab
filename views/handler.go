// Copyright (c) 2025 Beta Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package views

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	uuid "github.com/gofrs/uuid"
)

// ViewHandler handles view tracking HTTP requests
type ViewHandler struct {
	viewService ViewService
}

// NewViewHandler creates a new ViewHandler with injected dependencies
func NewViewHandler(viewService ViewService) *ViewHandler {
	return &ViewHandler{viewService: viewService}
}

// RecordView tracks one view of an entity by the calling visitor
// Endpoint: POST /views/:kind/:entityId
func (h *ViewHandler) RecordView(c *fiber.Ctx) error {
	kind, err := ParseEntityKind(c.Params("kind"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"code":    "VALIDATION_FAILED",
			"message": "Invalid entity kind",
		})
	}

	entityID, err := uuid.FromString(c.Params("entityId"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"code":    "INVALID_UUID",
			"message": "Invalid entityId format",
		})
	}

	counted, err := h.viewService.RecordView(c.Context(), kind, entityID, c.IP())
	if err != nil {
		if errors.Is(err, ErrEntityNotFound) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{
				"code":    "ENTITY_NOT_FOUND",
				"message": "Entity not found",
			})
		}
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"code":    "INTERNAL_ERROR",
			"message": "Failed to record view",
		})
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"counted": counted,
	})
}

// RegisterRoutes is the single entry point for setting up view routes. Views
// are anonymous; no identity middleware is required.
func RegisterRoutes(app *fiber.App, h *ViewHandler) {
	app.Post("/views/:kind/:entityId", h.RecordView)
}
