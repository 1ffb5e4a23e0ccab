package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Interaction service specific errors
var (
	ErrContentNotFound    = errors.New("content not found")
	ErrCommentNotFound    = errors.New("comment not found")
	ErrParentNotFound     = errors.New("parent comment not found")
	ErrCommentForbidden   = errors.New("comment ownership required")
	ErrEmptyCommentText   = errors.New("comment text cannot be empty")
	ErrAlreadyExists      = errors.New("interaction already exists")
	ErrInvalidContentKind = errors.New("invalid content kind")
	ErrInvalidReaction    = errors.New("invalid reaction type")

	// Database and system errors
	ErrDatabaseOperation = errors.New("database operation failed")
)

// Error codes
const (
	CodeContentNotFound  = "CONTENT_NOT_FOUND"
	CodeCommentNotFound  = "COMMENT_NOT_FOUND"
	CodePermissionDenied = "PERMISSION_DENIED"
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeInvalidUUID      = "INVALID_UUID"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeDatabaseError    = "DATABASE_OPERATION_FAILED"
	CodeInternalError    = "INTERNAL_ERROR"
)

// ErrorResponse represents the standardized error response format
type ErrorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// HandleServiceError maps service errors to HTTP responses
func HandleServiceError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrContentNotFound):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Code:    CodeContentNotFound,
			Message: "Content not found",
			Details: err.Error(),
		})
	case errors.Is(err, ErrCommentNotFound), errors.Is(err, ErrParentNotFound):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Code:    CodeCommentNotFound,
			Message: "Comment not found",
			Details: err.Error(),
		})
	case errors.Is(err, ErrCommentForbidden):
		return c.Status(http.StatusForbidden).JSON(ErrorResponse{
			Code:    CodePermissionDenied,
			Message: "Comment ownership required",
			Details: err.Error(),
		})
	case errors.Is(err, ErrEmptyCommentText),
		errors.Is(err, ErrInvalidContentKind),
		errors.Is(err, ErrInvalidReaction):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Code:    CodeValidationFailed,
			Message: "Validation failed",
			Details: err.Error(),
		})
	case errors.Is(err, ErrDatabaseOperation):
		return c.Status(http.StatusServiceUnavailable).JSON(ErrorResponse{
			Code:    CodeDatabaseError,
			Message: "Database operation failed",
			Details: err.Error(),
		})
	default:
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Code:    CodeInternalError,
			Message: "An unexpected error occurred",
			Details: err.Error(),
		})
	}
}

// HandleValidationError handles validation errors with 400 Bad Request
func HandleValidationError(c *fiber.Ctx, message string, details ...string) error {
	response := ErrorResponse{
		Code:    CodeValidationFailed,
		Message: message,
	}
	if len(details) > 0 {
		response.Details = details[0]
	}
	return c.Status(http.StatusBadRequest).JSON(response)
}

// HandleUserContextError returns an error for invalid user context
func HandleUserContextError(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusUnauthorized).JSON(ErrorResponse{
		Code:    CodeUnauthorized,
		Message: message,
	})
}

// HandleUUIDError handles UUID parsing errors with 400 Bad Request
func HandleUUIDError(c *fiber.Ctx, fieldName string) error {
	message := fmt.Sprintf("Invalid %s format", fieldName)
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
		Code:    CodeInvalidUUID,
		Message: message,
		Details: message,
	})
}

// HandleInvalidRequestError handles invalid request errors with 400 Bad Request
func HandleInvalidRequestError(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
		Code:    "INVALID_REQUEST",
		Message: message,
		Details: message,
	})
}
