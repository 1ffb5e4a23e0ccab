// Package identity consumes the caller identity injected by the gateway in
// front of this service. The service never authenticates; it trusts the
// upstream headers the same way it would trust a verified token payload.
package identity

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	uuid "github.com/gofrs/uuid"

	"github.com/betasocial/beta-api/internal/types"
)

// Gateway-injected identity headers
const (
	HeaderUserID      = "X-User-Id"
	HeaderUsername    = "X-User-Name"
	HeaderDisplayName = "X-User-Display-Name"
	HeaderAvatar      = "X-User-Avatar"
)

// Config holds the configuration for the identity middleware
type Config struct {
	// Next defines a function to skip this middleware when returned true
	Next func(c *fiber.Ctx) bool
}

// New creates a middleware that resolves the caller identity from the gateway
// headers into fiber locals. Requests without a valid user id are rejected.
func New(config Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if config.Next != nil && config.Next(c) {
			return c.Next()
		}

		userID, err := uuid.FromString(c.Get(HeaderUserID))
		if err != nil || userID == uuid.Nil {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
				"code":    "UNAUTHORIZED",
				"message": "Missing or invalid caller identity",
			})
		}

		c.Locals(types.UserCtxName, types.UserContext{
			UserID:      userID,
			Username:    c.Get(HeaderUsername),
			DisplayName: c.Get(HeaderDisplayName),
			Avatar:      c.Get(HeaderAvatar),
		})

		return c.Next()
	}
}
