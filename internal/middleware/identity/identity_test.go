package identity

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	uuid "github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/betasocial/beta-api/internal/types"
)

func newTestApp() (*fiber.App, *types.UserContext) {
	var captured types.UserContext

	app := fiber.New()
	app.Get("/me", New(Config{}), func(c *fiber.Ctx) error {
		captured = c.Locals(types.UserCtxName).(types.UserContext)
		return c.SendStatus(http.StatusOK)
	})

	return app, &captured
}

func TestIdentity_ResolvesHeaders(t *testing.T) {
	app, captured := newTestApp()
	userID := uuid.Must(uuid.NewV4())

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(HeaderUserID, userID.String())
	req.Header.Set(HeaderUsername, "crimper")
	req.Header.Set(HeaderDisplayName, "Crimper McGee")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, userID, captured.UserID)
	assert.Equal(t, "crimper", captured.Username)
	assert.Equal(t, "Crimper McGee", captured.DisplayName)
}

func TestIdentity_RejectsMissingOrInvalidID(t *testing.T) {
	app, _ := newTestApp()

	for _, header := range []string{"", "not-a-uuid", uuid.Nil.String()} {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if header != "" {
			req.Header.Set(HeaderUserID, header)
		}

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "header %q must be rejected", header)
	}
}
