package middleware_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"crm/internal/middleware"
	"crm/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedApp(t *testing.T) (*fiber.App, *services.AuthService) {
	t.Helper()
	hash, err := services.HashSecret("s3cret")
	require.NoError(t, err)
	authService := services.NewAuthService("crm-jobs", hash, "test_jwt_secret", time.Hour)

	app := fiber.New()
	app.Use(middleware.AuthRequired(authService))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("client_id").(string))
	})
	return app, authService
}

func TestAuthRequired(t *testing.T) {
	app, authService := newProtectedApp(t)
	token, err := authService.IssueToken("crm-jobs", "s3cret")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", fiber.StatusUnauthorized},
		{"wrong scheme", "Basic abc", fiber.StatusUnauthorized},
		{"garbage token", "Bearer not.a.token", fiber.StatusUnauthorized},
		{"valid token", "Bearer " + token, fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}
