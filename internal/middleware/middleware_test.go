package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"process-maps-backend/internal/auth"
	"process-maps-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionApp(t *testing.T) (*fiber.App, *auth.Sessions) {
	t.Helper()
	sessions, err := auth.NewSessions([]byte("test-secret"), time.Hour)
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/me", middleware.RequireSession(sessions), func(c *fiber.Ctx) error {
		return c.SendString(middleware.SessionEmail(c))
	})
	return app, sessions
}

func TestRequireSession(t *testing.T) {
	app, sessions := newSessionApp(t)
	token, err := sessions.Issue("ada@example.com", "Ada")
	require.NoError(t, err)

	t.Run("Cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Bearer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Missing", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/me", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Stale Cookie With Bearer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: "expired.session.token"})
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Stale Cookie Only", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: "expired.session.token"})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Wrong Scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Basic "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestRateLimiter(t *testing.T) {
	t.Run("Per Key Burst", func(t *testing.T) {
		limiter := middleware.NewRateLimiter(2)
		assert.True(t, limiter.Allow("ada"))
		assert.True(t, limiter.Allow("ada"))
		assert.False(t, limiter.Allow("ada"))
		assert.True(t, limiter.Allow("bob"))
	})

	t.Run("Disabled", func(t *testing.T) {
		limiter := middleware.NewRateLimiter(0)
		for i := 0; i < 100; i++ {
			require.True(t, limiter.Allow("ada"))
		}
	})

	t.Run("Handler", func(t *testing.T) {
		app := fiber.New()
		app.Post("/ai", middleware.NewRateLimiter(1).Handler(), func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		})

		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/ai", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/ai", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	})
}
