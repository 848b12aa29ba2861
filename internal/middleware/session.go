package middleware

import (
	"strings"

	"process-maps-backend/internal/auth"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

const localsEmail = "session_email"

// RequireSession rejects requests without a valid session cookie or bearer token and
// stores the session email for the handlers.
func RequireSession(sessions *auth.Sessions) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := sessions.Verify(c.Cookies(auth.CookieName))
		if err != nil {
			// a stale cookie must not shadow a valid bearer token
			if token := bearerToken(c.Get(fiber.HeaderAuthorization)); token != "" {
				claims, err = sessions.Verify(token)
			}
		}
		if err != nil {
			log.WithError(err).WithField("path", c.Path()).Debug("rejected session")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		c.Locals(localsEmail, claims.Email)
		return c.Next()
	}
}

// SessionEmail returns the email stored by RequireSession, or "" outside a session.
func SessionEmail(c *fiber.Ctx) string {
	email, _ := c.Locals(localsEmail).(string)
	return email
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
