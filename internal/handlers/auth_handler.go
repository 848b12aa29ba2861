package handlers

import (
	"strings"
	"time"

	"process-maps-backend/internal/auth"
	"process-maps-backend/internal/models"
	"process-maps-backend/internal/repo"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

const stateCookieName = "oauth_state"

type AuthHandler struct {
	github      *auth.GitHub
	sessions    *auth.Sessions
	users       repo.UserRepoInterface
	frontendURL string
}

func NewAuthHandler(github *auth.GitHub, sessions *auth.Sessions, users repo.UserRepoInterface, frontendURL string) *AuthHandler {
	return &AuthHandler{
		github:      github,
		sessions:    sessions,
		users:       users,
		frontendURL: frontendURL,
	}
}

// GitHubLogin redirects to GitHub with a fresh state cookie
func (h *AuthHandler) GitHubLogin(c *fiber.Ctx) error {
	if h.github == nil || !h.github.Enabled() {
		return fiber.NewError(fiber.StatusServiceUnavailable, "GitHub sign-in is not configured")
	}

	state, err := auth.NewState()
	if err != nil {
		log.WithError(err).Error("Error creating oauth state")
		return fiber.ErrInternalServerError
	}
	c.Cookie(&fiber.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		Expires:  time.Now().Add(10 * time.Minute),
		HTTPOnly: true,
		Secure:   h.secureCookies(),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Redirect(h.github.AuthCodeURL(state), fiber.StatusTemporaryRedirect)
}

// GitHubCallback completes the code flow, stores the user and starts a session
func (h *AuthHandler) GitHubCallback(c *fiber.Ctx) error {
	if h.github == nil || !h.github.Enabled() {
		return fiber.NewError(fiber.StatusServiceUnavailable, "GitHub sign-in is not configured")
	}

	state := c.Query("state")
	if state == "" || state != c.Cookies(stateCookieName) {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid OAuth state")
	}
	c.ClearCookie(stateCookieName)

	code := c.Query("code")
	if code == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Missing OAuth code")
	}

	profile, err := h.github.Exchange(c.UserContext(), code)
	if err != nil {
		log.WithError(err).Error("Error completing GitHub sign-in")
		return fiber.ErrUnauthorized
	}

	user, err := h.users.UpsertUser(c.UserContext(), &models.User{
		Email:     profile.Email,
		Name:      profile.Name,
		AvatarURL: profile.AvatarURL,
	})
	if err != nil {
		log.WithError(err).WithField("email", profile.Email).Error("Error storing user")
		return fiber.ErrInternalServerError
	}

	if err := h.startSession(c, user); err != nil {
		return err
	}
	return c.Redirect(h.frontendURL, fiber.StatusTemporaryRedirect)
}

// Me returns the signed-in user
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := currentUser(c, h.users)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(user)
}

// Logout clears the session cookie
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   h.secureCookies(),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
	})
}

func (h *AuthHandler) startSession(c *fiber.Ctx, user *models.User) error {
	token, err := h.sessions.Issue(user.Email, user.Name)
	if err != nil {
		log.WithError(err).WithField("user_id", user.ID).Error("Error issuing session")
		return fiber.ErrInternalServerError
	}
	c.Cookie(&fiber.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.sessions.TTL()),
		HTTPOnly: true,
		Secure:   h.secureCookies(),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return nil
}

func (h *AuthHandler) secureCookies() bool {
	return strings.HasPrefix(h.frontendURL, "https://")
}
