package handlers

import (
	"errors"

	"process-maps-backend/internal/middleware"
	"process-maps-backend/internal/models"
	"process-maps-backend/internal/repo"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// currentUser resolves the session email to a stored user.
func currentUser(c *fiber.Ctx, users repo.UserRepoInterface) (*models.User, error) {
	email := middleware.SessionEmail(c)
	if email == "" {
		return nil, fiber.ErrUnauthorized
	}

	user, err := users.GetUserByEmail(c.UserContext(), email)
	if errors.Is(err, repo.ErrUserNotFound) {
		return nil, fiber.NewError(fiber.StatusNotFound, "User not found")
	}
	if err != nil {
		log.WithError(err).Error("Error resolving session user")
		return nil, fiber.ErrInternalServerError
	}
	return user, nil
}
