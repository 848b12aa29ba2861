package routes

import (
	"process-maps-backend/internal/api/routes/v1"

	"github.com/gofiber/fiber/v2"
)

func Register(app *fiber.App, deps *v1.Deps) {
	// the editor talks to the unversioned /api prefix; v1 is its only version
	api := app.Group("/api")

	// Register v1 routes
	v1.RegisterRoutes(api, deps)
}
