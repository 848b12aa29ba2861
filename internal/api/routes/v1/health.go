package v1

import (
	"process-maps-backend/internal/handlers"

	"github.com/gofiber/fiber/v2"
)

func registerHealth(r fiber.Router, deps *Deps) {
	r.Get("/health", handlers.NewHealthHandler(deps.DB).Health)
}
