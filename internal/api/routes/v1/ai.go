package v1

import (
	"process-maps-backend/internal/handlers"

	"github.com/gofiber/fiber/v2"
)

func registerAI(r fiber.Router, deps *Deps, requireSession fiber.Handler) {
	aiHandler := handlers.NewAIHandler(deps.Generator)

	handlersChain := []fiber.Handler{requireSession}
	if deps.AILimiter != nil {
		handlersChain = append(handlersChain, deps.AILimiter.Handler())
	}
	handlersChain = append(handlersChain, aiHandler.GenerateDiagram)

	r.Post("/ai/generate", handlersChain...)
}
