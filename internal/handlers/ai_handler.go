package handlers

import (
	"errors"

	"process-maps-backend/internal/generator"
	"process-maps-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

type AIHandler struct {
	generator *generator.Generator
}

func NewAIHandler(gen *generator.Generator) *AIHandler {
	return &AIHandler{generator: gen}
}

// GenerateDiagram forwards the prompt to the completion provider and returns its diagram JSON as-is
func (h *AIHandler) GenerateDiagram(c *fiber.Ctx) error {
	var dto struct {
		Prompt string `json:"prompt"`
	}
	if err := c.BodyParser(&dto); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	result, err := h.generator.Generate(c.UserContext(), dto.Prompt)
	if errors.Is(err, generator.ErrEmptyPrompt) {
		return fiber.NewError(fiber.StatusBadRequest, "Prompt cannot be empty")
	}
	if err != nil {
		log.WithError(err).WithField("email", middleware.SessionEmail(c)).Error("Error generating diagram")
		return fiber.NewError(fiber.StatusInternalServerError, "Error generating diagram")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(fiber.StatusOK).Send(result)
}
