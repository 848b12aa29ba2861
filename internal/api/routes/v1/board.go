package v1

import (
	"process-maps-backend/internal/handlers"

	"github.com/gofiber/fiber/v2"
)

func registerBoard(r fiber.Router, deps *Deps, requireSession fiber.Handler) {
	// Initialize handler
	boardHandler := handlers.NewBoardHandler(deps.Users, deps.Boards, deps.Content, deps.events())

	// Register routes
	boards := r.Group("/boards", requireSession)
	boards.Get("/", boardHandler.GetAllBoards)
	boards.Post("/", boardHandler.CreateBoard)
	boards.Get("/:boardId", boardHandler.GetBoardByID)
	boards.Put("/:boardId", boardHandler.SaveBoard)
	boards.Delete("/:boardId", boardHandler.DeleteBoard)
}
