package v1

import (
	"process-maps-backend/internal/handlers"
	"process-maps-backend/internal/libraries"

	"github.com/gofiber/fiber/v2"
)

func registerWebSocket(r fiber.Router, deps *Deps, requireSession fiber.Handler) {
	if deps.Hub == nil {
		return
	}
	boardHandler := handlers.NewBoardHandler(deps.Users, deps.Boards, deps.Content, deps.events())

	// Subscribers get board_saved / board_deleted events for boards they own
	r.Get("/ws/boards/:boardId", requireSession, boardHandler.AuthorizeBoardSocket, libraries.WebSocketHandler(deps.Hub))
}
