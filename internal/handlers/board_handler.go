package handlers

import (
	"errors"
	"strings"
	"time"

	"process-maps-backend/internal/diagram"
	"process-maps-backend/internal/libraries"
	"process-maps-backend/internal/models"
	"process-maps-backend/internal/repo"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// BoardEventPublisher receives board change notifications for live subscribers.
type BoardEventPublisher interface {
	Publish(boardID string, eventType libraries.WebSocketMessageType, data interface{})
}

// for simple crud operations service layer is not required
type BoardHandler struct {
	users       repo.UserRepoInterface
	repo        repo.BoardRepoInterface
	contentRepo repo.BoardContentRepoInterface
	events      BoardEventPublisher
}

func NewBoardHandler(users repo.UserRepoInterface, boardRepo repo.BoardRepoInterface, contentRepo repo.BoardContentRepoInterface, events BoardEventPublisher) *BoardHandler {
	return &BoardHandler{
		users:       users,
		repo:        boardRepo,
		contentRepo: contentRepo,
		events:      events,
	}
}

// GetAllBoards lists the caller's boards, most recently updated first
func (h *BoardHandler) GetAllBoards(c *fiber.Ctx) error {
	user, err := currentUser(c, h.users)
	if err != nil {
		return err
	}

	boards, err := h.repo.GetBoardsByUser(c.UserContext(), user.ID)
	if err != nil {
		log.WithError(err).WithField("user_id", user.ID).Error("Error getting boards")
		return fiber.ErrInternalServerError
	}
	return c.Status(fiber.StatusOK).JSON(boards)
}

// CreateBoard creates an empty board owned by the caller
func (h *BoardHandler) CreateBoard(c *fiber.Ctx) error {
	user, err := currentUser(c, h.users)
	if err != nil {
		return err
	}

	var dto struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&dto); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	name := strings.TrimSpace(dto.Name)
	if name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Board name is required")
	}

	board := &models.Board{Name: name, UserID: user.ID}
	if err := h.repo.CreateBoard(c.UserContext(), board); err != nil {
		log.WithError(err).WithField("user_id", user.ID).Error("Error creating board")
		return fiber.ErrInternalServerError
	}

	return c.Status(fiber.StatusCreated).JSON(board)
}

// GetBoardByID returns the board's nodes and edges
func (h *BoardHandler) GetBoardByID(c *fiber.Ctx) error {
	user, err := currentUser(c, h.users)
	if err != nil {
		return err
	}
	boardID, err := boardIDParam(c)
	if err != nil {
		return err
	}

	board, err := h.contentRepo.GetBoardContent(c.UserContext(), boardID)
	if errors.Is(err, repo.ErrBoardNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Board not found")
	}
	if err != nil {
		log.WithError(err).WithField("board_id", boardID).Error("Error getting board")
		return fiber.ErrInternalServerError
	}
	if board.UserID != user.ID {
		return fiber.ErrUnauthorized
	}

	return c.Status(fiber.StatusOK).JSON(diagram.NewBoardView(*board))
}

// SaveBoard replaces the board's whole node/edge set
func (h *BoardHandler) SaveBoard(c *fiber.Ctx) error {
	board, err := h.ownedBoard(c)
	if err != nil {
		return err
	}

	var graph diagram.Graph
	if err := c.BodyParser(&graph); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := graph.Validate(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	shapes, connections := graph.Rows(board.ID)
	if err := h.contentRepo.ReplaceBoardContent(c.UserContext(), board.ID, shapes, connections); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"board_id": board.ID,
			"nodes":    len(shapes),
			"edges":    len(connections),
		}).Error("Error saving board")
		return fiber.ErrInternalServerError
	}

	h.publish(board.ID, libraries.WebSocketMessageTypeBoardSaved)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
	})
}

// DeleteBoard removes the board with all of its content
func (h *BoardHandler) DeleteBoard(c *fiber.Ctx) error {
	board, err := h.ownedBoard(c)
	if err != nil {
		return err
	}

	err = h.contentRepo.DeleteBoard(c.UserContext(), board.ID)
	if errors.Is(err, repo.ErrBoardNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Board not found")
	}
	if err != nil {
		log.WithError(err).WithField("board_id", board.ID).Error("Error deleting board")
		return fiber.ErrInternalServerError
	}

	h.publish(board.ID, libraries.WebSocketMessageTypeBoardDeleted)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
	})
}

// AuthorizeBoardSocket guards the websocket upgrade: only the owner may subscribe to a board.
func (h *BoardHandler) AuthorizeBoardSocket(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	board, err := h.ownedBoard(c)
	if err != nil {
		return err
	}
	c.Locals(libraries.LocalsBoardID, board.ID.String())
	return c.Next()
}

func (h *BoardHandler) ownedBoard(c *fiber.Ctx) (*models.Board, error) {
	user, err := currentUser(c, h.users)
	if err != nil {
		return nil, err
	}
	boardID, err := boardIDParam(c)
	if err != nil {
		return nil, err
	}

	board, err := h.repo.GetBoard(c.UserContext(), boardID)
	if errors.Is(err, repo.ErrBoardNotFound) {
		return nil, fiber.NewError(fiber.StatusNotFound, "Board not found")
	}
	if err != nil {
		log.WithError(err).WithField("board_id", boardID).Error("Error getting board")
		return nil, fiber.ErrInternalServerError
	}
	if board.UserID != user.ID {
		return nil, fiber.ErrUnauthorized
	}
	return board, nil
}

func (h *BoardHandler) publish(boardID uuid.UUID, eventType libraries.WebSocketMessageType) {
	if h.events == nil {
		return
	}
	h.events.Publish(boardID.String(), eventType, &libraries.BoardEventPayload{
		BoardId:   boardID.String(),
		UpdatedAt: time.Now().UTC(),
	})
}

func boardIDParam(c *fiber.Ctx) (uuid.UUID, error) {
	boardID, err := uuid.Parse(c.Params("boardId"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid board ID")
	}
	return boardID, nil
}
