package repo

import (
	"context"
	"errors"
	"fmt"

	"process-maps-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BoardRepo represents the repository for the board model
type BoardRepo struct {
	db *gorm.DB
}

type BoardRepoInterface interface {
	CreateBoard(ctx context.Context, board *models.Board) error
	GetBoardsByUser(ctx context.Context, userID uuid.UUID) ([]models.Board, error)
	GetBoard(ctx context.Context, boardID uuid.UUID) (*models.Board, error)
}

func NewBoardRepository(db *gorm.DB) BoardRepoInterface {
	return &BoardRepo{db: db}
}

// CreateBoard creates a new board in the database
func (r *BoardRepo) CreateBoard(ctx context.Context, board *models.Board) error {
	board.ID = uuid.New()
	if err := r.db.WithContext(ctx).Create(board).Error; err != nil {
		return fmt.Errorf("create board: %w", err)
	}
	return nil
}

// GetBoardsByUser returns the user's boards, most recently updated first
func (r *BoardRepo) GetBoardsByUser(ctx context.Context, userID uuid.UUID) ([]models.Board, error) {
	boards := []models.Board{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at desc").
		Find(&boards).Error
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	return boards, nil
}

// GetBoard returns the board row without its content
func (r *BoardRepo) GetBoard(ctx context.Context, boardID uuid.UUID) (*models.Board, error) {
	var board models.Board
	err := r.db.WithContext(ctx).First(&board, "id = ?", boardID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBoardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get board: %w", err)
	}
	return &board, nil
}
