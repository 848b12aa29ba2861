package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"process-maps-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const insertBatchSize = 200

type BoardContentRepo struct {
	db *gorm.DB
}

// BoardContentRepoInterface reads and replaces the shapes and connections of a board.
type BoardContentRepoInterface interface {
	GetBoardContent(ctx context.Context, boardID uuid.UUID) (*models.Board, error)
	ReplaceBoardContent(ctx context.Context, boardID uuid.UUID, shapes []models.Shape, connections []models.Connection) error
	DeleteBoard(ctx context.Context, boardID uuid.UUID) error
}

// NewBoardContentRepository returns a new instance of BoardContentRepo
func NewBoardContentRepository(db *gorm.DB) BoardContentRepoInterface {
	return &BoardContentRepo{db: db}
}

// GetBoardContent loads a board with its shapes and connections in saved order.
func (r *BoardContentRepo) GetBoardContent(ctx context.Context, boardID uuid.UUID) (*models.Board, error) {
	var board models.Board
	err := r.db.WithContext(ctx).
		Preload("Shapes", func(db *gorm.DB) *gorm.DB { return db.Order("seq") }).
		Preload("Connections", func(db *gorm.DB) *gorm.DB { return db.Order("seq") }).
		First(&board, "id = ?", boardID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBoardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get board content: %w", err)
	}
	return &board, nil
}

// ReplaceBoardContent swaps the whole node/edge set of a board in one transaction.
// Either every row is replaced and the board's updated_at is bumped, or nothing changes.
func (r *BoardContentRepo) ReplaceBoardContent(ctx context.Context, boardID uuid.UUID, shapes []models.Shape, connections []models.Connection) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("board_id = ?", boardID).Delete(&models.Connection{}).Error; err != nil {
			return fmt.Errorf("delete connections: %w", err)
		}
		if err := tx.Where("board_id = ?", boardID).Delete(&models.Shape{}).Error; err != nil {
			return fmt.Errorf("delete shapes: %w", err)
		}

		if len(shapes) > 0 {
			if err := tx.CreateInBatches(&shapes, insertBatchSize).Error; err != nil {
				return fmt.Errorf("create shapes: %w", err)
			}
		}
		if len(connections) > 0 {
			if err := tx.CreateInBatches(&connections, insertBatchSize).Error; err != nil {
				return fmt.Errorf("create connections: %w", err)
			}
		}

		res := tx.Model(&models.Board{}).Where("id = ?", boardID).Update("updated_at", time.Now())
		if res.Error != nil {
			return fmt.Errorf("touch board: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrBoardNotFound
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("replace board content: %w", err)
	}
	return nil
}

// DeleteBoard removes a board together with its shapes and connections.
func (r *BoardContentRepo) DeleteBoard(ctx context.Context, boardID uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("board_id = ?", boardID).Delete(&models.Connection{}).Error; err != nil {
			return err
		}
		if err := tx.Where("board_id = ?", boardID).Delete(&models.Shape{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", boardID).Delete(&models.Board{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrBoardNotFound
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete board: %w", err)
	}
	return nil
}
