package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Connection is a directed edge between two shapes of the same board.
// Metadata keeps the legacy points_json column name so existing rows stay readable.
type Connection struct {
	ID          string                           `gorm:"primaryKey" json:"id"`
	BoardID     uuid.UUID                        `gorm:"type:uuid;primaryKey" json:"boardId"`
	FromShapeID string                           `gorm:"not null" json:"fromShapeId"`
	ToShapeID   string                           `gorm:"not null" json:"toShapeId"`
	Metadata    datatypes.JSONType[EdgeMetadata] `gorm:"column:points_json" json:"metadata"`
	Seq         int                              `gorm:"not null;default:0" json:"-"`
	CreatedAt   time.Time                        `json:"createdAt"`
}
