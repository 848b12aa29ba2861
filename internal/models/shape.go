package models

import (
	"time"

	"github.com/google/uuid"
)

type ShapeType string

const (
	ShapeRectangle ShapeType = "rectangle"
	ShapeDiamond   ShapeType = "diamond"
	ShapeCircle    ShapeType = "circle"
	ShapeSticky    ShapeType = "sticky"
)

const (
	DefaultShapeWidth  = 150
	DefaultShapeHeight = 50
	StickyShapeHeight  = 100
)

func (t ShapeType) Valid() bool {
	switch t {
	case ShapeRectangle, ShapeDiamond, ShapeCircle, ShapeSticky:
		return true
	}
	return false
}

// Size returns the stored width and height for a shape type. Client supplied sizes are never kept.
func (t ShapeType) Size() (width, height float64) {
	if t == ShapeSticky {
		return DefaultShapeWidth, StickyShapeHeight
	}
	return DefaultShapeWidth, DefaultShapeHeight
}

// Shape is a node on a board. The id comes from the editor and is only unique within its board.
type Shape struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	BoardID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"boardId"`
	Type      ShapeType `gorm:"not null;default:'rectangle'" json:"type"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	Width     float64   `json:"width"`
	Height    float64   `json:"height"`
	Text      string    `json:"text"`
	Seq       int       `gorm:"not null;default:0" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}
