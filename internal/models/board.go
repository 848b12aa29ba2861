package models

import (
	"time"

	"github.com/google/uuid"
)

// Board represents the database model
type Board struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `gorm:"index" json:"updatedAt"`

	Shapes      []Shape      `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"shapes,omitempty"`
	Connections []Connection `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"connections,omitempty"`
}
