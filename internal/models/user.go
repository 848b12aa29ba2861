package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the account behind a session. Email is the identity handed to us by the auth provider.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatarUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Boards []Board `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
