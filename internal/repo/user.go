package repo

import (
	"context"
	"errors"
	"fmt"

	"process-maps-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepo struct {
	db *gorm.DB
}

type UserRepoInterface interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpsertUser(ctx context.Context, user *models.User) (*models.User, error)
}

func NewUserRepository(db *gorm.DB) UserRepoInterface {
	return &UserRepo{db: db}
}

// GetUserByEmail returns ErrUserNotFound when no account uses the email.
func (r *UserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &user, nil
}

// UpsertUser creates the user on first sign-in and refreshes the profile fields afterwards.
func (r *UserRepo) UpsertUser(ctx context.Context, user *models.User) (*models.User, error) {
	var stored models.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("email = ?", user.Email).First(&stored).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			stored = *user
			stored.ID = uuid.New()
			return tx.Create(&stored).Error
		}
		if err != nil {
			return err
		}

		stored.Name = user.Name
		stored.AvatarURL = user.AvatarURL
		return tx.Model(&stored).Updates(map[string]any{
			"name":       user.Name,
			"avatar_url": user.AvatarURL,
		}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}
	return &stored, nil
}
