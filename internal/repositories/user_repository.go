package repositories

import (
	"context"
	"errors"

	"dailydiet/internal/models"
)

var (
	// ErrUserNotFound is returned when no user has the requested ID.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateUser is returned when a user with the same ID already exists.
	ErrDuplicateUser = errors.New("user already exists")
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
}
