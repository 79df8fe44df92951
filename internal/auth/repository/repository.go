package repository

import (
	"errors"

	"authws-backend/internal/auth/domain"
)

// ErrDuplicateKey is returned by Create when a username or email collides
// with an existing row. The underlying store's unique constraints are the
// source of truth, so a concurrent-register race still surfaces here.
var ErrDuplicateKey = errors.New("duplicate username or email")

// UserRepository defines user persistence operations.
// Find methods return (nil, nil) when no row matches.
type UserRepository interface {
	Create(user *domain.User) error
	FindByID(id string) (*domain.User, error)
	FindByUsername(username string) (*domain.User, error)
	FindByEmail(email string) (*domain.User, error)
	FindAll() ([]domain.User, error)
	// UpdateProfileImage persists the user's new profile image together
	// with its history row; either both writes land or neither does.
	UpdateProfileImage(user *domain.User, image *domain.UserImage) error
}
