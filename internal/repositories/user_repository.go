package repositories

import (
	"errors"

	"shopsync/internal/models"
)

// ErrUserNotFound is returned when a user record does not exist.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the interface for identity-provider user records.
type UserRepository interface {
	Create(user *models.User) error
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	SetAdmin(id string, admin bool) error
}
