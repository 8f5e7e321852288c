package user

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository định nghĩa contract cho data access layer
type Repository interface {
	// Create returns ErrUsernameTaken on a duplicate username.
	Create(ctx context.Context, user *User) error

	// FindByID returns ErrUserNotFound if absent.
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByUsername returns ErrUserNotFound if absent.
	FindByUsername(ctx context.Context, username string) (*User, error)

	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error

	// SetStaff promotes or demotes an account.
	SetStaff(ctx context.Context, id uuid.UUID, staff bool) error

	SetPassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}
