package user

import (
	"context"

	"github.com/google/uuid"
)

// Service định nghĩa business logic layer contract
type Service interface {
	// Register creates an ordinary account. Validation failures come back as validation.Errors.
	Register(ctx context.Context, req RegisterRequest) (*User, error)

	// Authenticate returns ErrInvalidCredentials for unknown users, wrong passwords and inactive accounts.
	Authenticate(ctx context.Context, req LoginRequest) (*User, error)

	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// IssueToken authenticates and signs an API access token.
	IssueToken(ctx context.Context, req LoginRequest) (*TokenResponse, error)

	// EnsureStaff creates a staff account, or promotes and resets the password of an existing one.
	EnsureStaff(ctx context.Context, req RegisterRequest) (*User, bool, error)
}
