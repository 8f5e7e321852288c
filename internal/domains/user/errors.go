package user

import "errors"

// Repository-level errors
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("A user with that username already exists.")
)

// Service-level (Business logic) errors
var (
	// Unknown user, wrong password and inactive account all map to this.
	ErrInvalidCredentials = errors.New("Invalid username or password")
	ErrUserInactive       = errors.New("user account is inactive")
)
