package user

import (
	"time"

	"github.com/google/uuid"
)

// User là domain entity - ánh xạ 1:1 với bảng users
type User struct {
	// Identity
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`

	// Authentication
	PasswordHash string `json:"-"` // Never expose in JSON

	// Authorization
	IsStaff  bool `json:"is_staff"`
	IsActive bool `json:"is_active"`

	// Activity
	DateJoined time.Time  `json:"date_joined"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
}

// UserDTO is the public projection used in API responses.
type UserDTO struct {
	ID         uuid.UUID `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	IsStaff    bool      `json:"is_staff"`
	DateJoined time.Time `json:"date_joined"`
}

func (u *User) ToDTO() UserDTO {
	return UserDTO{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		IsStaff:    u.IsStaff,
		DateJoined: u.DateJoined,
	}
}
