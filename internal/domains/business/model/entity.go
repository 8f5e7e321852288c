package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Business represents a directory listing
type Business struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"` // immutable once set

	// Content & contact
	Description string `json:"description"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	ZipCode     string `json:"zip_code"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Website     string `json:"website"`

	// Media keys (relative to media storage)
	Logo          *string `json:"logo"`
	FeaturedImage *string `json:"featured_image"`

	// Relations
	CategoryID *uuid.UUID `json:"category"`
	OwnerID    *uuid.UUID `json:"owner"`

	// Status flags
	IsActive   bool `json:"is_active"`
	IsFeatured bool `json:"is_featured"`
	IsVerified bool `json:"is_verified"`
	Views      int  `json:"views"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Joined columns, empty when the relation is NULL
	CategoryName  string `json:"-"`
	CategorySlug  string `json:"-"`
	OwnerUsername string `json:"-"`
	OwnerEmail    string `json:"-"`
}

func (b *Business) URL() string {
	return "/businesses/" + b.Slug + "/"
}

// Location: "City, State" with empty parts dropped
func (b *Business) Location() string {
	parts := make([]string, 0, 2)
	if b.City != "" {
		parts = append(parts, b.City)
	}
	if b.State != "" {
		parts = append(parts, b.State)
	}
	return strings.Join(parts, ", ")
}

func (b *Business) IsOwnedBy(userID uuid.UUID) bool {
	return b.OwnerID != nil && *b.OwnerID == userID
}

// Stats for the staff dashboard
type Stats struct {
	Total   int
	Active  int
	Pending int
	Owners  int
}
