package category

import (
	"time"

	"github.com/google/uuid"
)

// ============================================================
// ENTITY: Category
// ============================================================
// Category gắn nhãn cho business, cây parent_id không kiểm tra vòng lặp
//
// DATABASE MAPPING:
// ┌─────────────────────────┐
// │    categories table     │
// ├─────────────────────────┤
// │ id (UUID) - PRIMARY KEY │
// │ name (VARCHAR 100)      │
// │ slug (VARCHAR) - UNIQUE │
// │ parent_id (UUID) - FK   │
// │ description (TEXT)      │
// │ is_active (BOOLEAN)     │
// │ created_at              │
// └─────────────────────────┘
type Category struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	ParentID    *uuid.UUID `json:"parent"`
	Description string     `json:"description"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`

	// Derived, filled by list queries
	BusinessCount int `json:"business_count"`
}

const (
	NameMaxLength = 100
	SlugMaxLength = 120

	// HomeTeaserSize is how many categories the home page shows.
	HomeTeaserSize = 8
)

// URL trả về đường dẫn trang category
func (c *Category) URL() string {
	return "/categories/" + c.Slug + "/"
}
