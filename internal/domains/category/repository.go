package category

import (
	"context"
)

// Repository định nghĩa data access cho categories
type Repository interface {
	// Create returns ErrSlugExists or ErrParentNotFound on constraint violations.
	Create(ctx context.Context, c *Category) error
	FindBySlug(ctx context.Context, slug string) (*Category, error)
	SlugExists(ctx context.Context, slug string) (bool, error)

	// ListWithCounts returns every category (any status) with business_count over all listings.
	ListWithCounts(ctx context.Context) ([]Category, error)
	ListPaged(ctx context.Context, limit, offset int) ([]Category, int, error)
	ListFirst(ctx context.Context, limit int) ([]Category, error)
	SearchActive(ctx context.Context, term string, limit int) ([]Category, error)
	TopByBusinessCount(ctx context.Context, limit int) ([]Category, error)

	Count(ctx context.Context, activeOnly bool) (int, error)
	Delete(ctx context.Context, slug string) error
}
