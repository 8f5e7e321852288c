package category

import "context"

// Service định nghĩa business logic cho categories
type Service interface {
	List(ctx context.Context) ([]Category, error)
	Teaser(ctx context.Context) ([]Category, error)
	GetBySlug(ctx context.Context, slug string) (*Category, error)
	Search(ctx context.Context, term string, limit int) ([]Category, error)
	Top(ctx context.Context, limit int) ([]Category, error)
	Count(ctx context.Context, activeOnly bool) (int, error)

	// ListPage is the API listing; page is already validated by the caller.
	ListPage(ctx context.Context, limit, offset int) ([]Category, int, error)

	Create(ctx context.Context, req CreateRequest) (*Category, error)
	Delete(ctx context.Context, slug string) error
}
