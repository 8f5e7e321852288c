package service

import (
	"context"

	"github.com/google/uuid"

	"localbiz-backend/internal/domains/business/model"
	"localbiz-backend/internal/domains/category"
)

// =====================================================
// BUSINESS SERVICE INTERFACE
// =====================================================

type ServiceInterface interface {
	// ========================================
	// PUBLIC PAGES
	// ========================================

	Featured(ctx context.Context) ([]model.Business, error)
	List(ctx context.Context, filter model.ListFilter) (*model.ListResult, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID, rawPage string) (*model.ListResult, error)

	// Detail returns an active listing and counts the view.
	Detail(ctx context.Context, slug string) (*model.Business, error)

	// SearchAll is the unpaginated global search page.
	SearchAll(ctx context.Context, search, location string) ([]model.Business, error)
	SearchAjax(ctx context.Context, q string) ([]model.SearchHit, error)
	GlobalSearch(ctx context.Context, q string) ([]model.Business, error)
	LocationSuggestions(ctx context.Context, q string) ([]string, error)

	// ========================================
	// OWNER OPERATIONS
	// ========================================

	Create(ctx context.Context, ownerID uuid.UUID, form model.BusinessForm, uploads model.Uploads) (*model.Business, error)
	GetOwned(ctx context.Context, slug string, ownerID uuid.UUID) (*model.Business, error)
	Update(ctx context.Context, slug string, ownerID uuid.UUID, form model.BusinessForm, uploads model.Uploads) (*model.Business, error)
	Delete(ctx context.Context, slug string, ownerID uuid.UUID) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Business, error)

	// ========================================
	// API
	// ========================================

	ListPage(ctx context.Context, limit, offset int) ([]model.Business, int, error)
	APICreate(ctx context.Context, callerID uuid.UUID, req model.APICreateRequest) (*model.Business, error)

	// ========================================
	// STAFF
	// ========================================

	Stats(ctx context.Context) (*model.Stats, error)
	Recent(ctx context.Context, limit int) ([]model.Business, error)
	ListByStatus(ctx context.Context, status, rawPage string) (*model.ListResult, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*model.Business, error)
	ExportAll(ctx context.Context) ([]model.Business, error)
}

// CategoryLookup resolves the category slug posted by forms.
type CategoryLookup interface {
	GetBySlug(ctx context.Context, slug string) (*category.Category, error)
}

// MediaStore persists uploaded images and returns their storage keys.
type MediaStore interface {
	SaveLogo(ctx context.Context, data []byte) (string, error)
	SaveFeaturedImage(ctx context.Context, data []byte) (string, error)
	Delete(ctx context.Context, key string) error
}
