package repository

import (
	"context"

	"github.com/google/uuid"

	"localbiz-backend/internal/domains/business/model"
)

// =====================================================
// BUSINESS REPOSITORY INTERFACE
// =====================================================

type RepositoryInterface interface {
	// ========================================
	// WRITE
	// ========================================

	// Create maps constraint violations to ErrSlugExists, ErrCategoryNotFound and ErrOwnerNotFound.
	Create(ctx context.Context, b *model.Business) error

	// UpdateOwned updates editable fields where id and owner match. Slug is never written.
	UpdateOwned(ctx context.Context, b *model.Business, ownerID uuid.UUID) error

	DeleteOwned(ctx context.Context, slug string, ownerID uuid.UUID) error

	// IncrementViews atomically bumps the counter of an active listing and returns the new value.
	IncrementViews(ctx context.Context, id uuid.UUID) (int, error)

	SetActive(ctx context.Context, id uuid.UUID, active bool) error

	// ========================================
	// LOOKUP
	// ========================================

	SlugExists(ctx context.Context, slug string) (bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Business, error)
	FindActiveBySlug(ctx context.Context, slug string) (*model.Business, error)
	FindOwnedBySlug(ctx context.Context, slug string, ownerID uuid.UUID) (*model.Business, error)

	// ========================================
	// LISTING
	// ========================================

	// List applies q and paginates; limit <= 0 returns every match. Totals come from Count.
	List(ctx context.Context, q model.Query, limit, offset int) ([]model.Business, error)
	Count(ctx context.Context, q model.Query) (int, error)
	Featured(ctx context.Context, limit int) ([]model.Business, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Business, error)
	Recent(ctx context.Context, limit int) ([]model.Business, error)

	// QuickSearch matches active name OR description OR city.
	QuickSearch(ctx context.Context, term string, limit int) ([]model.Business, error)

	// NameSearch matches active name OR description.
	NameSearch(ctx context.Context, term string, limit int) ([]model.Business, error)

	// LocationSuggestions returns distinct "City, State" strings of active listings.
	LocationSuggestions(ctx context.Context, term string, limit int) ([]string, error)

	Stats(ctx context.Context) (*model.Stats, error)
}
