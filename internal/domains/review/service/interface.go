package service

import (
	"context"

	"github.com/google/uuid"

	bizmodel "localbiz-backend/internal/domains/business/model"
	"localbiz-backend/internal/domains/review/model"
)

// =====================================================
// REVIEW SERVICE INTERFACE
// =====================================================

type ServiceInterface interface {
	// ========================================
	// USER OPERATIONS
	// ========================================

	// Create posts a review from the HTML form; it starts unapproved.
	Create(ctx context.Context, userID uuid.UUID, form model.ReviewForm) (*model.Review, error)

	// List returns every review regardless of approval.
	List(ctx context.Context) ([]model.Review, error)

	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Review, error)

	// ForBusiness returns approved reviews plus the rating summary.
	ForBusiness(ctx context.Context, businessID uuid.UUID) (*model.BusinessReviews, error)

	// ========================================
	// API
	// ========================================

	ListPage(ctx context.Context, limit, offset int) ([]model.Review, int, error)
	APICreate(ctx context.Context, callerID uuid.UUID, req model.APICreateRequest) (*model.Review, error)

	// ========================================
	// ADMIN OPERATIONS
	// ========================================

	ListByStatus(ctx context.Context, status, rawPage string) (*model.ListResult, error)
	Approve(ctx context.Context, id uuid.UUID) (*model.Review, error)
	Recent(ctx context.Context, limit int) ([]model.Review, error)
	Stats(ctx context.Context) (*model.Stats, error)
	CountApproved(ctx context.Context) (int, error)
}

// BusinessLookup resolves the business a review form points at.
type BusinessLookup interface {
	FindActiveBySlug(ctx context.Context, slug string) (*bizmodel.Business, error)
}
