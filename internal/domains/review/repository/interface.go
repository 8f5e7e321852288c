package repository

import (
	"context"

	"github.com/google/uuid"

	"localbiz-backend/internal/domains/review/model"
)

// =====================================================
// REVIEW REPOSITORY INTERFACE
// =====================================================

type ReviewRepository interface {
	// ========================================
	// CRUD Operations
	// ========================================

	// Create maps the (business, user) unique constraint to ErrAlreadyReviewed.
	Create(ctx context.Context, review *model.Review) error

	GetByID(ctx context.Context, id uuid.UUID) (*model.Review, error)

	// ========================================
	// LIST Operations
	// ========================================

	// ListAll returns every review regardless of approval, newest first.
	ListAll(ctx context.Context) ([]model.Review, error)

	ListPaged(ctx context.Context, limit, offset int) ([]model.Review, int, error)

	// ListApprovedByBusiness is what the detail page shows.
	ListApprovedByBusiness(ctx context.Context, businessID uuid.UUID) ([]model.Review, error)

	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Review, error)

	// ListByApproval lists for moderation; approved == nil means all.
	ListByApproval(ctx context.Context, approved *bool, limit, offset int) ([]model.Review, int, error)

	Recent(ctx context.Context, limit int) ([]model.Review, error)

	// ========================================
	// STATISTICS
	// ========================================

	// Summary aggregates approved reviews of one business.
	Summary(ctx context.Context, businessID uuid.UUID) (model.RatingSummary, error)

	Stats(ctx context.Context) (*model.Stats, error)

	CountApproved(ctx context.Context) (int, error)

	CountByApproval(ctx context.Context, approved *bool) (int, error)

	// ========================================
	// ADMIN Operations
	// ========================================

	Approve(ctx context.Context, id uuid.UUID) error
}
