package service

import (
	"context"
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	bizmodel "localbiz-backend/internal/domains/business/model"
	"localbiz-backend/internal/domains/review/model"
	"localbiz-backend/internal/domains/review/repository"
	"localbiz-backend/internal/shared/utils"
	"localbiz-backend/pkg/logger"
)

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

type reviewService struct {
	reviewRepo repository.ReviewRepository
	businesses BusinessLookup
	now        func() time.Time
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	businesses BusinessLookup,
) ServiceInterface {
	return &reviewService{
		reviewRepo: reviewRepo,
		businesses: businesses,
		now:        time.Now,
	}
}

// =====================================================
// CREATE REVIEW
// =====================================================

func (s *reviewService) Create(ctx context.Context, userID uuid.UUID, form model.ReviewForm) (*model.Review, error) {
	// Step 1: Validate request
	form.Normalize()
	if err := form.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Business must exist and be active
	biz, err := s.businesses.FindActiveBySlug(ctx, form.Business)
	if err != nil {
		if errors.Is(err, bizmodel.ErrBusinessNotFound) {
			return nil, model.NewBusinessNotFoundError()
		}
		return nil, err
	}

	// Step 3: Insert, uniqueness is enforced by the database
	now := s.now()
	review := &model.Review{
		ID:         uuid.New(),
		BusinessID: biz.ID,
		UserID:     userID,
		Rating:     form.Rating,
		Title:      form.Title,
		Comment:    form.Comment,
		IsApproved: false,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, toReviewError(err)
	}
	review.BusinessName = biz.Name
	review.BusinessSlug = biz.Slug

	logger.Info("review created", map[string]interface{}{
		"review_id":   review.ID.String(),
		"business_id": biz.ID.String(),
		"user_id":     userID.String(),
		"rating":      review.Rating,
	})
	return review, nil
}

// toReviewError turns repository sentinels into form-renderable errors.
func toReviewError(err error) error {
	switch {
	case errors.Is(err, model.ErrAlreadyReviewed):
		return model.NewAlreadyReviewedError()
	case errors.Is(err, model.ErrInvalidRating):
		return model.NewInvalidRatingError()
	case errors.Is(err, model.ErrBusinessNotFound):
		return model.NewBusinessNotFoundError()
	case errors.Is(err, model.ErrUserNotFound):
		return model.NewUserNotFoundError()
	}
	return err
}

// =====================================================
// READ
// =====================================================

func (s *reviewService) List(ctx context.Context) ([]model.Review, error) {
	return s.reviewRepo.ListAll(ctx)
}

func (s *reviewService) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Review, error) {
	return s.reviewRepo.ListByUser(ctx, userID)
}

func (s *reviewService) ForBusiness(ctx context.Context, businessID uuid.UUID) (*model.BusinessReviews, error) {
	reviews, err := s.reviewRepo.ListApprovedByBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	summary, err := s.reviewRepo.Summary(ctx, businessID)
	if err != nil {
		return nil, err
	}
	return &model.BusinessReviews{Reviews: reviews, Summary: summary}, nil
}

// =====================================================
// API
// =====================================================

func (s *reviewService) ListPage(ctx context.Context, limit, offset int) ([]model.Review, int, error) {
	return s.reviewRepo.ListPaged(ctx, limit, offset)
}

// APICreate accepts the full field set; user defaults to the caller.
func (s *reviewService) APICreate(ctx context.Context, callerID uuid.UUID, req model.APICreateRequest) (*model.Review, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	userID := callerID
	if req.User != nil {
		userID = *req.User
	}

	now := s.now()
	review := &model.Review{
		ID:         uuid.New(),
		BusinessID: req.Business,
		UserID:     userID,
		Rating:     req.Rating,
		Title:      req.Title,
		Comment:    req.Comment,
		IsApproved: req.IsApproved,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		var rerr *model.ReviewError
		if errors.As(toReviewError(err), &rerr) {
			if rerr.Field == "" {
				return nil, validation.Errors{"non_field_errors": errors.New("The fields business, user must make a unique set.")}
			}
			msg := rerr.Message
			if rerr.Field == "business" {
				msg = "Invalid pk - object does not exist."
			}
			return nil, validation.Errors{rerr.Field: errors.New(msg)}
		}
		return nil, err
	}
	return review, nil
}

// =====================================================
// ADMIN OPERATIONS
// =====================================================

func (s *reviewService) ListByStatus(ctx context.Context, status, rawPage string) (*model.ListResult, error) {
	var approved *bool
	switch status {
	case model.StatusPending:
		v := false
		approved = &v
	case model.StatusApproved:
		v := true
		approved = &v
	}

	// count trước để clamp page
	total, err := s.reviewRepo.CountByApproval(ctx, approved)
	if err != nil {
		return nil, err
	}
	page := utils.NewPage(rawPage, model.StaffPageSize, total)

	list, total, err := s.reviewRepo.ListByApproval(ctx, approved, page.Size, page.Offset())
	if err != nil {
		return nil, err
	}
	page.Total = total
	return &model.ListResult{Reviews: list, Page: page}, nil
}

func (s *reviewService) Approve(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	if err := s.reviewRepo.Approve(ctx, id); err != nil {
		return nil, err
	}
	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	logger.Info("review approved", map[string]interface{}{"review_id": id.String()})
	return review, nil
}

func (s *reviewService) Recent(ctx context.Context, limit int) ([]model.Review, error) {
	return s.reviewRepo.Recent(ctx, limit)
}

func (s *reviewService) Stats(ctx context.Context) (*model.Stats, error) {
	return s.reviewRepo.Stats(ctx)
}

func (s *reviewService) CountApproved(ctx context.Context) (int, error) {
	return s.reviewRepo.CountApproved(ctx)
}
