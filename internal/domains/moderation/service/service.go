package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	bizmodel "localbiz-backend/internal/domains/business/model"
	"localbiz-backend/internal/domains/category"
	reviewmodel "localbiz-backend/internal/domains/review/model"
	"localbiz-backend/internal/infrastructure/email"
	"localbiz-backend/internal/infrastructure/metrics"
	"localbiz-backend/pkg/logger"
)

const (
	RecentLimit        = 5
	TopCategoriesLimit = 10
	ExportSheet        = "Businesses"
)

type BusinessModeration interface {
	Stats(ctx context.Context) (*bizmodel.Stats, error)
	Recent(ctx context.Context, limit int) ([]bizmodel.Business, error)
	ListByStatus(ctx context.Context, status, rawPage string) (*bizmodel.ListResult, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*bizmodel.Business, error)
	ExportAll(ctx context.Context) ([]bizmodel.Business, error)
}

type ReviewModeration interface {
	Stats(ctx context.Context) (*reviewmodel.Stats, error)
	Recent(ctx context.Context, limit int) ([]reviewmodel.Review, error)
	ListByStatus(ctx context.Context, status, rawPage string) (*reviewmodel.ListResult, error)
	Approve(ctx context.Context, id uuid.UUID) (*reviewmodel.Review, error)
}

type CategoryStats interface {
	Top(ctx context.Context, limit int) ([]category.Category, error)
	Count(ctx context.Context, activeOnly bool) (int, error)
}

type DashboardStats struct {
	TotalBusinesses   int
	ActiveBusinesses  int
	PendingBusinesses int
	TotalUsers        int // distinct business owners
	TotalReviews      int
	PendingReviews    int
	TotalCategories   int
}

type Dashboard struct {
	Stats            DashboardStats
	RecentBusinesses []bizmodel.Business
	RecentReviews    []reviewmodel.Review
	TopCategories    []category.Category
}

// =====================================================
// SERVICE
// =====================================================

type ModerationService struct {
	businesses BusinessModeration
	reviews    ReviewModeration
	categories CategoryStats
	mailer     email.Mailer
	siteURL    string
}

func NewModerationService(
	businesses BusinessModeration,
	reviews ReviewModeration,
	categories CategoryStats,
	mailer email.Mailer,
	siteURL string,
) *ModerationService {
	return &ModerationService{
		businesses: businesses,
		reviews:    reviews,
		categories: categories,
		mailer:     mailer,
		siteURL:    siteURL,
	}
}

func (s *ModerationService) Dashboard(ctx context.Context) (*Dashboard, error) {
	bs, err := s.businesses.Stats(ctx)
	if err != nil {
		return nil, err
	}
	rs, err := s.reviews.Stats(ctx)
	if err != nil {
		return nil, err
	}
	totalCategories, err := s.categories.Count(ctx, false)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		Stats: DashboardStats{
			TotalBusinesses:   bs.Total,
			ActiveBusinesses:  bs.Active,
			PendingBusinesses: bs.Pending,
			TotalUsers:        bs.Owners,
			TotalReviews:      rs.Total,
			PendingReviews:    rs.Pending,
			TotalCategories:   totalCategories,
		},
	}

	if d.RecentBusinesses, err = s.businesses.Recent(ctx, RecentLimit); err != nil {
		return nil, err
	}
	if d.RecentReviews, err = s.reviews.Recent(ctx, RecentLimit); err != nil {
		return nil, err
	}
	if d.TopCategories, err = s.categories.Top(ctx, TopCategoriesLimit); err != nil {
		return nil, err
	}
	return d, nil
}

// =====================================================
// BUSINESSES
// =====================================================

// Businesses: status defaults to pending
func (s *ModerationService) Businesses(ctx context.Context, status, rawPage string) (*bizmodel.ListResult, string, error) {
	if status != bizmodel.StatusActive {
		status = bizmodel.StatusPending
	}
	result, err := s.businesses.ListByStatus(ctx, status, rawPage)
	return result, status, err
}

// ApproveBusiness activates the listing and notifies the owner. Mail failures are logged only.
func (s *ModerationService) ApproveBusiness(ctx context.Context, id uuid.UUID) (*bizmodel.Business, error) {
	b, err := s.businesses.SetActive(ctx, id, true)
	if err != nil {
		return nil, err
	}

	if b.OwnerEmail == "" {
		return b, nil
	}
	err = s.mailer.Send(ctx, email.Message{
		To:      []string{b.OwnerEmail},
		Subject: "Your Business Listing has been Approved",
		Body: fmt.Sprintf("Congratulations! Your business \"%s\" has been approved and is now live on LocalBiz.\n\n%s%s\n",
			b.Name, s.siteURL, b.URL()),
	})
	metrics.RecordEmail("approval", err)
	if err != nil {
		logger.Warn("approval email failed", map[string]interface{}{
			"business_id": b.ID.String(),
			"error":       err.Error(),
		})
	}
	return b, nil
}

func (s *ModerationService) DeactivateBusiness(ctx context.Context, id uuid.UUID) (*bizmodel.Business, error) {
	return s.businesses.SetActive(ctx, id, false)
}

// =====================================================
// REVIEWS
// =====================================================

func (s *ModerationService) Reviews(ctx context.Context, status, rawPage string) (*reviewmodel.ListResult, string, error) {
	if status != reviewmodel.StatusApproved {
		status = reviewmodel.StatusPending
	}
	result, err := s.reviews.ListByStatus(ctx, status, rawPage)
	return result, status, err
}

func (s *ModerationService) ApproveReview(ctx context.Context, id uuid.UUID) (*reviewmodel.Review, error) {
	return s.reviews.Approve(ctx, id)
}

// =====================================================
// EXPORT
// =====================================================

var exportHeaders = []string{
	"ID", "Name", "Slug", "Category", "Owner", "Owner Email",
	"Address", "City", "State", "Zip Code", "Email", "Phone", "Website",
	"Is Active", "Is Featured", "Is Verified", "Views", "Created At",
}

// ExportBusinesses builds an XLSX with every business, active or not.
func (s *ModerationService) ExportBusinesses(ctx context.Context) (*excelize.File, error) {
	list, err := s.businesses.ExportAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list businesses: %w", err)
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", ExportSheet); err != nil {
		return nil, err
	}

	// Row 1: Header
	for colIdx, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 1)
		f.SetCellValue(ExportSheet, cell, header)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
		f.SetCellStyle(ExportSheet, "A1", last, headerStyle)
	}

	// Data rows, bắt đầu từ row 2
	for i, b := range list {
		values := []interface{}{
			b.ID.String(), b.Name, b.Slug, b.CategoryName, b.OwnerUsername, b.OwnerEmail,
			b.Address, b.City, b.State, b.ZipCode, b.Email, b.Phone, b.Website,
			b.IsActive, b.IsFeatured, b.IsVerified, b.Views, b.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		start, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(ExportSheet, start, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	logger.Info("businesses exported", map[string]interface{}{"rows": len(list)})
	return f, nil
}

// IsNotFound: the lookups that 404 in the staff interface
func IsNotFound(err error) bool {
	return errors.Is(err, bizmodel.ErrBusinessNotFound) || errors.Is(err, reviewmodel.ErrReviewNotFound)
}
