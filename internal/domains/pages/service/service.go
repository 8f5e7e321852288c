package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	bizmodel "localbiz-backend/internal/domains/business/model"
	"localbiz-backend/internal/domains/category"
	"localbiz-backend/internal/infrastructure/email"
	"localbiz-backend/internal/infrastructure/metrics"
	"localbiz-backend/pkg/logger"
)

const (
	NotFoundCategories = 6
	NotFoundFeatured   = 3
)

var ErrMissingFields = errors.New("Please fill in all required fields.")

type BusinessReader interface {
	Featured(ctx context.Context) ([]bizmodel.Business, error)
	Stats(ctx context.Context) (*bizmodel.Stats, error)
}

type CategoryReader interface {
	List(ctx context.Context) ([]category.Category, error)
	Teaser(ctx context.Context) ([]category.Category, error)
	Count(ctx context.Context, activeOnly bool) (int, error)
}

type ReviewCounter interface {
	CountApproved(ctx context.Context) (int, error)
}

// SiteStats: active businesses, active categories, approved reviews
type SiteStats struct {
	Businesses int
	Categories int
	Reviews    int
}

type Home struct {
	Featured   []bizmodel.Business
	Categories []category.Category
	Stats      SiteStats
}

type NotFound struct {
	PopularCategories  []category.Category
	FeaturedBusinesses []bizmodel.Business
}

// ContactForm: every field is required.
type ContactForm struct {
	Name    string `form:"name"`
	Email   string `form:"email"`
	Subject string `form:"subject"`
	Message string `form:"message"`
}

func (f *ContactForm) Normalize() {
	for _, p := range []*string{&f.Name, &f.Email, &f.Subject, &f.Message} {
		*p = strings.TrimSpace(*p)
	}
}

func (f ContactForm) Complete() bool {
	return f.Name != "" && f.Email != "" && f.Subject != "" && f.Message != ""
}

// =====================================================
// SERVICE
// =====================================================

type PagesService struct {
	businesses   BusinessReader
	categories   CategoryReader
	reviews      ReviewCounter
	mailer       email.Mailer
	contactEmail string
}

func NewPagesService(
	businesses BusinessReader,
	categories CategoryReader,
	reviews ReviewCounter,
	mailer email.Mailer,
	contactEmail string,
) *PagesService {
	return &PagesService{
		businesses:   businesses,
		categories:   categories,
		reviews:      reviews,
		mailer:       mailer,
		contactEmail: contactEmail,
	}
}

func (s *PagesService) Stats(ctx context.Context) (SiteStats, error) {
	var out SiteStats

	bs, err := s.businesses.Stats(ctx)
	if err != nil {
		return out, err
	}
	out.Businesses = bs.Active

	if out.Categories, err = s.categories.Count(ctx, true); err != nil {
		return out, err
	}
	if out.Reviews, err = s.reviews.CountApproved(ctx); err != nil {
		return out, err
	}
	return out, nil
}

func (s *PagesService) Home(ctx context.Context) (*Home, error) {
	featured, err := s.businesses.Featured(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.Teaser(ctx)
	if err != nil {
		return nil, err
	}
	stats, err := s.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &Home{Featured: featured, Categories: categories, Stats: stats}, nil
}

// NotFound fills the 404 page. Lookups are best-effort.
func (s *PagesService) NotFound(ctx context.Context) NotFound {
	var out NotFound

	if all, err := s.categories.List(ctx); err != nil {
		logger.Warn("404 page: categories unavailable", map[string]interface{}{"error": err.Error()})
	} else {
		for _, c := range all {
			if !c.IsActive {
				continue
			}
			out.PopularCategories = append(out.PopularCategories, c)
			if len(out.PopularCategories) == NotFoundCategories {
				break
			}
		}
	}

	if featured, err := s.businesses.Featured(ctx); err != nil {
		logger.Warn("404 page: featured businesses unavailable", map[string]interface{}{"error": err.Error()})
	} else {
		if len(featured) > NotFoundFeatured {
			featured = featured[:NotFoundFeatured]
		}
		out.FeaturedBusinesses = featured
	}
	return out
}

// Contact sends the form to CONTACT_EMAIL. A send failure is returned to the caller.
func (s *PagesService) Contact(ctx context.Context, form ContactForm) error {
	form.Normalize()
	if !form.Complete() {
		return ErrMissingFields
	}

	body := fmt.Sprintf("Contact Form Submission\n\nName: %s\nEmail: %s\nSubject: %s\n\nMessage:\n%s\n",
		form.Name, form.Email, form.Subject, form.Message)

	err := s.mailer.Send(ctx, email.Message{
		To:      []string{s.contactEmail},
		ReplyTo: form.Email,
		Subject: "Contact Form: " + form.Subject,
		Body:    body,
	})
	metrics.RecordEmail("contact", err)
	if err != nil {
		return fmt.Errorf("send contact email: %w", err)
	}
	return nil
}

// Newsletter only records the signup.
func (s *PagesService) Newsletter(_ context.Context, address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return errors.New("Email is required")
	}
	logger.Info("newsletter signup", map[string]interface{}{"email": address})
	return nil
}

// BusinessCount backs /health/status/.
func (s *PagesService) BusinessCount(ctx context.Context) (int, error) {
	bs, err := s.businesses.Stats(ctx)
	if err != nil {
		return 0, err
	}
	return bs.Total, nil
}
