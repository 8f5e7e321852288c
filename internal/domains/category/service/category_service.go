package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"localbiz-backend/internal/domains/category"
	"localbiz-backend/internal/shared/utils"
	"localbiz-backend/pkg/logger"
)

type categoryService struct {
	repo category.Repository
}

func NewCategoryService(repo category.Repository) category.Service {
	return &categoryService{repo: repo}
}

// ========================================
// READ
// ========================================

func (s *categoryService) List(ctx context.Context) ([]category.Category, error) {
	return s.repo.ListWithCounts(ctx)
}

func (s *categoryService) Teaser(ctx context.Context) ([]category.Category, error) {
	return s.repo.ListFirst(ctx, category.HomeTeaserSize)
}

func (s *categoryService) GetBySlug(ctx context.Context, slug string) (*category.Category, error) {
	return s.repo.FindBySlug(ctx, slug)
}

func (s *categoryService) Search(ctx context.Context, term string, limit int) ([]category.Category, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []category.Category{}, nil
	}
	return s.repo.SearchActive(ctx, term, limit)
}

func (s *categoryService) Top(ctx context.Context, limit int) ([]category.Category, error) {
	return s.repo.TopByBusinessCount(ctx, limit)
}

func (s *categoryService) Count(ctx context.Context, activeOnly bool) (int, error) {
	return s.repo.Count(ctx, activeOnly)
}

func (s *categoryService) ListPage(ctx context.Context, limit, offset int) ([]category.Category, int, error) {
	return s.repo.ListPaged(ctx, limit, offset)
}

// ========================================
// WRITE
// ========================================

// Create tạo category, slug tự sinh từ name nếu bỏ trống
func (s *categoryService) Create(ctx context.Context, req category.CreateRequest) (*category.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	slug := req.Slug
	if slug == "" {
		base := utils.Slugify(req.Name)
		if base == "" {
			base = "category"
		}
		var err error
		slug, err = utils.UniqueSlug(ctx, base, s.repo.SlugExists)
		if err != nil {
			return nil, fmt.Errorf("generate slug: %w", err)
		}
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	c := &category.Category{
		ID:          uuid.New(),
		Name:        req.Name,
		Slug:        slug,
		ParentID:    req.Parent,
		Description: req.Description,
		IsActive:    active,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.Create(ctx, c); err != nil {
		switch {
		case errors.Is(err, category.ErrSlugExists):
			return nil, validation.Errors{"slug": category.ErrSlugExists}
		case errors.Is(err, category.ErrParentNotFound):
			return nil, validation.Errors{"parent": errors.New("Invalid pk - object does not exist.")}
		}
		return nil, err
	}

	logger.Info("category created", map[string]interface{}{
		"category_id": c.ID.String(),
		"slug":        c.Slug,
	})
	return c, nil
}

func (s *categoryService) Delete(ctx context.Context, slug string) error {
	if err := s.repo.Delete(ctx, slug); err != nil {
		return err
	}
	logger.Info("category deleted", map[string]interface{}{"slug": slug})
	return nil
}
