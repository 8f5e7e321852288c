package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"localbiz-backend/internal/domains/business/model"
	"localbiz-backend/internal/domains/business/repository"
	"localbiz-backend/internal/domains/category"
	"localbiz-backend/internal/infrastructure/metrics"
	"localbiz-backend/internal/infrastructure/storage"
	"localbiz-backend/internal/shared/utils"
	"localbiz-backend/pkg/logger"
)

type BusinessService struct {
	repo       repository.RepositoryInterface
	categories CategoryLookup
	media      MediaStore
	now        func() time.Time
}

func NewBusinessService(repo repository.RepositoryInterface, categories CategoryLookup, media MediaStore) ServiceInterface {
	return &BusinessService{
		repo:       repo,
		categories: categories,
		media:      media,
		now:        time.Now,
	}
}

// =====================================================
// PUBLIC PAGES
// =====================================================

func (s *BusinessService) Featured(ctx context.Context) ([]model.Business, error) {
	return s.repo.Featured(ctx, model.FeaturedLimit)
}

func (s *BusinessService) List(ctx context.Context, filter model.ListFilter) (*model.ListResult, error) {
	return s.paginate(ctx, filter.Query(), filter.Page, model.PageSize)
}

func (s *BusinessService) ListByCategory(ctx context.Context, categoryID uuid.UUID, rawPage string) (*model.ListResult, error) {
	return s.paginate(ctx, model.Query{ActiveOnly: true, CategoryID: &categoryID}, rawPage, model.PageSize)
}

// paginate counts first so out-of-range pages clamp to the last page.
func (s *BusinessService) paginate(ctx context.Context, q model.Query, rawPage string, size int) (*model.ListResult, error) {
	total, err := s.repo.Count(ctx, q)
	if err != nil {
		return nil, err
	}
	page := utils.NewPage(rawPage, size, total)

	list, err := s.repo.List(ctx, q, page.Size, page.Offset())
	if err != nil {
		return nil, err
	}
	return &model.ListResult{Businesses: list, Page: page}, nil
}

func (s *BusinessService) Detail(ctx context.Context, slug string) (*model.Business, error) {
	b, err := s.repo.FindActiveBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	views, err := s.repo.IncrementViews(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	b.Views = views
	metrics.RecordListingView()
	return b, nil
}

func (s *BusinessService) SearchAll(ctx context.Context, search, location string) ([]model.Business, error) {
	q := model.Query{
		ActiveOnly: true,
		Search:     strings.TrimSpace(search),
		Location:   strings.TrimSpace(location),
	}
	return s.repo.List(ctx, q, 0, 0)
}

// SearchAjax only runs for queries longer than 2 characters.
func (s *BusinessService) SearchAjax(ctx context.Context, q string) ([]model.SearchHit, error) {
	hits := make([]model.SearchHit, 0)
	q = strings.TrimSpace(q)
	if utils.RuneLen(q) < model.AjaxSearchMinLength {
		return hits, nil
	}

	list, err := s.repo.QuickSearch(ctx, q, model.AjaxSearchLimit)
	if err != nil {
		return nil, err
	}
	for i := range list {
		hits = append(hits, list[i].ToSearchHit())
	}
	return hits, nil
}

func (s *BusinessService) GlobalSearch(ctx context.Context, q string) ([]model.Business, error) {
	q = strings.TrimSpace(q)
	if utils.RuneLen(q) < 2 {
		return []model.Business{}, nil
	}
	return s.repo.NameSearch(ctx, q, model.GlobalSearchLimit)
}

func (s *BusinessService) LocationSuggestions(ctx context.Context, q string) ([]string, error) {
	q = strings.TrimSpace(q)
	if utils.RuneLen(q) < model.LocationMinLength {
		return []string{}, nil
	}
	return s.repo.LocationSuggestions(ctx, q, model.LocationLimit)
}

// =====================================================
// OWNER OPERATIONS
// =====================================================

func (s *BusinessService) Create(ctx context.Context, ownerID uuid.UUID, form model.BusinessForm, uploads model.Uploads) (*model.Business, error) {
	// Step 1: Validate
	form.Normalize()
	if err := form.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Resolve category
	categoryID, err := s.resolveCategory(ctx, form.Category)
	if err != nil {
		return nil, err
	}

	// Step 3: Store uploads
	logo, featured, err := s.saveUploads(ctx, uploads)
	if err != nil {
		return nil, err
	}

	// Step 4: Build entity
	now := s.now()
	b := &model.Business{
		ID:            uuid.New(),
		Logo:          logo,
		FeaturedImage: featured,
		CategoryID:    categoryID,
		OwnerID:       &ownerID,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	applyForm(b, form)

	// Step 5: Insert with slug retry
	if err := s.insertWithSlug(ctx, b, ""); err != nil {
		s.discardMedia(ctx, logo, featured)
		return nil, err
	}

	logger.Info("business created", map[string]interface{}{
		"business_id": b.ID.String(),
		"slug":        b.Slug,
		"owner_id":    ownerID.String(),
	})
	return b, nil
}

func (s *BusinessService) GetOwned(ctx context.Context, slug string, ownerID uuid.UUID) (*model.Business, error) {
	return s.repo.FindOwnedBySlug(ctx, slug, ownerID)
}

func (s *BusinessService) Update(ctx context.Context, slug string, ownerID uuid.UUID, form model.BusinessForm, uploads model.Uploads) (*model.Business, error) {
	b, err := s.repo.FindOwnedBySlug(ctx, slug, ownerID)
	if err != nil {
		return nil, err
	}

	form.Normalize()
	if err := form.Validate(); err != nil {
		return nil, err
	}

	categoryID, err := s.resolveCategory(ctx, form.Category)
	if err != nil {
		return nil, err
	}

	logo, featured, err := s.saveUploads(ctx, uploads)
	if err != nil {
		return nil, err
	}

	oldLogo, oldFeatured := b.Logo, b.FeaturedImage
	applyForm(b, form)
	b.CategoryID = categoryID
	if logo != nil {
		b.Logo = logo
	}
	if featured != nil {
		b.FeaturedImage = featured
	}
	b.UpdatedAt = s.now()

	if err := s.repo.UpdateOwned(ctx, b, ownerID); err != nil {
		s.discardMedia(ctx, logo, featured)
		return nil, err
	}

	// Replaced files are no longer referenced
	if logo != nil {
		s.discardMedia(ctx, oldLogo, nil)
	}
	if featured != nil {
		s.discardMedia(ctx, nil, oldFeatured)
	}
	return b, nil
}

func (s *BusinessService) Delete(ctx context.Context, slug string, ownerID uuid.UUID) error {
	b, err := s.repo.FindOwnedBySlug(ctx, slug, ownerID)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteOwned(ctx, slug, ownerID); err != nil {
		return err
	}
	s.discardMedia(ctx, b.Logo, b.FeaturedImage)

	logger.Info("business deleted", map[string]interface{}{
		"business_id": b.ID.String(),
		"slug":        slug,
	})
	return nil
}

func (s *BusinessService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Business, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// =====================================================
// API
// =====================================================

func (s *BusinessService) ListPage(ctx context.Context, limit, offset int) ([]model.Business, int, error) {
	total, err := s.repo.Count(ctx, model.Query{})
	if err != nil {
		return nil, 0, err
	}
	list, err := s.repo.List(ctx, model.Query{}, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// APICreate checks model-level constraints only; owner defaults to the caller.
func (s *BusinessService) APICreate(ctx context.Context, callerID uuid.UUID, req model.APICreateRequest) (*model.Business, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	owner := req.Owner
	if owner == nil {
		owner = &callerID
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	now := s.now()
	b := &model.Business{
		ID:            uuid.New(),
		Name:          req.Name,
		Description:   req.Description,
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		ZipCode:       req.ZipCode,
		Email:         req.Email,
		Phone:         req.Phone,
		Website:       req.Website,
		Logo:          req.Logo,
		FeaturedImage: req.FeaturedImage,
		CategoryID:    req.Category,
		OwnerID:       owner,
		IsActive:      active,
		IsFeatured:    req.IsFeatured,
		IsVerified:    req.IsVerified,
		Views:         req.Views,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err := s.insertWithSlug(ctx, b, strings.TrimSpace(req.Slug))
	if err == nil {
		return b, nil
	}

	switch {
	case errors.Is(err, model.ErrSlugExists):
		return nil, validation.Errors{"slug": model.ErrSlugExists}
	case errors.Is(err, model.ErrCategoryNotFound):
		return nil, validation.Errors{"category": fmt.Errorf("Invalid pk \"%s\" - object does not exist.", req.Category)}
	case errors.Is(err, model.ErrOwnerNotFound):
		return nil, validation.Errors{"owner": fmt.Errorf("Invalid pk \"%s\" - object does not exist.", owner)}
	}
	return nil, err
}

// =====================================================
// STAFF
// =====================================================

func (s *BusinessService) Stats(ctx context.Context) (*model.Stats, error) {
	return s.repo.Stats(ctx)
}

func (s *BusinessService) Recent(ctx context.Context, limit int) ([]model.Business, error) {
	return s.repo.Recent(ctx, limit)
}

func (s *BusinessService) ListByStatus(ctx context.Context, status, rawPage string) (*model.ListResult, error) {
	if status != model.StatusPending && status != model.StatusActive {
		status = model.StatusAll
	}
	return s.paginate(ctx, model.Query{Status: status}, rawPage, model.StaffPageSize)
}

func (s *BusinessService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*model.Business, error) {
	if err := s.repo.SetActive(ctx, id, active); err != nil {
		return nil, err
	}
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	logger.Info("business status changed", map[string]interface{}{
		"business_id": id.String(),
		"is_active":   active,
	})
	return b, nil
}

func (s *BusinessService) ExportAll(ctx context.Context) ([]model.Business, error) {
	return s.repo.List(ctx, model.Query{}, 0, 0)
}

// =====================================================
// HELPERS
// =====================================================

// insertWithSlug allocates a slug and retries when a concurrent insert takes it first.
// A caller-supplied slug is used as-is.
func (s *BusinessService) insertWithSlug(ctx context.Context, b *model.Business, explicit string) error {
	if explicit != "" {
		b.Slug = explicit
		return s.repo.Create(ctx, b)
	}

	base := utils.Slugify(b.Name)
	if base == "" {
		base = model.FallbackSlug
	}

	for attempt := 0; attempt < model.MaxSlugRetries; attempt++ {
		slug, err := utils.UniqueSlug(ctx, base, s.repo.SlugExists)
		if err != nil {
			if errors.Is(err, utils.ErrSlugExhausted) {
				return model.NewSlugExhaustedError()
			}
			return err
		}

		b.Slug = slug
		err = s.repo.Create(ctx, b)
		if err == nil {
			return nil
		}
		if !errors.Is(err, model.ErrSlugExists) {
			return err
		}
		logger.Warn("slug taken concurrently, retrying", map[string]interface{}{
			"slug":    slug,
			"attempt": attempt + 1,
		})
	}
	return model.NewSlugExhaustedError()
}

func (s *BusinessService) resolveCategory(ctx context.Context, slug string) (*uuid.UUID, error) {
	if slug == "" {
		return nil, nil
	}
	c, err := s.categories.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, category.ErrCategoryNotFound) {
			return nil, model.NewInvalidCategoryError()
		}
		return nil, err
	}
	return &c.ID, nil
}

func (s *BusinessService) saveUploads(ctx context.Context, uploads model.Uploads) (logo, featured *string, err error) {
	if len(uploads.Logo) > 0 {
		key, err := s.media.SaveLogo(ctx, uploads.Logo)
		if err != nil {
			return nil, nil, mediaError("logo", err)
		}
		logo = &key
	}
	if len(uploads.FeaturedImage) > 0 {
		key, err := s.media.SaveFeaturedImage(ctx, uploads.FeaturedImage)
		if err != nil {
			s.discardMedia(ctx, logo, nil)
			return nil, nil, mediaError("featured_image", err)
		}
		featured = &key
	}
	return logo, featured, nil
}

func mediaError(field string, err error) error {
	if errors.Is(err, storage.ErrInvalidImage) {
		return model.NewInvalidMediaError(field, err)
	}
	return fmt.Errorf("store %s: %w", field, err)
}

// discardMedia is best-effort cleanup
func (s *BusinessService) discardMedia(ctx context.Context, keys ...*string) {
	for _, key := range keys {
		if key == nil || *key == "" {
			continue
		}
		if err := s.media.Delete(ctx, *key); err != nil {
			logger.Error("failed to delete media "+*key, err)
		}
	}
}

func applyForm(b *model.Business, form model.BusinessForm) {
	b.Name = form.Name
	b.Description = form.Description
	b.Address = form.Address
	b.City = form.City
	b.State = form.State
	b.ZipCode = form.ZipCode
	b.Email = form.Email
	b.Phone = form.Phone
	b.Website = form.Website
}
