package handler

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"localbiz-backend/internal/domains/business/model"
	"localbiz-backend/internal/domains/business/service"
	"localbiz-backend/internal/domains/category"
	reviewmodel "localbiz-backend/internal/domains/review/model"
	"localbiz-backend/internal/shared/middleware"
	"localbiz-backend/internal/shared/response"
	"localbiz-backend/internal/web"
	"localbiz-backend/pkg/logger"
)

// maxUploadRead: one byte over the image limit so the size check still fires
const maxUploadRead = 5*1024*1024 + 1

// CategoryOptions feeds the category select of the form and the list filter.
type CategoryOptions interface {
	List(ctx context.Context) ([]category.Category, error)
}

// ReviewSummaries loads approved reviews for the detail page.
type ReviewSummaries interface {
	ForBusiness(ctx context.Context, businessID uuid.UUID) (*reviewmodel.BusinessReviews, error)
}

type SortOption struct {
	Value string
	Label string
}

var sortOptions = []SortOption{
	{model.SortNewest, "Newest"},
	{model.SortName, "Name"},
	{model.SortRating, "Rating"},
	{model.SortReviews, "Most reviewed"},
}

// Handler - HTTP Handler (single file)
type Handler struct {
	service    service.ServiceInterface
	categories CategoryOptions
	reviews    ReviewSummaries
}

// NewHandler - Constructor with DI
func NewHandler(svc service.ServiceInterface, categories CategoryOptions, reviews ReviewSummaries) *Handler {
	return &Handler{
		service:    svc,
		categories: categories,
		reviews:    reviews,
	}
}

// =====================================================
// PUBLIC PAGES
// =====================================================

// List - GET /businesses/list/
// Query params: category, search, location, sort, page
func (h *Handler) List(c *gin.Context) {
	var filter model.ListFilter
	_ = c.ShouldBindQuery(&filter)

	ctx := c.Request.Context()
	result, err := h.service.List(ctx, filter)
	if err != nil {
		web.ServerError(c, err)
		return
	}
	categories, err := h.categories.List(ctx)
	if err != nil {
		web.ServerError(c, err)
		return
	}

	web.Render(c, http.StatusOK, "business_list.html", gin.H{
		"Title":       "Businesses",
		"Businesses":  result.Businesses,
		"Page":        result.Page,
		"Filter":      filter,
		"Categories":  categories,
		"CurrentSort": filter.CurrentSort(),
		"SortOptions": sortOptions,
		"ShowFilters": true,
		"QueryBase":   queryBase(filter),
	})
}

// queryBase keeps the active filters on pagination links.
func queryBase(f model.ListFilter) template.URL {
	return web.QueryBase(url.Values{
		"category": {f.Category},
		"search":   {f.Search},
		"location": {f.Location},
		"sort":     {f.Sort},
	})
}

// Detail - GET /businesses/:slug/
func (h *Handler) Detail(c *gin.Context) {
	ctx := c.Request.Context()

	b, err := h.service.Detail(ctx, c.Param("slug"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	reviews, err := h.reviews.ForBusiness(ctx, b.ID)
	if err != nil {
		web.ServerError(c, err)
		return
	}

	isOwner := false
	if u := middleware.CurrentUser(c); u != nil {
		isOwner = b.IsOwnedBy(u.ID)
	}

	web.Render(c, http.StatusOK, "business_detail.html", gin.H{
		"Title":    b.Name,
		"Business": b,
		"Reviews":  reviews.Reviews,
		"Summary":  reviews.Summary,
		"IsOwner":  isOwner,
	})
}

// SearchAjax - GET /businesses/search/ajax/?q=
func (h *Handler) SearchAjax(c *gin.Context) {
	hits, err := h.service.SearchAjax(c.Request.Context(), c.Query("q"))
	if err != nil {
		web.ServerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"businesses": hits})
}

// =====================================================
// OWNER OPERATIONS (LoginRequired)
// =====================================================

// CreatePage - GET /businesses/create/
func (h *Handler) CreatePage(c *gin.Context) {
	h.renderForm(c, nil, model.BusinessForm{}, nil)
}

// Create - POST /businesses/create/
func (h *Handler) Create(c *gin.Context) {
	form, uploads, err := bindForm(c)
	if err != nil {
		uploadFailed(c, err)
		return
	}

	u := middleware.CurrentUser(c)
	b, err := h.service.Create(c.Request.Context(), u.ID, form, uploads)
	if err != nil {
		if errs, ok := formErrors(err); ok {
			h.renderForm(c, nil, form, errs)
			return
		}
		web.ServerError(c, err)
		return
	}

	web.AddFlash(c, web.FlashSuccess, "Business created successfully.")
	c.Redirect(http.StatusFound, b.URL())
}

// UpdatePage - GET /businesses/update/:slug/
func (h *Handler) UpdatePage(c *gin.Context) {
	u := middleware.CurrentUser(c)
	b, err := h.service.GetOwned(c.Request.Context(), c.Param("slug"), u.ID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	h.renderForm(c, b, formFrom(b), nil)
}

// Update - POST /businesses/update/:slug/
func (h *Handler) Update(c *gin.Context) {
	form, uploads, err := bindForm(c)
	if err != nil {
		uploadFailed(c, err)
		return
	}

	u := middleware.CurrentUser(c)
	slug := c.Param("slug")
	b, err := h.service.Update(c.Request.Context(), slug, u.ID, form, uploads)
	if err != nil {
		if errs, ok := formErrors(err); ok {
			current, _ := h.service.GetOwned(c.Request.Context(), slug, u.ID)
			h.renderForm(c, current, form, errs)
			return
		}
		h.handleError(c, err)
		return
	}

	web.AddFlash(c, web.FlashSuccess, "Business updated successfully.")
	c.Redirect(http.StatusFound, b.URL())
}

// DeletePage - GET /businesses/delete/:slug/
func (h *Handler) DeletePage(c *gin.Context) {
	u := middleware.CurrentUser(c)
	b, err := h.service.GetOwned(c.Request.Context(), c.Param("slug"), u.ID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	web.Render(c, http.StatusOK, "business_confirm_delete.html", gin.H{
		"Title":    "Delete " + b.Name,
		"Business": b,
	})
}

// Delete - POST /businesses/delete/:slug/
func (h *Handler) Delete(c *gin.Context) {
	u := middleware.CurrentUser(c)
	if err := h.service.Delete(c.Request.Context(), c.Param("slug"), u.ID); err != nil {
		h.handleError(c, err)
		return
	}

	web.AddFlash(c, web.FlashSuccess, "Business deleted.")
	c.Redirect(http.StatusFound, "/businesses/list/")
}

// =====================================================
// HELPERS
// =====================================================

func (h *Handler) renderForm(c *gin.Context, b *model.Business, form model.BusinessForm, errs map[string]string) {
	categories, err := h.categories.List(c.Request.Context())
	if err != nil {
		web.ServerError(c, err)
		return
	}

	title := "Add a business"
	if b != nil {
		title = "Edit " + b.Name
	}
	web.Render(c, http.StatusOK, "business_form.html", gin.H{
		"Title":      title,
		"Business":   b,
		"Form":       form,
		"Errors":     errs,
		"Categories": categories,
	})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	if errors.Is(err, model.ErrBusinessNotFound) {
		web.NotFound(c)
		return
	}
	web.ServerError(c, err)
}

// formErrors: validation failures and field-scoped business errors re-render the form
func formErrors(err error) (map[string]string, bool) {
	if errs, ok := response.FieldErrors(err); ok {
		return errs, true
	}
	var bizErr *model.BusinessError
	if errors.As(err, &bizErr) && !errors.Is(err, model.ErrBusinessNotFound) {
		return bizErr.FieldErrors(), true
	}
	return nil, false
}

func bindForm(c *gin.Context) (model.BusinessForm, model.Uploads, error) {
	// owner is not a form field, a posted value is ignored
	var form model.BusinessForm
	_ = c.ShouldBind(&form)

	var uploads model.Uploads
	var err error
	if uploads.Logo, err = readUpload(c, "logo"); err != nil {
		return form, uploads, err
	}
	if uploads.FeaturedImage, err = readUpload(c, "featured_image"); err != nil {
		return form, uploads, err
	}
	return form, uploads, nil
}

// errBadUpload marks a multipart body that could not be read.
var errBadUpload = errors.New("malformed upload")

// readUpload returns nil when the field was not posted (or the form is not multipart).
func readUpload(c *gin.Context, field string) ([]byte, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %s: %v", errBadUpload, field, err)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errBadUpload, field, err)
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, maxUploadRead))
}

func uploadFailed(c *gin.Context, err error) {
	if errors.Is(err, errBadUpload) {
		logger.Warn("rejected upload", map[string]interface{}{"error": err.Error()})
		c.String(http.StatusBadRequest, "Bad Request")
		c.Abort()
		return
	}
	web.ServerError(c, err)
}

func formFrom(b *model.Business) model.BusinessForm {
	return model.BusinessForm{
		Name:        b.Name,
		Description: b.Description,
		Address:     b.Address,
		City:        b.City,
		State:       b.State,
		ZipCode:     b.ZipCode,
		Email:       b.Email,
		Phone:       b.Phone,
		Website:     b.Website,
		Category:    b.CategorySlug,
	}
}
