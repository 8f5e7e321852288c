package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	bizmodel "localbiz-backend/internal/domains/business/model"
	"localbiz-backend/internal/domains/category"
	reviewmodel "localbiz-backend/internal/domains/review/model"
	"localbiz-backend/internal/shared/middleware"
	"localbiz-backend/internal/shared/response"
	"localbiz-backend/internal/shared/utils"
	"localbiz-backend/pkg/logger"
)

// PageSize of every API collection
const PageSize = 20

type BusinessAPI interface {
	ListPage(ctx context.Context, limit, offset int) ([]bizmodel.Business, int, error)
	APICreate(ctx context.Context, callerID uuid.UUID, req bizmodel.APICreateRequest) (*bizmodel.Business, error)
}

type CategoryAPI interface {
	ListPage(ctx context.Context, limit, offset int) ([]category.Category, int, error)
	Create(ctx context.Context, req category.CreateRequest) (*category.Category, error)
}

type ReviewAPI interface {
	ListPage(ctx context.Context, limit, offset int) ([]reviewmodel.Review, int, error)
	APICreate(ctx context.Context, callerID uuid.UUID, req reviewmodel.APICreateRequest) (*reviewmodel.Review, error)
}

// =====================================================
// API HANDLER
// =====================================================

// Handler serves /api/businesses/, /api/categories/ and /api/reviews/.
// Reads are open, writes go through middleware.APIWriteAuth.
type Handler struct {
	businesses BusinessAPI
	categories CategoryAPI
	reviews    ReviewAPI
}

func NewHandler(businesses BusinessAPI, categories CategoryAPI, reviews ReviewAPI) *Handler {
	return &Handler{
		businesses: businesses,
		categories: categories,
		reviews:    reviews,
	}
}

func (h *Handler) ListBusinesses(c *gin.Context) {
	paginate(c, h.businesses.ListPage)
}

func (h *Handler) ListCategories(c *gin.Context) {
	paginate(c, h.categories.ListPage)
}

func (h *Handler) ListReviews(c *gin.Context) {
	paginate(c, h.reviews.ListPage)
}

func (h *Handler) CreateBusiness(c *gin.Context) {
	var req bizmodel.APICreateRequest
	if !bindJSON(c, &req) {
		return
	}
	b, err := h.businesses.APICreate(c.Request.Context(), middleware.CurrentUser(c).ID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, b)
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var req category.CreateRequest
	if !bindJSON(c, &req) {
		return
	}
	cat, err := h.categories.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, cat)
}

func (h *Handler) CreateReview(c *gin.Context) {
	var req reviewmodel.APICreateRequest
	if !bindJSON(c, &req) {
		return
	}
	r, err := h.reviews.APICreate(c.Request.Context(), middleware.CurrentUser(c).ID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, r)
}

// =====================================================
// HELPERS
// =====================================================

// paginate: unknown or out-of-range page numbers are a 404, an empty first page is not.
func paginate[T any](c *gin.Context, list func(ctx context.Context, limit, offset int) ([]T, int, error)) {
	number, ok := utils.ParsePageStrict(c.Query("page"))
	if !ok {
		response.NotFound(c, "Invalid page.")
		return
	}

	results, total, err := list(c.Request.Context(), PageSize, (number-1)*PageSize)
	if err != nil {
		logger.Error("api list failed", err)
		response.InternalServerError(c, "Internal server error")
		return
	}

	page := utils.NewPage("1", PageSize, total)
	if number > page.TotalPages {
		response.NotFound(c, "Invalid page.")
		return
	}
	page.Number = number

	var next, prev *string
	if page.HasNext() {
		u := pageURL(c, page.Next())
		next = &u
	}
	if page.HasPrev() {
		u := pageURL(c, page.Prev())
		prev = &u
	}
	if results == nil {
		results = []T{}
	}
	response.Paginated(c, total, next, prev, results)
}

// pageURL builds an absolute link to another page of the same collection.
func pageURL(c *gin.Context, number int) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	q := c.Request.URL.Query()
	if number == 1 {
		q.Del("page")
	} else {
		q.Set("page", fmt.Sprint(number))
	}
	u := url.URL{Scheme: scheme, Host: c.Request.Host, Path: c.Request.URL.Path, RawQuery: q.Encode()}
	return u.String()
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.BadRequest(c, "JSON parse error - "+err.Error())
		return false
	}
	return true
}

func writeError(c *gin.Context, err error) {
	if errs, ok := response.FieldErrors(err); ok {
		response.ValidationFailed(c, errs)
		return
	}
	var bizErr *bizmodel.BusinessError
	if errors.As(err, &bizErr) {
		response.ValidationFailed(c, bizErr.FieldErrors())
		return
	}
	logger.Error("api create failed", err)
	response.InternalServerError(c, "Internal server error")
}
