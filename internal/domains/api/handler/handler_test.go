package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bizmodel "localbiz-backend/internal/domains/business/model"
	"localbiz-backend/internal/domains/category"
	reviewmodel "localbiz-backend/internal/domains/review/model"
	"localbiz-backend/internal/domains/user"
	"localbiz-backend/internal/shared/middleware"
)

// =====================================================
// STUBS
// =====================================================

type memBusinesses struct {
	rows    []bizmodel.Business
	created []uuid.UUID // caller ids passed to APICreate
}

func (m *memBusinesses) ListPage(_ context.Context, limit, offset int) ([]bizmodel.Business, int, error) {
	if offset >= len(m.rows) {
		return nil, len(m.rows), nil
	}
	end := offset + limit
	if end > len(m.rows) {
		end = len(m.rows)
	}
	return m.rows[offset:end], len(m.rows), nil
}

func (m *memBusinesses) APICreate(_ context.Context, callerID uuid.UUID, req bizmodel.APICreateRequest) (*bizmodel.Business, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	m.created = append(m.created, callerID)
	b := bizmodel.Business{ID: uuid.New(), Name: req.Name, Slug: "joes-pizza", IsActive: true, OwnerID: &callerID}
	m.rows = append(m.rows, b)
	return &b, nil
}

type noCategories struct{}

func (noCategories) ListPage(context.Context, int, int) ([]category.Category, int, error) {
	return nil, 0, nil
}
func (noCategories) Create(context.Context, category.CreateRequest) (*category.Category, error) {
	return nil, validation.Errors{"slug": category.ErrSlugExists}
}

type noReviews struct{}

func (noReviews) ListPage(context.Context, int, int) ([]reviewmodel.Review, int, error) {
	return nil, 0, nil
}
func (noReviews) APICreate(context.Context, uuid.UUID, reviewmodel.APICreateRequest) (*reviewmodel.Review, error) {
	return nil, nil
}

func newRouter(h *Handler, caller *user.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if caller != nil {
			middleware.SetUser(c, caller)
		}
		c.Next()
	})
	api := r.Group("/api", middleware.APIWriteAuth())
	api.GET("/businesses/", h.ListBusinesses)
	api.POST("/businesses/", h.CreateBusiness)
	api.GET("/categories/", h.ListCategories)
	api.POST("/categories/", h.CreateCategory)
	return r
}

func serve(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seed(n int) *memBusinesses {
	m := &memBusinesses{}
	for i := 0; i < n; i++ {
		m.rows = append(m.rows, bizmodel.Business{ID: uuid.New(), Name: "B", IsActive: true})
	}
	return m
}

// =====================================================
// LIST
// =====================================================

func TestListBusinessesPagination(t *testing.T) {
	h := NewHandler(seed(45), noCategories{}, noReviews{})
	r := newRouter(h, nil)

	w := serve(r, http.MethodGet, "/api/businesses/", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Count    int               `json:"count"`
		Next     *string           `json:"next"`
		Previous *string           `json:"previous"`
		Results  []json.RawMessage `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 45, body.Count)
	assert.Len(t, body.Results, PageSize)
	require.NotNil(t, body.Next)
	assert.Equal(t, "http://example.com/api/businesses/?page=2", *body.Next)
	assert.Nil(t, body.Previous)

	w = serve(r, http.MethodGet, "/api/businesses/?page=3", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Results, 5)
	assert.Nil(t, body.Next)
	require.NotNil(t, body.Previous)
	assert.Equal(t, "http://example.com/api/businesses/?page=2", *body.Previous)
}

func TestListInvalidPage(t *testing.T) {
	r := newRouter(NewHandler(seed(3), noCategories{}, noReviews{}), nil)

	for _, target := range []string{"/api/businesses/?page=abc", "/api/businesses/?page=0", "/api/businesses/?page=2"} {
		w := serve(r, http.MethodGet, target, "")
		assert.Equal(t, http.StatusNotFound, w.Code, target)
		assert.Contains(t, w.Body.String(), "Invalid page.")
	}
}

func TestListEmptyCollection(t *testing.T) {
	r := newRouter(NewHandler(seed(0), noCategories{}, noReviews{}), nil)

	w := serve(r, http.MethodGet, "/api/categories/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"count":0,"next":null,"previous":null,"results":[]}`, w.Body.String())
}

// =====================================================
// CREATE
// =====================================================

func TestCreateBusinessRequiresAuth(t *testing.T) {
	store := seed(0)
	r := newRouter(NewHandler(store, noCategories{}, noReviews{}), nil)

	w := serve(r, http.MethodPost, "/api/businesses/", `{"name":"Joe's Pizza"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, store.rows)
}

func TestCreateBusinessVisibleInList(t *testing.T) {
	store := seed(0)
	caller := &user.User{ID: uuid.New(), Username: "joe", IsActive: true}
	r := newRouter(NewHandler(store, noCategories{}, noReviews{}), caller)

	w := serve(r, http.MethodPost, "/api/businesses/", `{"name":"Joe's Pizza"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"slug":"joes-pizza"`)
	assert.Equal(t, []uuid.UUID{caller.ID}, store.created)

	w = serve(r, http.MethodGet, "/api/businesses/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":1`)
	assert.Contains(t, w.Body.String(), "Joe's Pizza")
}

func TestCreateBusinessValidation(t *testing.T) {
	caller := &user.User{ID: uuid.New(), Username: "joe", IsActive: true}
	r := newRouter(NewHandler(seed(0), noCategories{}, noReviews{}), caller)

	w := serve(r, http.MethodPost, "/api/businesses/", `{"name":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"This field is required."`)

	w = serve(r, http.MethodPost, "/api/businesses/", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "JSON parse error")
}

func TestCreateCategoryMapsFieldErrors(t *testing.T) {
	caller := &user.User{ID: uuid.New(), Username: "joe", IsActive: true}
	r := newRouter(NewHandler(seed(0), noCategories{}, noReviews{}), caller)

	w := serve(r, http.MethodPost, "/api/categories/", `{"name":"Food"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"slug"`)
}
