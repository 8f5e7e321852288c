package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bizmodel "localbiz-backend/internal/domains/business/model"
	"localbiz-backend/internal/domains/category"
	"localbiz-backend/internal/domains/moderation/service"
	reviewmodel "localbiz-backend/internal/domains/review/model"
	"localbiz-backend/internal/infrastructure/email"
)

type memBusinesses struct {
	rows map[uuid.UUID]*bizmodel.Business
	fail bool
}

func (m *memBusinesses) Stats(context.Context) (*bizmodel.Stats, error) { return &bizmodel.Stats{}, nil }
func (m *memBusinesses) Recent(context.Context, int) ([]bizmodel.Business, error) {
	return nil, nil
}
func (m *memBusinesses) ListByStatus(context.Context, string, string) (*bizmodel.ListResult, error) {
	return &bizmodel.ListResult{}, nil
}
func (m *memBusinesses) SetActive(_ context.Context, id uuid.UUID, active bool) (*bizmodel.Business, error) {
	if m.fail {
		return nil, errors.New("connection reset")
	}
	b, ok := m.rows[id]
	if !ok {
		return nil, bizmodel.ErrBusinessNotFound
	}
	b.IsActive = active
	return b, nil
}
func (m *memBusinesses) ExportAll(context.Context) ([]bizmodel.Business, error) {
	out := make([]bizmodel.Business, 0, len(m.rows))
	for _, b := range m.rows {
		out = append(out, *b)
	}
	return out, nil
}

type noReviews struct{}

func (noReviews) Stats(context.Context) (*reviewmodel.Stats, error)           { return &reviewmodel.Stats{}, nil }
func (noReviews) Recent(context.Context, int) ([]reviewmodel.Review, error) { return nil, nil }
func (noReviews) ListByStatus(context.Context, string, string) (*reviewmodel.ListResult, error) {
	return &reviewmodel.ListResult{}, nil
}
func (noReviews) Approve(context.Context, uuid.UUID) (*reviewmodel.Review, error) {
	return nil, reviewmodel.ErrReviewNotFound
}

type noCategories struct{}

func (noCategories) Top(context.Context, int) ([]category.Category, error) { return nil, nil }
func (noCategories) Count(context.Context, bool) (int, error)            { return 0, nil }

type nopMailer struct{}

func (nopMailer) Send(context.Context, email.Message) error { return nil }

func newRouter(businesses *memBusinesses) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewModerationService(businesses, noReviews{}, noCategories{}, nopMailer{}, "http://localhost:8080")
	h := NewModerationHandler(svc)

	r := gin.New()
	r.POST("/staff/businesses/:id/approve/", h.ApproveBusiness)
	r.POST("/staff/businesses/:id/deactivate/", h.DeactivateBusiness)
	r.POST("/staff/reviews/:id/approve/", h.ApproveReview)
	r.GET("/staff/businesses/export/", h.Export)
	return r
}

func post(r http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, target, nil))
	return w
}

func TestApproveAndDeactivate(t *testing.T) {
	id := uuid.New()
	store := &memBusinesses{rows: map[uuid.UUID]*bizmodel.Business{id: {ID: id, Name: "Joe's", Slug: "joes"}}}
	r := newRouter(store)

	w := post(r, "/staff/businesses/"+id.String()+"/approve/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"message":"Business approved successfully"}`, w.Body.String())
	assert.True(t, store.rows[id].IsActive)

	w = post(r, "/staff/businesses/"+id.String()+"/deactivate/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, store.rows[id].IsActive)
}

func TestApproveUnknownOrMalformedID(t *testing.T) {
	r := newRouter(&memBusinesses{rows: map[uuid.UUID]*bizmodel.Business{}})

	w := post(r, "/staff/businesses/"+uuid.NewString()+"/approve/")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Business not found")

	w = post(r, "/staff/businesses/not-a-uuid/approve/")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = post(r, "/staff/reviews/"+uuid.NewString()+"/approve/")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Review not found")
}

func TestApproveUnexpectedError(t *testing.T) {
	r := newRouter(&memBusinesses{fail: true})

	w := post(r, "/staff/businesses/"+uuid.NewString()+"/approve/")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestExportHeaders(t *testing.T) {
	id := uuid.New()
	r := newRouter(&memBusinesses{rows: map[uuid.UUID]*bizmodel.Business{id: {ID: id, Name: "A", Slug: "a"}}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/staff/businesses/export/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="businesses.xlsx"`, w.Header().Get("Content-Disposition"))
	// XLSX is a zip archive
	assert.Equal(t, "PK", w.Body.String()[:2])
}
