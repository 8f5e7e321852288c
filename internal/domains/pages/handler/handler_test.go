package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bizmodel "localbiz-backend/internal/domains/business/model"
	"localbiz-backend/internal/domains/category"
	"localbiz-backend/internal/domains/pages/service"
	"localbiz-backend/internal/infrastructure/email"
	"localbiz-backend/internal/web"
)

type stubBusinesses struct{ err error }

func (s stubBusinesses) Featured(context.Context) ([]bizmodel.Business, error) { return nil, s.err }
func (s stubBusinesses) Stats(context.Context) (*bizmodel.Stats, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &bizmodel.Stats{Total: 42, Active: 40}, nil
}

type stubCategories struct{}

func (stubCategories) List(context.Context) ([]category.Category, error)   { return nil, nil }
func (stubCategories) Teaser(context.Context) ([]category.Category, error) { return nil, nil }
func (stubCategories) Count(context.Context, bool) (int, error)            { return 0, nil }

type stubReviews struct{}

func (stubReviews) CountApproved(context.Context) (int, error) { return 0, nil }

type nopMailer struct{ sent int }

func (m *nopMailer) Send(context.Context, email.Message) error {
	m.sent++
	return nil
}

func newRouter(t *testing.T, businesses stubBusinesses, maintenance bool) (*gin.Engine, *nopMailer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tmpl, err := web.LoadTemplates(nil)
	require.NoError(t, err)

	mailer := &nopMailer{}
	svc := service.NewPagesService(businesses, stubCategories{}, stubReviews{}, mailer, "contact@localbiz.test")
	h := NewPagesHandler(svc, maintenance)

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.GET("/health/", h.Health)
	r.GET("/health/status/", h.HealthStatus)
	r.GET("/robots.txt", h.Robots)
	r.GET("/maintenance/", h.Maintenance)
	r.POST("/contact/", h.Contact)
	r.POST("/newsletter/signup/", h.Newsletter)
	return r, mailer
}

func do(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r, _ := newRouter(t, stubBusinesses{}, false)

	w := do(r, httptest.NewRequest(http.MethodGet, "/health/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}

func TestHealthStatus(t *testing.T) {
	r, _ := newRouter(t, stubBusinesses{}, false)
	w := do(r, httptest.NewRequest(http.MethodGet, "/health/status/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
	assert.Contains(t, w.Body.String(), `"business_count":42`)

	r, _ = newRouter(t, stubBusinesses{err: errors.New("connection refused")}, false)
	w = do(r, httptest.NewRequest(http.MethodGet, "/health/status/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"unhealthy"`)
}

func TestRobots(t *testing.T) {
	r, _ := newRouter(t, stubBusinesses{}, false)

	req := httptest.NewRequest(http.MethodGet, "/robots.txt", nil)
	req.Host = "localbiz.test"
	req.Header.Set("X-Forwarded-Proto", "https")
	w := do(r, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.HasPrefix(body, "User-agent: *\nAllow: /\n"))
	assert.Contains(t, body, "Disallow: /staff/")
	assert.Contains(t, body, "Sitemap: https://localbiz.test/sitemap.xml")
}

func TestMaintenance(t *testing.T) {
	r, _ := newRouter(t, stubBusinesses{}, false)
	w := do(r, httptest.NewRequest(http.MethodGet, "/maintenance/", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	r, _ = newRouter(t, stubBusinesses{}, true)
	w = do(r, httptest.NewRequest(http.MethodGet, "/maintenance/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestContact(t *testing.T) {
	r, mailer := newRouter(t, stubBusinesses{}, false)

	form := url.Values{"name": {"Ann"}, "email": {"ann@example.com"}, "subject": {""}, "message": {"hi"}}
	req := httptest.NewRequest(http.MethodPost, "/contact/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := do(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Please fill in all required fields.")
	assert.Equal(t, 0, mailer.sent)

	form.Set("subject", "Hours")
	req = httptest.NewRequest(http.MethodPost, "/contact/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w = do(r, req)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/contact/", w.Header().Get("Location"))
	assert.Equal(t, 1, mailer.sent)
}

func TestNewsletter(t *testing.T) {
	r, _ := newRouter(t, stubBusinesses{}, false)

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/newsletter/signup/", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		return do(r, req)
	}

	w := post(`{"email":"ann@example.com"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"message":"Thank you for subscribing to our newsletter!"}`, w.Body.String())

	w = post(`{}`)
	assert.JSONEq(t, `{"success":false,"message":"Email is required"}`, w.Body.String())

	w = post(`not json`)
	assert.Contains(t, w.Body.String(), `"success":false`)
}
