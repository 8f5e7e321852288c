package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"localbiz-backend/internal/domains/user"
	"localbiz-backend/internal/infrastructure/session"
	"localbiz-backend/pkg/jwt"
)

type stubUsers map[uuid.UUID]*user.User

func (s stubUsers) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	if u, ok := s[id]; ok {
		return u, nil
	}
	return nil, user.ErrUserNotFound
}

type fixture struct {
	auth   *Authenticator
	store  session.Store
	tokens *jwt.Manager
	alice  *user.User
	staff  *user.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	alice := &user.User{ID: uuid.New(), Username: "alice", IsActive: true}
	staff := &user.User{ID: uuid.New(), Username: "boss", IsActive: true, IsStaff: true}
	store := session.NewRedisStore(client, time.Hour)
	tokens := jwt.NewManager("test-secret", time.Hour)

	return &fixture{
		auth:   NewAuthenticator(store, tokens, stubUsers{alice.ID: alice, staff.ID: staff}, SessionCookie{Name: "sid", TTL: time.Hour}),
		store:  store,
		tokens: tokens,
		alice:  alice,
		staff:  staff,
	}
}

func (f *fixture) router() *gin.Engine {
	r := gin.New()
	r.Use(f.auth.Session(), f.auth.Bearer())
	r.GET("/whoami/", func(c *gin.Context) {
		if u := CurrentUser(c); u != nil {
			c.String(http.StatusOK, u.Username)
			return
		}
		c.String(http.StatusOK, "anonymous")
	})
	r.GET("/accounts/dashboard/", LoginRequired(), func(c *gin.Context) { c.String(http.StatusOK, "dash") })
	r.GET("/staff/", StaffRequired(), func(c *gin.Context) { c.String(http.StatusOK, "staff") })
	api := r.Group("/api", APIWriteAuth())
	api.GET("/things/", func(c *gin.Context) { c.String(http.StatusOK, "list") })
	api.POST("/things/", func(c *gin.Context) { c.String(http.StatusCreated, "created") })
	return r
}

func (f *fixture) sessionFor(t *testing.T, u *user.User) *http.Cookie {
	t.Helper()
	sid, err := f.store.Create(context.Background(), u.ID)
	require.NoError(t, err)
	return &http.Cookie{Name: "sid", Value: sid}
}

func do(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSessionLoadsUser(t *testing.T) {
	f := newFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/whoami/", nil)
	req.AddCookie(f.sessionFor(t, f.alice))

	w := do(f.router(), req)
	assert.Equal(t, "alice", w.Body.String())
	assert.Contains(t, w.Header().Get("Set-Cookie"), "sid=")
}

func TestStaleSessionClearsCookie(t *testing.T) {
	f := newFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/whoami/", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "expired"})

	w := do(f.router(), req)
	assert.Equal(t, "anonymous", w.Body.String())
	assert.Contains(t, w.Header().Get("Set-Cookie"), "Max-Age=0")
}

func TestLoginRequiredRedirectsWithNext(t *testing.T) {
	f := newFixture(t)
	w := do(f.router(), httptest.NewRequest(http.MethodGet, "/accounts/dashboard/?tab=reviews", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/accounts/login/?next=%2Faccounts%2Fdashboard%2F%3Ftab%3Dreviews", w.Header().Get("Location"))
}

func TestStaffRequired(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/staff/", nil)
	req.AddCookie(f.sessionFor(t, f.alice))
	assert.Equal(t, http.StatusFound, do(f.router(), req).Code)

	req = httptest.NewRequest(http.MethodGet, "/staff/", nil)
	req.AddCookie(f.sessionFor(t, f.staff))
	w := do(f.router(), req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "staff", w.Body.String())
}

func TestAPIWriteAuth(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, http.StatusOK, do(f.router(), httptest.NewRequest(http.MethodGet, "/api/things/", nil)).Code)

	w := do(f.router(), httptest.NewRequest(http.MethodPost, "/api/things/", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Authentication credentials were not provided."}`, w.Body.String())

	token, _, err := f.tokens.GenerateAccessToken(f.alice.ID.String(), "alice", false)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/things/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusCreated, do(f.router(), req).Code)
}

func TestBearerRejectsBadToken(t *testing.T) {
	f := newFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/api/things/", nil)
	req.Header.Set("Authorization", "Bearer garbage")

	w := do(f.router(), req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStartAndEndSession(t *testing.T) {
	f := newFixture(t)
	r := gin.New()
	r.POST("/login", func(c *gin.Context) {
		require.NoError(t, f.auth.StartSession(c, f.alice.ID))
		c.Status(http.StatusNoContent)
	})
	r.POST("/logout", func(c *gin.Context) {
		f.auth.EndSession(c)
		c.Status(http.StatusNoContent)
	})

	w := do(r, httptest.NewRequest(http.MethodPost, "/login", nil))
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	sid := cookies[0].Value
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	do(r, req)

	_, err := f.store.Get(context.Background(), sid)
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}
