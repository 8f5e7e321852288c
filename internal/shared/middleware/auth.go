package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"localbiz-backend/internal/domains/user"
	"localbiz-backend/internal/infrastructure/session"
	"localbiz-backend/internal/shared/response"
	"localbiz-backend/pkg/jwt"
	"localbiz-backend/pkg/logger"
)

const (
	ContextUserKey   = "currentUser"
	ContextUserIDKey = "userID"

	LoginURL = "/accounts/login/"
)

// UserLoader resolves the account behind a session or token.
type UserLoader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

// SessionCookie mô tả cookie session gửi về browser
type SessionCookie struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

// Authenticator gom session store + JWT cho cả web và API
type Authenticator struct {
	sessions session.Store
	tokens   *jwt.Manager
	users    UserLoader
	cookie   SessionCookie
}

func NewAuthenticator(sessions session.Store, tokens *jwt.Manager, users UserLoader, cookie SessionCookie) *Authenticator {
	return &Authenticator{
		sessions: sessions,
		tokens:   tokens,
		users:    users,
		cookie:   cookie,
	}
}

// ========================================
// LOADERS (never abort)
// ========================================

// Session loads the user from the session cookie when present and slides its expiry.
func (a *Authenticator) Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(a.cookie.Name)
		if err != nil || sid == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		userID, err := a.sessions.Get(ctx, sid)
		if err != nil {
			if !errors.Is(err, session.ErrSessionNotFound) {
				logger.Error("failed to load session", err)
			}
			a.clearCookie(c)
			c.Next()
			return
		}

		u, err := a.users.GetByID(ctx, userID)
		if err != nil {
			_ = a.sessions.Destroy(ctx, sid)
			a.clearCookie(c)
			c.Next()
			return
		}

		if err := a.sessions.Touch(ctx, sid); err == nil {
			a.setCookie(c, sid)
		}
		SetUser(c, u)
		c.Next()
	}
}

// Bearer authenticates `Authorization: Bearer <token>`. A malformed or expired token is a 401.
func (a *Authenticator) Bearer() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			response.Unauthorized(c, "Invalid authorization header format.")
			c.Abort()
			return
		}

		claims, err := a.tokens.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid token.")
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			response.Unauthorized(c, "Invalid token.")
			c.Abort()
			return
		}

		u, err := a.users.GetByID(c.Request.Context(), userID)
		if err != nil {
			response.Unauthorized(c, "User not found or inactive.")
			c.Abort()
			return
		}

		SetUser(c, u)
		c.Next()
	}
}

// ========================================
// GUARDS
// ========================================

// LoginRequired redirects anonymous users to the login page, preserving the original URI.
func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			redirectToLogin(c)
			return
		}
		c.Next()
	}
}

// APIWriteAuth lets safe methods through and rejects anonymous writes with 403.
func APIWriteAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}
		if CurrentUser(c) == nil {
			response.Forbidden(c, "Authentication credentials were not provided.")
			c.Abort()
			return
		}
		c.Next()
	}
}

func redirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, LoginURL+"?next="+url.QueryEscape(c.Request.URL.RequestURI()))
	c.Abort()
}

// ========================================
// SESSION LIFECYCLE
// ========================================

// StartSession creates a server-side session and sets the cookie.
func (a *Authenticator) StartSession(c *gin.Context, userID uuid.UUID) error {
	sid, err := a.sessions.Create(c.Request.Context(), userID)
	if err != nil {
		return err
	}
	a.setCookie(c, sid)
	return nil
}

// EndSession destroys the session (if any) and expires the cookie.
func (a *Authenticator) EndSession(c *gin.Context) {
	if sid, err := c.Cookie(a.cookie.Name); err == nil && sid != "" {
		if err := a.sessions.Destroy(c.Request.Context(), sid); err != nil {
			logger.Error("failed to destroy session", err)
		}
	}
	a.clearCookie(c)
}

func (a *Authenticator) setCookie(c *gin.Context, sid string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(a.cookie.Name, sid, int(a.cookie.TTL.Seconds()), "/", "", a.cookie.Secure, true)
}

func (a *Authenticator) clearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(a.cookie.Name, "", -1, "/", "", a.cookie.Secure, true)
}

// ========================================
// CONTEXT HELPERS
// ========================================

func SetUser(c *gin.Context, u *user.User) {
	c.Set(ContextUserKey, u)
	c.Set(ContextUserIDKey, u.ID)
}

// CurrentUser returns nil for anonymous requests.
func CurrentUser(c *gin.Context) *user.User {
	v, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	u, _ := v.(*user.User)
	return u
}
