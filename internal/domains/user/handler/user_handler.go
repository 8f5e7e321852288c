package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	bizmodel "localbiz-backend/internal/domains/business/model"
	reviewmodel "localbiz-backend/internal/domains/review/model"
	"localbiz-backend/internal/domains/user"
	"localbiz-backend/internal/shared/middleware"
	"localbiz-backend/internal/shared/response"
	"localbiz-backend/internal/web"
	"localbiz-backend/pkg/logger"
)

const DashboardURL = "/accounts/dashboard/"

// OwnerListings lists the businesses a user owns (dashboard).
type OwnerListings interface {
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]bizmodel.Business, error)
}

// UserReviews lists the reviews a user wrote (dashboard).
type UserReviews interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]reviewmodel.Review, error)
}

// UserHandler xử lý HTTP requests cho user domain
// Struct này là stateless - chỉ chứa dependencies
type UserHandler struct {
	service    user.Service
	auth       *middleware.Authenticator
	businesses OwnerListings
	reviews    UserReviews
}

func NewUserHandler(
	service user.Service,
	auth *middleware.Authenticator,
	businesses OwnerListings,
	reviews UserReviews,
) *UserHandler {
	return &UserHandler{
		service:    service,
		auth:       auth,
		businesses: businesses,
		reviews:    reviews,
	}
}

// ========== LOGIN: GET|POST /accounts/login/ ==========
func (h *UserHandler) LoginPage(c *gin.Context) {
	web.Render(c, http.StatusOK, "login.html", gin.H{
		"Form": user.LoginRequest{},
		"Next": c.Query("next"),
	})
}

func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	_ = c.ShouldBind(&req)
	next := c.DefaultPostForm("next", c.Query("next"))

	u, err := h.service.Authenticate(c.Request.Context(), req)
	if err != nil {
		errs, ok := response.FieldErrors(err)
		if !ok {
			if !errors.Is(err, user.ErrInvalidCredentials) {
				web.ServerError(c, err)
				return
			}
			errs = map[string]string{"__all__": user.ErrInvalidCredentials.Error()}
		}
		req.Password = ""
		web.Render(c, http.StatusOK, "login.html", gin.H{
			"Form":   req,
			"Errors": errs,
			"Next":   next,
		})
		return
	}

	if err := h.auth.StartSession(c, u.ID); err != nil {
		web.ServerError(c, err)
		return
	}

	c.Redirect(http.StatusFound, web.SafeNext(next, DashboardURL))
}

// ========== REGISTER: GET|POST /accounts/register/ ==========
func (h *UserHandler) RegisterPage(c *gin.Context) {
	web.Render(c, http.StatusOK, "register.html", gin.H{
		"Form": user.RegisterRequest{},
	})
}

func (h *UserHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	_ = c.ShouldBind(&req)

	if _, err := h.service.Register(c.Request.Context(), req); err != nil {
		errs, ok := response.FieldErrors(err)
		if !ok {
			web.ServerError(c, err)
			return
		}
		req.Password, req.PasswordConfirm = "", ""
		web.Render(c, http.StatusOK, "register.html", gin.H{
			"Form":   req,
			"Errors": errs,
		})
		return
	}

	web.AddFlash(c, web.FlashSuccess, "Account created. You can now log in.")
	c.Redirect(http.StatusFound, middleware.LoginURL)
}

// ========== LOGOUT: POST /accounts/logout/ ==========
func (h *UserHandler) Logout(c *gin.Context) {
	h.auth.EndSession(c)
	c.Redirect(http.StatusFound, "/")
}

// ========== DASHBOARD: GET /accounts/dashboard/ ==========
func (h *UserHandler) Dashboard(c *gin.Context) {
	u := middleware.CurrentUser(c)
	ctx := c.Request.Context()

	businesses, err := h.businesses.ListByOwner(ctx, u.ID)
	if err != nil {
		web.ServerError(c, err)
		return
	}
	reviews, err := h.reviews.ListByUser(ctx, u.ID)
	if err != nil {
		web.ServerError(c, err)
		return
	}

	web.Render(c, http.StatusOK, "dashboard.html", gin.H{
		"Businesses": businesses,
		"Reviews":    reviews,
	})
}

// ========== PROFILE: GET /accounts/profile/ ==========
func (h *UserHandler) Profile(c *gin.Context) {
	web.Render(c, http.StatusOK, "profile.html", gin.H{
		"Profile": middleware.CurrentUser(c),
	})
}

// ========== TOKEN: POST /api/auth/token/ ==========
func (h *UserHandler) Token(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	tok, err := h.service.IssueToken(c.Request.Context(), req)
	if err != nil {
		if errs, ok := response.FieldErrors(err); ok {
			response.ValidationFailed(c, errs)
			return
		}
		if errors.Is(err, user.ErrInvalidCredentials) {
			response.ErrorResponse(c, http.StatusBadRequest, user.ErrInvalidCredentials.Error())
			return
		}
		logger.Error("issue token failed", err)
		response.InternalServerError(c, "Internal server error")
		return
	}

	response.Success(c, http.StatusOK, tok)
}
