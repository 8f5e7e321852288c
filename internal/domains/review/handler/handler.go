package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	bizmodel "localbiz-backend/internal/domains/business/model"
	"localbiz-backend/internal/domains/review/model"
	"localbiz-backend/internal/domains/review/service"
	"localbiz-backend/internal/shared/middleware"
	"localbiz-backend/internal/shared/response"
	"localbiz-backend/internal/web"
)

var ratingChoices = []int{1, 2, 3, 4, 5}

// BusinessOptions lists active businesses for the review form select.
type BusinessOptions interface {
	SearchAll(ctx context.Context, search, location string) ([]bizmodel.Business, error)
}

type ReviewHandler struct {
	service    service.ServiceInterface
	businesses BusinessOptions
}

func NewReviewHandler(svc service.ServiceInterface, businesses BusinessOptions) *ReviewHandler {
	return &ReviewHandler{
		service:    svc,
		businesses: businesses,
	}
}

// =====================================================
// PUBLIC
// =====================================================

// List - GET /reviews/
func (h *ReviewHandler) List(c *gin.Context) {
	reviews, err := h.service.List(c.Request.Context())
	if err != nil {
		web.ServerError(c, err)
		return
	}
	web.Render(c, http.StatusOK, "review_list.html", gin.H{
		"Title":   "Reviews",
		"Reviews": reviews,
	})
}

// =====================================================
// USER (LoginRequired)
// =====================================================

// CreatePage - GET /reviews/create/?business=<slug>
func (h *ReviewHandler) CreatePage(c *gin.Context) {
	h.renderForm(c, model.ReviewForm{Business: c.Query("business")}, nil)
}

// Create - POST /reviews/create/
func (h *ReviewHandler) Create(c *gin.Context) {
	var form model.ReviewForm
	if err := c.ShouldBind(&form); err != nil {
		// rating không phải số
		form.Rating = 0
	}

	u := middleware.CurrentUser(c)
	if _, err := h.service.Create(c.Request.Context(), u.ID, form); err != nil {
		if errs, ok := response.FieldErrors(err); ok {
			h.renderForm(c, form, errs)
			return
		}
		var rerr *model.ReviewError
		if errors.As(err, &rerr) {
			h.renderForm(c, form, rerr.FieldErrors())
			return
		}
		web.ServerError(c, err)
		return
	}

	web.AddFlash(c, web.FlashSuccess, "Thank you! Your review has been submitted and is awaiting approval.")
	c.Redirect(http.StatusFound, "/reviews/")
}

func (h *ReviewHandler) renderForm(c *gin.Context, form model.ReviewForm, errs map[string]string) {
	businesses, err := h.businesses.SearchAll(c.Request.Context(), "", "")
	if err != nil {
		web.ServerError(c, err)
		return
	}
	web.Render(c, http.StatusOK, "review_form.html", gin.H{
		"Title":      "Write a review",
		"Form":       form,
		"Errors":     errs,
		"Businesses": businesses,
		"Ratings":    ratingChoices,
	})
}
