package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	bizmodel "localbiz-backend/internal/domains/business/model"
	"localbiz-backend/internal/domains/category"
	"localbiz-backend/internal/web"
)

// CategoryListings pages the active businesses of one category.
type CategoryListings interface {
	ListByCategory(ctx context.Context, categoryID uuid.UUID, rawPage string) (*bizmodel.ListResult, error)
}

// ============================================================
// HANDLER STRUCT
// ============================================================
type CategoryHandler struct {
	service    category.Service
	businesses CategoryListings
}

func NewCategoryHandler(svc category.Service, businesses CategoryListings) *CategoryHandler {
	return &CategoryHandler{
		service:    svc,
		businesses: businesses,
	}
}

// ========== LIST: GET /categories/ ==========
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.service.List(c.Request.Context())
	if err != nil {
		web.ServerError(c, err)
		return
	}

	web.Render(c, http.StatusOK, "category_list.html", gin.H{
		"Title":      "Categories",
		"Categories": categories,
	})
}

// ========== DETAIL: GET /categories/:slug/ ==========
func (h *CategoryHandler) Detail(c *gin.Context) {
	ctx := c.Request.Context()

	cat, err := h.service.GetBySlug(ctx, c.Param("slug"))
	if err != nil {
		if errors.Is(err, category.ErrCategoryNotFound) {
			web.NotFound(c)
			return
		}
		web.ServerError(c, err)
		return
	}

	result, err := h.businesses.ListByCategory(ctx, cat.ID, c.Query("page"))
	if err != nil {
		web.ServerError(c, err)
		return
	}

	web.Render(c, http.StatusOK, "category_detail.html", gin.H{
		"Title":      cat.Name,
		"Category":   cat,
		"Businesses": result.Businesses,
		"Page":       result.Page,
		"QueryBase":  "",
	})
}

// ========== DELETE: POST /staff/categories/:slug/delete/ ==========
// Businesses in the category keep existing with category_id = NULL.
func (h *CategoryHandler) Delete(c *gin.Context) {
	slug := c.Param("slug")

	if err := h.service.Delete(c.Request.Context(), slug); err != nil {
		if errors.Is(err, category.ErrCategoryNotFound) {
			web.NotFound(c)
			return
		}
		web.ServerError(c, err)
		return
	}

	web.AddFlash(c, web.FlashSuccess, "Category deleted.")
	c.Redirect(http.StatusFound, "/categories/")
}
