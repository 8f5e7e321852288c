package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"localbiz-backend/internal/domains/moderation/service"
	"localbiz-backend/internal/shared/response"
	"localbiz-backend/internal/web"
	"localbiz-backend/pkg/logger"
)

// ModerationHandler: every route sits behind middleware.StaffRequired.
type ModerationHandler struct {
	service *service.ModerationService
}

func NewModerationHandler(svc *service.ModerationService) *ModerationHandler {
	return &ModerationHandler{service: svc}
}

// Dashboard - GET /staff/
func (h *ModerationHandler) Dashboard(c *gin.Context) {
	d, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		web.ServerError(c, err)
		return
	}
	web.Render(c, http.StatusOK, "staff_dashboard.html", gin.H{
		"Title":            "LocalBiz Admin Dashboard",
		"Stats":            d.Stats,
		"RecentBusinesses": d.RecentBusinesses,
		"RecentReviews":    d.RecentReviews,
		"TopCategories":    d.TopCategories,
	})
}

// Businesses - GET /staff/businesses/?status=pending|active
func (h *ModerationHandler) Businesses(c *gin.Context) {
	result, status, err := h.service.Businesses(c.Request.Context(), c.Query("status"), c.Query("page"))
	if err != nil {
		web.ServerError(c, err)
		return
	}
	web.Render(c, http.StatusOK, "staff_businesses.html", gin.H{
		"Title":      "Businesses",
		"Businesses": result.Businesses,
		"Page":       result.Page,
		"Status":     status,
		"QueryBase":  web.QueryBase(url.Values{"status": {status}}),
	})
}

// ApproveBusiness - POST /staff/businesses/:id/approve/
func (h *ModerationHandler) ApproveBusiness(c *gin.Context) {
	id, ok := parseID(c, "Business not found")
	if !ok {
		return
	}
	if _, err := h.service.ApproveBusiness(c.Request.Context(), id); err != nil {
		h.actionError(c, err, "Business not found")
		return
	}
	response.Message(c, http.StatusOK, true, "Business approved successfully")
}

// DeactivateBusiness - POST /staff/businesses/:id/deactivate/
func (h *ModerationHandler) DeactivateBusiness(c *gin.Context) {
	id, ok := parseID(c, "Business not found")
	if !ok {
		return
	}
	if _, err := h.service.DeactivateBusiness(c.Request.Context(), id); err != nil {
		h.actionError(c, err, "Business not found")
		return
	}
	response.Message(c, http.StatusOK, true, "Business deactivated successfully")
}

// Reviews - GET /staff/reviews/?status=pending|approved
func (h *ModerationHandler) Reviews(c *gin.Context) {
	result, status, err := h.service.Reviews(c.Request.Context(), c.Query("status"), c.Query("page"))
	if err != nil {
		web.ServerError(c, err)
		return
	}
	web.Render(c, http.StatusOK, "staff_reviews.html", gin.H{
		"Title":     "Reviews",
		"Reviews":   result.Reviews,
		"Page":      result.Page,
		"Status":    status,
		"QueryBase": web.QueryBase(url.Values{"status": {status}}),
	})
}

// ApproveReview - POST /staff/reviews/:id/approve/
func (h *ModerationHandler) ApproveReview(c *gin.Context) {
	id, ok := parseID(c, "Review not found")
	if !ok {
		return
	}
	if _, err := h.service.ApproveReview(c.Request.Context(), id); err != nil {
		h.actionError(c, err, "Review not found")
		return
	}
	response.Message(c, http.StatusOK, true, "Review approved successfully")
}

// Export - GET /staff/businesses/export/
func (h *ModerationHandler) Export(c *gin.Context) {
	f, err := h.service.ExportBusinesses(c.Request.Context())
	if err != nil {
		web.ServerError(c, err)
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="businesses.xlsx"`)
	if err := f.Write(c.Writer); err != nil {
		logger.Error("write export failed", err)
	}
}

func parseID(c *gin.Context, notFound string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.NotFound(c, notFound)
		return uuid.Nil, false
	}
	return id, true
}

func (h *ModerationHandler) actionError(c *gin.Context, err error, notFound string) {
	if service.IsNotFound(err) {
		response.NotFound(c, notFound)
		return
	}
	logger.Error("moderation action failed", err)
	response.InternalServerError(c, "An error occurred")
}
