package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	bizmodel "localbiz-backend/internal/domains/business/model"
	"localbiz-backend/internal/domains/search/service"
	"localbiz-backend/internal/shared/response"
	"localbiz-backend/internal/web"
	"localbiz-backend/pkg/logger"
)

type SearchHandler struct {
	service *service.SearchService
}

func NewSearchHandler(svc *service.SearchService) *SearchHandler {
	return &SearchHandler{service: svc}
}

// Page - GET /search/?search=&location=
func (h *SearchHandler) Page(c *gin.Context) {
	filter := bizmodel.ListFilter{
		Search:   c.Query("search"),
		Location: c.Query("location"),
		Sort:     c.Query("sort"),
	}

	result, err := h.service.Page(c.Request.Context(), filter.Search, filter.Location)
	if err != nil {
		web.ServerError(c, err)
		return
	}

	web.Render(c, http.StatusOK, "business_list.html", gin.H{
		"Title":       "Search results",
		"Businesses":  result.Businesses,
		"Categories":  result.Categories,
		"Filter":      filter,
		"CurrentSort": filter.CurrentSort(),
	})
}

// Global - GET /search/global/?q=
func (h *SearchHandler) Global(c *gin.Context) {
	result, err := h.service.Global(c.Request.Context(), c.Query("q"))
	if err != nil {
		logger.Error("global search failed", err)
		response.InternalServerError(c, "Internal server error")
		return
	}
	if result == nil {
		c.JSON(http.StatusOK, gin.H{"results": []interface{}{}})
		return
	}
	c.JSON(http.StatusOK, result)
}

// LocationAutocomplete - GET /ajax/location-autocomplete/?q=
func (h *SearchHandler) LocationAutocomplete(c *gin.Context) {
	suggestions, err := h.service.Locations(c.Request.Context(), c.Query("q"))
	if err != nil {
		logger.Error("location autocomplete failed", err)
		response.InternalServerError(c, "Internal server error")
		return
	}
	if suggestions == nil {
		suggestions = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}
