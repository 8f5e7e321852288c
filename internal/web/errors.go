package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"localbiz-backend/pkg/logger"
)

// NotFoundData fills the 404 page (popular categories, featured listings).
type NotFoundData func(c *gin.Context) gin.H

var notFoundData NotFoundData

// SetNotFoundData is called once while wiring the router.
func SetNotFoundData(fn NotFoundData) {
	notFoundData = fn
}

// NotFound renders the 404 page and stops the chain.
func NotFound(c *gin.Context) {
	data := gin.H{}
	if notFoundData != nil {
		data = notFoundData(c)
	}
	Render(c, http.StatusNotFound, "404.html", data)
	c.Abort()
}

// ServerError logs err and renders the generic 500 page.
func ServerError(c *gin.Context, err error) {
	logger.Error("request failed", err)
	Render(c, http.StatusInternalServerError, "500.html", nil)
	c.Abort()
}

// SafeNext accepts only local absolute paths as redirect targets.
func SafeNext(next, fallback string) string {
	if len(next) < 1 || next[0] != '/' {
		return fallback
	}
	if len(next) > 1 && (next[1] == '/' || next[1] == '\\') {
		return fallback
	}
	return next
}
