package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the JSON envelope for non-collection endpoints.
type Response struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    interface{}       `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// PageResponse is the collection envelope used by the REST API.
type PageResponse struct {
	Count    int         `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

// Success responses
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

func Message(c *gin.Context, statusCode int, success bool, message string) {
	c.JSON(statusCode, Response{Success: success, Message: message})
}

func Paginated(c *gin.Context, count int, next, previous *string, results interface{}) {
	c.JSON(http.StatusOK, PageResponse{
		Count:    count,
		Next:     next,
		Previous: previous,
		Results:  results,
	})
}

// Error responses
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	Message(c, statusCode, false, message)
}

func ValidationFailed(c *gin.Context, errs map[string]string) {
	c.JSON(http.StatusBadRequest, Response{
		Success: false,
		Message: "Validation failed",
		Errors:  errs,
	})
}

// Common error responses
func BadRequest(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, message)
}

func Unauthorized(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusForbidden, message)
}

func NotFound(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusNotFound, message)
}

func InternalServerError(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusInternalServerError, message)
}
