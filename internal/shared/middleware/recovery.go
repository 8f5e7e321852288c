package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"localbiz-backend/internal/shared/response"
)

// Recovery logs the panic and answers 500. API paths get JSON, everything else goes to
// the page handler (the HTML 500 page lives in the web layer).
func Recovery(page gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Str("request_id", c.GetString("request_id")).
					Str("path", c.Request.URL.Path).
					Interface("error", err).
					Msg("Panic recovered")

				if page == nil || strings.HasPrefix(c.Request.URL.Path, "/api/") {
					response.InternalServerError(c, "Internal server error")
				} else {
					c.Status(http.StatusInternalServerError)
					page(c)
				}
				c.Abort()
			}
		}()

		c.Next()
	}
}
