package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"localbiz-backend/internal/infrastructure/metrics"
)

// Metrics records request count, latency and in-flight gauge per route template.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		metrics.RequestStarted()
		defer metrics.RequestFinished()

		c.Next()

		metrics.ObserveRequest(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(c.Writer.Status()),
			time.Since(start).Seconds(),
		)
	}
}
