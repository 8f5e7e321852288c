package middleware

import (
	"github.com/gin-gonic/gin"
)

// StaffRequired cho phép staff, còn lại về trang login
func StaffRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil || !u.IsStaff {
			redirectToLogin(c)
			return
		}
		c.Next()
	}
}
