package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// AdminKeyHeader carries the operator key for admin endpoints.
const AdminKeyHeader = "X-Admin-Key"

// AdminAuth guards admin routes with a bcrypt-hashed operator key. The hash
// lives in configuration, so the plaintext key is never stored server-side.
func AdminAuth(keyHash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(AdminKeyHeader)
		if key == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(keyHash), []byte(key)); err != nil {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}
