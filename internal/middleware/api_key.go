package middleware

import (
	"crypto/subtle"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// APIKeyAuth guards the trigger and webhook routes with a shared secret. The
// key arrives either as an X-API-Key header or an "ApiKey ..." Authorization
// header. With no TRIGGER_API_KEY configured the guard is disabled, which is
// the expected state in local development.
func APIKeyAuth() gin.HandlerFunc {
	expected := os.Getenv("TRIGGER_API_KEY")

	return func(c *gin.Context) {
		if expected == "" {
			c.Next()
			return
		}

		key := c.GetHeader("X-API-Key")
		if key == "" {
			authHeader := c.GetHeader("Authorization")
			if strings.HasPrefix(authHeader, "ApiKey ") {
				key = strings.TrimPrefix(authHeader, "ApiKey ")
			}
		}

		if key == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "API key is required",
			})
			c.Abort()
			return
		}

		if subtle.ConstantTimeCompare([]byte(key), []byte(expected)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Invalid API key",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
