package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SecretToken rejects requests whose X-Secret-Token header does not match
// the configured shared secret. An empty configured secret rejects every
// request.
func SecretToken(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("X-Secret-Token")
		if secret == "" || subtle.ConstantTimeCompare([]byte(header), []byte(secret)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}
