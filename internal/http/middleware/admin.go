// Package middleware provides HTTP middleware shared across modules.
package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

const adminSecretHeader = "X-Admin-Secret"

// AdminSecret validates the X-Admin-Secret header against the configured
// shared secret. Comparison is over sha256 digests in constant time so the
// secret length is not observable.
func AdminSecret(secret string) gin.HandlerFunc {
	expected := sha256.Sum256([]byte(secret))

	return func(c *gin.Context) {
		if secret == "" {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "admin API not configured"})
			return
		}

		provided := sha256.Sum256([]byte(c.GetHeader(adminSecretHeader)))
		if subtle.ConstantTimeCompare(expected[:], provided[:]) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid admin secret"})
			return
		}

		c.Next()
	}
}
