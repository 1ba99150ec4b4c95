package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/smlcredit/smlcredit-api/internal/services"
)

// Auth returns a middleware that validates the shared admin secret. Callers
// authenticate either with "Authorization: Bearer <pin-or-session-token>" or
// with the "X-Admin-Pin" header.
func Auth(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		credential := ""

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "Invalid authorization header format",
				})
				return
			}
			credential = parts[1]
		} else if pin := c.GetHeader("X-Admin-Pin"); pin != "" {
			credential = pin
		}

		if credential == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header is required",
			})
			return
		}

		// A bearer credential may be the raw PIN or a session token from /auth/login.
		if auth.VerifyPIN(credential) != nil && auth.ValidateToken(credential) != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid PIN",
			})
			return
		}

		c.Next()
	}
}
