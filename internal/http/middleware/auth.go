// README: JWT bearer auth middleware; resolves the acting user.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"rideshare/internal/auth"
)

const (
	ContextUserID = "userID"
	ContextRole   = "role"
)

func Auth(jwtSvc *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token", "code": "AUTH_FAILED"})
			return
		}
		claims, err := jwtSvc.Validate(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token", "code": "AUTH_FAILED"})
			return
		}
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// RequireRole gates an endpoint to a single role (RIDER or DRIVER).
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRole) != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "wrong role for this endpoint", "code": "FORBIDDEN"})
			return
		}
		c.Next()
	}
}
