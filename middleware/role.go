package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRole denies the request unless the authenticated user holds
// one of the given roles. Tenant boundaries are still checked per
// operation; this only gates the route.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient role"})
		c.Abort()
	}
}
