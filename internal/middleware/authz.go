package middleware

import (
	"net/http"
	"strings"

	"taskhub/backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Authenticate resolves the bearer token to an acting user and stores
// it in the request context under "actor". The user is loaded from the
// database on every request so a role change takes effect immediately.
func Authenticate(db *gorm.DB, authService services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Authorization header is required",
			})
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Authorization header must use Bearer token",
			})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		actor, err := authService.ResolveToken(db, tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Token validation failed",
			})
			return
		}

		c.Set("actor", actor)
		c.Next()
	}
}
