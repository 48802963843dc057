package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"hellobooks-backend/internal/shared"
	"hellobooks-backend/pkg/jwt"
)

// CallerKey is the gin context key under which the resolved identity lives.
const CallerKey = "caller"

// AuthMiddleware validates the bearer token and stores the resolved Caller
// in the request context.
func AuthMiddleware(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(401, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(401, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := manager.ValidateAccessToken(parts[1])
		if err != nil {
			c.JSON(401, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(CallerKey, shared.Caller{
			UserID: claims.UserID,
			Email:  claims.Email,
			Role:   claims.Role,
		})

		c.Next()
	}
}

// GetCaller pulls the resolved identity out of the context.
func GetCaller(c *gin.Context) (shared.Caller, bool) {
	v, exists := c.Get(CallerKey)
	if !exists {
		return shared.Caller{}, false
	}
	caller, ok := v.(shared.Caller)
	return caller, ok
}
