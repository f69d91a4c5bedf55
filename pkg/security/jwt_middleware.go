package security

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jayeuse/Inventory-System-sub000/pkg/roles"
)

const (
	ContextSessionID = "sessionID"
	ContextUsername  = "username"
	ContextRole      = "role"
)

// JWTMiddleware validates the console token and exposes its claims on the context.
func (s *TokenService) JWTMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := s.ParseJWT(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set(ContextSessionID, claims.SessionID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// Authorize ensures the user has at least the required role.
func Authorize(requiredRole roles.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(ContextRole); !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden: insufficient permissions"})
			c.Abort()
			return
		}

		if !IsAllowed(c, requiredRole) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden: insufficient permissions"})
			c.Abort()
			return
		}

		c.Next()
	}
}

func IsAllowed(c *gin.Context, requiredRole roles.Role) bool {
	value, exists := c.Get(ContextRole)
	if !exists {
		return false
	}
	userRole, ok := value.(string)
	if !ok {
		return false
	}
	return roles.Role(userRole).HasPermission(requiredRole)
}
