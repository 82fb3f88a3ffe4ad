package middleware

import (
	"github.com/campuslib/library_management_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

const (
	userIDKey   = contextKey("userID")
	userRoleKey = contextKey("userRole")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin
// context, falling back to the request context. The boolean reports whether
// an ID was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if userIDVal, exists := c.Get(string(userIDKey)); exists {
		if userID, ok := userIDVal.(string); ok {
			return userID, true
		}
		return "", false
	}
	if userIDVal := c.Request.Context().Value(userIDKey); userIDVal != nil {
		if userID, ok := userIDVal.(string); ok {
			return userID, true
		}
	}
	return "", false
}

// GetUserRoleFromContext retrieves the authenticated user's role from the
// Gin context, falling back to the request context.
func GetUserRoleFromContext(c *gin.Context) (domain.UserRole, bool) {
	if roleVal, exists := c.Get(string(userRoleKey)); exists {
		if role, ok := roleVal.(domain.UserRole); ok {
			return role, true
		}
		return "", false
	}
	if roleVal := c.Request.Context().Value(userRoleKey); roleVal != nil {
		if role, ok := roleVal.(domain.UserRole); ok {
			return role, true
		}
	}
	return "", false
}
