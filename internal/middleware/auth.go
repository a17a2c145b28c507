package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/shiftflow/shiftflow-api/internal/constants"
	"github.com/shiftflow/shiftflow-api/internal/database"
	apierrors "github.com/shiftflow/shiftflow-api/internal/errors"
	"github.com/shiftflow/shiftflow-api/internal/models"
)

// RequireAuth checks if the user is authenticated via session
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get(constants.ContextKeyUserID)

		if userID == nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		// Store user ID in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// RequireManager loads the current user and ensures they hold the
// manager role. Deactivated accounts are rejected.
func RequireManager() gin.HandlerFunc {
	return requireRole(models.RoleManager)
}

// RequireEmployee loads the current user and ensures they hold the
// employee role. Deactivated accounts are rejected.
func RequireEmployee() gin.HandlerFunc {
	return requireRole(models.RoleEmployee)
}

func requireRole(role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var user models.User
		if err := database.GetDB().First(&user, userID).Error; err != nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if !user.IsActive || user.Role != role {
			apierrors.Forbidden(c, "")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUser, user)
		c.Next()
	}
}

// GetCurrentUser retrieves the user loaded by a role middleware
func GetCurrentUser(c *gin.Context) (models.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return models.User{}, false
	}
	user, ok := value.(models.User)
	return user, ok
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
