package middleware

import (
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/silverstage/silverstage-api/internal/auth"
	"github.com/silverstage/silverstage-api/internal/constants"
	"github.com/silverstage/silverstage-api/internal/database"
	apierrors "github.com/silverstage/silverstage-api/internal/errors"
	"github.com/silverstage/silverstage-api/internal/models"
)

// RequireAuth authenticates the request from the session cookie or, for
// non-browser clients, a bearer token. The token's cached {role, name} are
// then overwritten from storage so an admin changing a user's role takes
// effect on the user's next request without re-login. If that refresh
// lookup fails the cached claims are kept; only initial authentication is
// allowed to reject.
func RequireAuth(tm *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, role, name, ok := claimsFromSession(c)
		if !ok {
			userID, role, name, ok = claimsFromBearer(c, tm)
		}
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var user models.User
		if err := database.GetDB().Select("name", "role", "status").First(&user, userID).Error; err == nil {
			if user.Status != models.UserStatusActive {
				apierrors.Unauthorized(c, "Account is inactive")
				c.Abort()
				return
			}
			role = user.Role
			name = user.Name
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Set(constants.ContextKeyRole, role)
		c.Set(constants.ContextKeyName, name)
		c.Next()
	}
}

func claimsFromSession(c *gin.Context) (uint64, models.Role, string, bool) {
	session := sessions.Default(c)

	rawID := session.Get(constants.ContextKeyUserID)
	if rawID == nil {
		return 0, "", "", false
	}

	var userID uint64
	switch v := rawID.(type) {
	case uint64:
		userID = v
	case uint:
		userID = uint64(v)
	case int:
		if v < 0 {
			return 0, "", "", false
		}
		userID = uint64(v)
	default:
		return 0, "", "", false
	}

	role, _ := session.Get(constants.ContextKeyRole).(string)
	name, _ := session.Get(constants.ContextKeyName).(string)
	return userID, models.Role(role), name, true
}

func claimsFromBearer(c *gin.Context, tm *auth.TokenManager) (uint64, models.Role, string, bool) {
	if tm == nil {
		return 0, "", "", false
	}

	authz := c.GetHeader("Authorization")
	if !strings.HasPrefix(authz, "Bearer ") {
		return 0, "", "", false
	}

	claims, err := tm.Parse(strings.TrimPrefix(authz, "Bearer "))
	if err != nil {
		return 0, "", "", false
	}
	return claims.UserID, claims.Role, claims.Name, true
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

// GetRole retrieves the current user's refreshed role from context
func GetRole(c *gin.Context) (models.Role, bool) {
	raw, exists := c.Get(constants.ContextKeyRole)
	if !exists {
		return "", false
	}

	switch v := raw.(type) {
	case models.Role:
		return v, true
	case string:
		return models.Role(v), true
	default:
		return "", false
	}
}
