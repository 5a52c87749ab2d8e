package middleware

import (
	"github.com/gin-gonic/gin"
	apierrors "github.com/silverstage/silverstage-api/internal/errors"
	"github.com/silverstage/silverstage-api/internal/policy"
)

// RequirePermission gates a route on the policy table. It must run after
// RequireAuth, which puts the refreshed role into the context.
func RequirePermission(action policy.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetRole(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if !policy.Allowed(action, role) {
			apierrors.Forbidden(c, "")
			c.Abort()
			return
		}

		c.Next()
	}
}
