package middleware

import (
	"net/http"

	"go-tams/internal/authz"
	"go-tams/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// Authorize gates a route on the caller's role holding (obj, act) in the
// policy set.
func Authorize(enforcer *authz.Enforcer, obj, act string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Role not found in token", nil)
			c.Abort()
			return
		}

		ok, err := enforcer.Enforce(role, obj, act)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Authorization check failed", nil)
			c.Abort()
			return
		}
		if !ok {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You do not have permission to perform this action", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
