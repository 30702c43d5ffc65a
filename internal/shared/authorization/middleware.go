package authorization

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/civictrack/civictrack/internal/shared/constants"
)

// RequireRoles aborts with 403 unless the authenticated role is one of roles.
// It must run after the auth middleware has set the user role.
func RequireRoles(roles ...UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := UserRole(c.GetString(constants.ContextKeyUserRole))
		for _, r := range roles {
			if userRole == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": "User role " + string(userRole) + " is not authorized to access this route",
		})
	}
}

// IdentityFromContext reads the identity set by the auth middleware.
func IdentityFromContext(c *gin.Context) (Identity, bool) {
	userID, ok := c.Get(constants.ContextKeyUserID)
	if !ok {
		return Identity{}, false
	}
	uid, ok := userID.(uint)
	if !ok || uid == 0 {
		return Identity{}, false
	}
	return Identity{
		UserID: uid,
		Role:   ParseUserRole(c.GetString(constants.ContextKeyUserRole)),
	}, true
}
