package middleware

import (
	"net/http"

	"github.com/autoparts/backend/internal/domain/identity"
	"github.com/autoparts/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// RequireRoles allows only the listed roles past. It must run after
// JWTAuth.
func RequireRoles(roles ...identity.Role) gin.HandlerFunc {
	allowed := make(map[identity.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(c *gin.Context) {
		role, ok := CurrentRole(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Authentication required"))
			return
		}
		if _, ok := allowed[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Insufficient permissions"))
			return
		}
		c.Next()
	}
}

// RequireStaff allows staff and admin
func RequireStaff() gin.HandlerFunc {
	return RequireRoles(identity.RoleStaff, identity.RoleAdmin)
}

// RequireAdmin allows admin only
func RequireAdmin() gin.HandlerFunc {
	return RequireRoles(identity.RoleAdmin)
}
