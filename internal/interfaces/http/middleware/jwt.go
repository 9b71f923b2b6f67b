package middleware

import (
	"net/http"
	"strings"

	"github.com/autoparts/backend/internal/domain/identity"
	"github.com/autoparts/backend/internal/infrastructure/auth"
	"github.com/autoparts/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Context keys set by the JWT middleware
const (
	ClaimsKey     = "jwt_claims"
	UserIDKey     = "jwt_user_id"
	RoleKey       = "jwt_role"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// JWTAuth authenticates requests with a Bearer token. The role claim is
// parsed into the typed enum here so handlers never see raw strings.
func JWTAuth(jwtService *auth.JWTService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			abortUnauthorized(c, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		if tokenString == "" {
			abortUnauthorized(c, "Missing token")
			return
		}

		claims, err := jwtService.Validate(tokenString)
		if err != nil {
			if logger != nil {
				logger.Debug("token validation failed",
					zap.String("path", c.Request.URL.Path),
					zap.Error(err))
			}
			if err == auth.ErrExpiredToken {
				abortUnauthorized(c, "Token has expired")
				return
			}
			abortUnauthorized(c, "Invalid token")
			return
		}

		userID, err := claims.UserUUID()
		if err != nil {
			abortUnauthorized(c, "Invalid token")
			return
		}
		role, err := claims.ParsedRole()
		if err != nil {
			abortUnauthorized(c, "Invalid token")
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set(UserIDKey, userID)
		c.Set(RoleKey, role)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponse(dto.ErrCodeUnauthorized, message))
}

// CurrentUserID returns the authenticated user's id from the context
func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	if v, exists := c.Get(UserIDKey); exists {
		if id, ok := v.(uuid.UUID); ok {
			return id, true
		}
	}
	return uuid.Nil, false
}

// CurrentRole returns the authenticated user's role from the context
func CurrentRole(c *gin.Context) (identity.Role, bool) {
	if v, exists := c.Get(RoleKey); exists {
		if role, ok := v.(identity.Role); ok {
			return role, true
		}
	}
	return "", false
}

// GetClaims returns the full token claims from the context
func GetClaims(c *gin.Context) *auth.Claims {
	if v, exists := c.Get(ClaimsKey); exists {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}
