package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sweetshop/backend/internal/domain/identity"
	"github.com/sweetshop/backend/internal/interfaces/http/dto"
)

// AdminConfig holds configuration for admin-only middleware
type AdminConfig struct {
	// Logger for middleware logging
	Logger *zap.Logger
}

// RequireAdmin creates middleware that only allows users with the ADMIN role
func RequireAdmin() gin.HandlerFunc {
	return RequireAdminWithConfig(AdminConfig{})
}

// RequireAdminWithConfig creates admin-only middleware with custom config
func RequireAdminWithConfig(cfg AdminConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			handleAdminDenied(c, cfg, "No authentication claims found")
			return
		}

		if identity.Role(claims.Role) != identity.RoleAdmin {
			handleAdminDenied(c, cfg, "User lacks admin role")
			return
		}

		c.Next()
	}
}

// handleAdminDenied rejects the request with 403
func handleAdminDenied(c *gin.Context, cfg AdminConfig, reason string) {
	if cfg.Logger != nil {
		claims := GetJWTClaims(c)
		userID := ""
		role := ""
		if claims != nil {
			userID = claims.UserID
			role = claims.Role
		}

		cfg.Logger.Warn("Admin access denied",
			zap.String("reason", reason),
			zap.String("user_id", userID),
			zap.String("role", role),
			zap.String("path", c.Request.URL.Path),
		)
	}

	c.AbortWithStatusJSON(http.StatusForbidden,
		dto.NewErrorResponse(dto.ErrCodeForbidden, "Admin access required"))
}
