// File: internal/middleware/auth.go
package middleware

import (
	"strings"

	"poi_backend/internal/auth"
	"poi_backend/internal/common"
	"poi_backend/internal/config"
	"poi_backend/internal/shared"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthMiddleware creates a Gin middleware authenticating the request's
// principal. The session token is read from the session cookie first, with a
// Bearer Authorization header as fallback for non-browser clients. Missing,
// invalid, expired, and revoked tokens are all rejected; on success the
// principal's id, email, role, and full claims are stored in the request
// context for downstream handlers.
func AuthMiddleware(
	tokenService shared.TokenService,
	blocklist auth.TokenBlocklistService,
	cfg *config.Config,
	logger *zap.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := sessionToken(c, cfg)
		if tokenString == "" {
			logger.Debug("No session token on request", zap.String("path", c.Request.URL.Path))
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Authentication is required."))
			return
		}

		claims, err := tokenService.ValidateToken(tokenString)
		if err != nil {
			logger.Warn("Session token validation failed", zap.Error(err))
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Session is invalid or expired."))
			return
		}

		if claims.ID != "" {
			revoked, err := blocklist.IsBlocklisted(c.Request.Context(), claims.ID)
			if err != nil {
				logger.Error("Blocklist lookup failed", zap.Error(err))
				common.RespondWithError(c, common.ErrInternalServer)
				return
			}
			if revoked {
				logger.Debug("Rejected revoked session token", zap.String("jti", claims.ID))
				common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Session has been logged out."))
				return
			}
		}

		c.Set(common.PrincipalIDKey, claims.UserID)
		c.Set(common.PrincipalEmailKey, claims.Email)
		c.Set(common.PrincipalRoleKey, claims.Role)
		c.Set(common.PrincipalClaimsKey, claims)

		c.Next()
	}
}

// sessionToken extracts the raw token from the cookie or the Authorization
// header. Empty string means unauthenticated.
func sessionToken(c *gin.Context, cfg *config.Config) string {
	if cookie, err := c.Cookie(cfg.SessionCookieName); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader(common.AuthorizationHeader)
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], common.AuthorizationTypeBearer) {
		return ""
	}
	return parts[1]
}

// RoleAuthMiddleware creates a middleware to check that the authenticated
// principal has one of the required roles.
func RoleAuthMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principalRole := common.GetPrincipalRoleFromContext(c)
		if principalRole == "" {
			common.RespondWithError(c, common.ErrForbidden.WithDetails("Principal role not found in context."))
			return
		}

		for _, role := range allowedRoles {
			if principalRole == role {
				c.Next()
				return
			}
		}

		common.RespondWithError(c, common.ErrForbidden.WithDetails("You do not have sufficient permissions for this resource."))
	}
}
