// File: internal/common/context_helpers.go
package common

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// AuthorizationHeader is the header name for authorization token
	AuthorizationHeader = "Authorization"
	// AuthorizationTypeBearer is the prefix for Bearer tokens
	AuthorizationTypeBearer = "Bearer"
	// PrincipalIDKey is the context key for the authenticated principal's ID
	PrincipalIDKey = "principalID"
	// PrincipalEmailKey is the context key for the authenticated principal's email
	PrincipalEmailKey = "principalEmail"
	// PrincipalRoleKey is the context key for the authenticated principal's role
	PrincipalRoleKey = "principalRole"
	// PrincipalClaimsKey stores the full session claims object
	PrincipalClaimsKey = "principalClaims"
)

// GetPrincipalIDFromContext retrieves the authenticated principal's ID from
// the Gin context. Returns uuid.Nil if not found or not a UUID.
func GetPrincipalIDFromContext(c *gin.Context) uuid.UUID {
	val, exists := c.Get(PrincipalIDKey)
	if !exists {
		return uuid.Nil
	}
	id, ok := val.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}

// GetPrincipalRoleFromContext retrieves the principal's role from the Gin context.
func GetPrincipalRoleFromContext(c *gin.Context) string {
	val, exists := c.Get(PrincipalRoleKey)
	if !exists {
		return ""
	}
	role, ok := val.(string)
	if !ok {
		return ""
	}
	return role
}
