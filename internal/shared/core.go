// File: internal/shared/core.go
// Package shared holds the contracts that cut across feature packages, so
// middleware, auth, and user do not import each other directly.
package shared

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// PrincipalData abstracts the identity data needed for token generation.
type PrincipalData interface {
	GetID() uuid.UUID
	GetEmail() string
	GetRole() string
}

// Claims represents the session token claims structure.
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for session token operations.
type TokenService interface {
	GenerateToken(principal PrincipalData) (string, time.Time, error)
	ValidateToken(tokenString string) (*Claims, error)
}
