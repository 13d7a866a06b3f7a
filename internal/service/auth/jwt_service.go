// Package auth provides token issuance/verification and password hashing.
package auth

import (
	"context"
	"time"
)

// Claims holds the verified content of a token.
type Claims struct {
	Username  string
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}

// JWTService defines the interface for issuing and verifying bearer tokens.
type JWTService interface {
	// GenerateToken creates a signed, time-limited token binding the username.
	GenerateToken(ctx context.Context, username string) (string, error)

	// ValidateToken verifies a token and returns its claims.
	// Returns ErrExpiredToken or ErrInvalidToken on failure; callers collapse
	// both to a single unauthorized outcome at the API boundary.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}
