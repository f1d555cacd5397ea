package auth

import (
	"context"
	"time"
)

// TokenKind distinguishes the purpose a signed token was issued for. A
// token is only accepted in the context matching its kind.
type TokenKind string

// Token kinds carried in the "type" claim.
const (
	KindAccess   TokenKind = "access"
	KindRefresh  TokenKind = "refresh"
	KindRecovery TokenKind = "recovery"
)

// JWTService signs and verifies the application's tokens. It is purely
// cryptographic: no storage lookup happens here, which is exactly what
// makes access-token validation stateless. The stateful half of refresh
// and recovery validation lives in TokenService.
type JWTService interface {
	// Generate creates a signed token of the given kind for the user,
	// expiring after the kind's configured TTL.
	Generate(ctx context.Context, userID int64, kind TokenKind) (string, error)

	// Validate verifies signature and expiry and checks the token was
	// issued as the given kind. On success it returns the claims. All
	// failures wrap ErrInvalidToken; expiry is additionally reported as
	// ErrExpiredToken for diagnostics.
	Validate(ctx context.Context, tokenString string, kind TokenKind) (*Claims, error)
}

// Claims is the verified content of a token.
type Claims struct {
	// UserID is the account the token was issued for.
	UserID int64

	// Kind is the purpose the token was issued for.
	Kind TokenKind

	// Standard registered claims.
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}
