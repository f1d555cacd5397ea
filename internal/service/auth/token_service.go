package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/calebhs/storefront-api/internal/platform/logger"
	"github.com/calebhs/storefront-api/internal/store"
)

// TokenPair is the result of a successful login or refresh.
type TokenPair struct {
	UserID       int64
	AccessToken  string
	RefreshToken string
}

// TokenService manages the full token lifecycle. It composes two distinct
// validation strategies: access tokens are checked statelessly (signature
// and expiry only), while refresh and recovery tokens additionally require
// the persisted per-user row to match the presented value exactly.
type TokenService interface {
	// IssuePair issues an access/refresh pair and upserts the refresh
	// token as the user's single live one, invalidating any prior one.
	IssuePair(ctx context.Context, userID int64) (*TokenPair, error)

	// ValidateAccess verifies an access token without touching storage.
	// Revoking refresh tokens therefore never retires an already-issued
	// access token before its natural expiry.
	ValidateAccess(ctx context.Context, token string) (int64, error)

	// ValidateRefresh verifies a refresh token cryptographically and
	// against the persisted row. A structurally valid token that was
	// rotated out or revoked fails with ErrStaleToken.
	ValidateRefresh(ctx context.Context, token string) (int64, error)

	// RevokeRefresh deletes the user's stored refresh token, making any
	// previously issued one permanently invalid.
	RevokeRefresh(ctx context.Context, userID int64) error

	// IssueRecovery issues a recovery token and upserts it as the user's
	// single live one.
	IssueRecovery(ctx context.Context, userID int64) (string, error)

	// ValidateRecovery verifies a recovery token like ValidateRefresh,
	// against the recovery table.
	ValidateRecovery(ctx context.Context, token string) (int64, error)

	// RevokeRecovery deletes the user's stored recovery token.
	RevokeRecovery(ctx context.Context, userID int64) error

	// RefreshTokenTTL reports the refresh-token lifetime, for the
	// transport layer to align cookie expiry with.
	RefreshTokenTTL() time.Duration
}

type tokenService struct {
	jwt        JWTService
	refresh    store.TokenStore
	recovery   store.TokenStore
	refreshTTL time.Duration
}

var _ TokenService = (*tokenService)(nil)

// NewTokenService wires the stateless signer to the refresh and recovery
// token stores.
func NewTokenService(jwtService JWTService, refresh, recovery store.TokenStore, refreshTTL time.Duration) TokenService {
	return &tokenService{
		jwt:        jwtService,
		refresh:    refresh,
		recovery:   recovery,
		refreshTTL: refreshTTL,
	}
}

func (s *tokenService) IssuePair(ctx context.Context, userID int64) (*TokenPair, error) {
	access, err := s.jwt.Generate(ctx, userID, KindAccess)
	if err != nil {
		return nil, err
	}
	refresh, err := s.jwt.Generate(ctx, userID, KindRefresh)
	if err != nil {
		return nil, err
	}

	if err := s.refresh.Upsert(ctx, userID, refresh); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	logger.FromContext(ctx).Debug("issued token pair", "user_id", userID)
	return &TokenPair{UserID: userID, AccessToken: access, RefreshToken: refresh}, nil
}

func (s *tokenService) ValidateAccess(ctx context.Context, token string) (int64, error) {
	claims, err := s.jwt.Validate(ctx, token, KindAccess)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}

func (s *tokenService) ValidateRefresh(ctx context.Context, token string) (int64, error) {
	return s.validateStored(ctx, token, KindRefresh, s.refresh)
}

func (s *tokenService) RevokeRefresh(ctx context.Context, userID int64) error {
	if err := s.refresh.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	logger.FromContext(ctx).Debug("revoked refresh token", "user_id", userID)
	return nil
}

func (s *tokenService) IssueRecovery(ctx context.Context, userID int64) (string, error) {
	token, err := s.jwt.Generate(ctx, userID, KindRecovery)
	if err != nil {
		return "", err
	}
	if err := s.recovery.Upsert(ctx, userID, token); err != nil {
		return "", fmt.Errorf("failed to store recovery token: %w", err)
	}
	return token, nil
}

func (s *tokenService) ValidateRecovery(ctx context.Context, token string) (int64, error) {
	return s.validateStored(ctx, token, KindRecovery, s.recovery)
}

func (s *tokenService) RevokeRecovery(ctx context.Context, userID int64) error {
	if err := s.recovery.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke recovery token: %w", err)
	}
	return nil
}

func (s *tokenService) RefreshTokenTTL() time.Duration {
	return s.refreshTTL
}

// validateStored is the stateful validation strategy: the token must both
// verify cryptographically and equal the persisted row byte for byte.
func (s *tokenService) validateStored(ctx context.Context, token string, kind TokenKind, tokens store.TokenStore) (int64, error) {
	claims, err := s.jwt.Validate(ctx, token, kind)
	if err != nil {
		return 0, err
	}

	stored, err := tokens.Get(ctx, claims.UserID)
	if err != nil {
		return 0, fmt.Errorf("failed to load stored %s token: %w", kind, err)
	}
	if stored == nil || subtle.ConstantTimeCompare([]byte(stored.Token), []byte(token)) != 1 {
		logger.FromContext(ctx).Debug("stored token mismatch",
			"user_id", claims.UserID, "token_type", kind)
		return 0, ErrStaleToken
	}

	return claims.UserID, nil
}
