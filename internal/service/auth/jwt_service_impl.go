package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/calebhs/storefront-api/internal/config"
	"github.com/calebhs/storefront-api/internal/platform/logger"
)

// hmacJWTService implements JWTService with HMAC-SHA256 signing and a
// single shared secret.
type hmacJWTService struct {
	signingKey []byte
	ttls       map[TokenKind]time.Duration
	timeFunc   func() time.Time // injectable for testing
	clockSkew  time.Duration
}

// jwtCustomClaims is the wire shape of our claims: the registered set plus
// the token kind. Subject carries the user id as a decimal string.
type jwtCustomClaims struct {
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

var _ JWTService = (*hmacJWTService)(nil)

// NewJWTService creates a JWTService using HMAC-SHA256 with the configured
// secret and per-kind TTLs.
func NewJWTService(cfg config.AuthConfig) (JWTService, error) {
	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("jwt secret must be at least 32 characters")
	}

	return &hmacJWTService{
		signingKey: []byte(cfg.JWTSecret),
		ttls: map[TokenKind]time.Duration{
			KindAccess:   cfg.AccessTokenTTL(),
			KindRefresh:  cfg.RefreshTokenTTL(),
			KindRecovery: cfg.RecoveryTokenTTL(),
		},
		timeFunc:  time.Now,
		clockSkew: 2 * time.Minute,
	}, nil
}

// Generate creates a signed token of the given kind for the user.
func (s *hmacJWTService) Generate(ctx context.Context, userID int64, kind TokenKind) (string, error) {
	log := logger.FromContext(ctx)
	now := s.timeFunc()

	ttl, ok := s.ttls[kind]
	if !ok {
		return "", fmt.Errorf("unknown token kind %q", kind)
	}

	claims := jwtCustomClaims{
		TokenType: string(kind),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		log.Error("failed to sign token",
			"error", err, "user_id", userID, "token_type", kind)
		return "", fmt.Errorf("failed to sign %s token: %w", kind, err)
	}
	return signed, nil
}

// Validate verifies signature, expiry, and kind, and returns the claims.
func (s *hmacJWTService) Validate(ctx context.Context, tokenString string, kind TokenKind) (*Claims, error) {
	log := logger.FromContext(ctx)

	if tokenString == "" {
		return nil, ErrMissingToken
	}

	now := s.timeFunc()
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(s.clockSkew),
		jwt.WithTimeFunc(func() time.Time { return now }),
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwtCustomClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.signingKey, nil
		},
		parserOpts...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			log.Debug("token validation failed: expired", "token_type", kind)
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenMalformed),
			errors.Is(err, jwt.ErrTokenSignatureInvalid),
			errors.Is(err, jwt.ErrTokenNotValidYet):
			log.Debug("token validation failed", "error", err, "token_type", kind)
			return nil, ErrInvalidToken
		default:
			log.Debug("token validation failed: other error",
				"error", err, "token_type", kind)
			return nil, ErrInvalidToken
		}
	}

	claims, ok := token.Claims.(*jwtCustomClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.TokenType != string(kind) {
		log.Debug("token validation failed: wrong kind",
			"expected", kind, "actual", claims.TokenType)
		return nil, ErrWrongTokenType
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		log.Debug("token validation failed: bad subject", "subject", claims.Subject)
		return nil, ErrInvalidToken
	}

	return &Claims{
		UserID:    userID,
		Kind:      kind,
		Subject:   claims.Subject,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
		ID:        claims.ID,
	}, nil
}
