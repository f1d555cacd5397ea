package auth

import (
	"errors"
	"fmt"
)

// Authentication errors. The token errors all wrap ErrInvalidToken:
// callers treat every failure mode identically, and the specific wrapped
// reason exists for diagnostics only.
var (
	// ErrInvalidToken indicates a token that is malformed, carries a bad
	// signature, or otherwise cannot be accepted.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates a token past its expiry.
	ErrExpiredToken = fmt.Errorf("%w: token expired", ErrInvalidToken)

	// ErrMissingToken indicates a token was expected but not presented.
	ErrMissingToken = fmt.Errorf("%w: token missing", ErrInvalidToken)

	// ErrWrongTokenType indicates a structurally valid token presented in
	// the wrong context (e.g. an access token used to refresh).
	ErrWrongTokenType = fmt.Errorf("%w: wrong token type", ErrInvalidToken)

	// ErrStaleToken indicates a structurally valid refresh or recovery
	// token that no longer matches the persisted row because it was
	// rotated out or revoked.
	ErrStaleToken = fmt.Errorf("%w: token superseded or revoked", ErrInvalidToken)

	// ErrInvalidCredentials indicates a failed login: unknown email,
	// wrong password, or an externally provisioned account with no local
	// password. The reasons are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrPasswordMismatch indicates a password that does not match its
	// stored hash.
	ErrPasswordMismatch = errors.New("password does not match")
)
