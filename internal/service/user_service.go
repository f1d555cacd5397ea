package service

import (
	"context"
	"fmt"

	"github.com/calebhs/storefront-api/internal/domain"
	"github.com/calebhs/storefront-api/internal/platform/logger"
	"github.com/calebhs/storefront-api/internal/service/auth"
	"github.com/calebhs/storefront-api/internal/store"
)

// UserService implements account registration and the session lifecycle.
type UserService struct {
	users  store.UserStore
	tokens auth.TokenService
	hasher auth.PasswordHasher
}

// NewUserService creates a UserService with its dependencies.
func NewUserService(users store.UserStore, tokens auth.TokenService, hasher auth.PasswordHasher) *UserService {
	return &UserService{
		users:  users,
		tokens: tokens,
		hasher: hasher,
	}
}

// Register creates a local account with a hashed password. A duplicate
// email surfaces as store.ErrAlreadyExists.
func (s *UserService) Register(ctx context.Context, email, name, password string) (*domain.User, error) {
	user, err := domain.NewUser(email, name)
	if err != nil {
		return nil, err
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = hashed

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("user registered",
		"user_id", created.ID, "email", created.Email)
	return created, nil
}

// Login verifies credentials and issues a fresh token pair. An unknown
// email, an externally provisioned account without a local password, and a
// wrong password all fail with auth.ErrInvalidCredentials; the caller
// cannot tell them apart.
func (s *UserService) Login(ctx context.Context, email, password string) (*auth.TokenPair, error) {
	log := logger.FromContext(ctx)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		log.Debug("login failed: unknown email")
		return nil, auth.ErrInvalidCredentials
	}
	if !user.HasLocalPassword() {
		log.Debug("login failed: no local password", "user_id", user.ID)
		return nil, auth.ErrInvalidCredentials
	}
	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		log.Debug("login failed: password mismatch", "user_id", user.ID)
		return nil, auth.ErrInvalidCredentials
	}

	pair, err := s.tokens.IssuePair(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	log.Info("user logged in", "user_id", user.ID)
	return pair, nil
}

// Refresh rotates a valid refresh token into a new pair. Issuing the new
// pair replaces the stored refresh token, so the presented one cannot be
// used again.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	userID, err := s.tokens.ValidateRefresh(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	return s.tokens.IssuePair(ctx, userID)
}

// Logout revokes the refresh token of the user behind the access token.
// Only the token's signature and claims identify the user; no stored row
// is consulted, so logging out works even when the refresh token is
// already gone. Access tokens already issued remain valid until their
// natural expiry.
func (s *UserService) Logout(ctx context.Context, accessToken string) error {
	userID, err := s.tokens.ValidateAccess(ctx, accessToken)
	if err != nil {
		return err
	}
	return s.tokens.RevokeRefresh(ctx, userID)
}

// Get returns the user, or (nil, nil) when absent.
func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.Get(ctx, id)
}

// UpdateProfile applies the patch to the user's mutable profile fields.
func (s *UserService) UpdateProfile(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error) {
	return s.users.Update(ctx, id, patch, store.Always)
}

// RequestPasswordRecovery issues a recovery token for the account behind
// email. For an unknown email it returns an empty token and no error, so
// the endpoint does not reveal which addresses are registered.
func (s *UserService) RequestPasswordRecovery(ctx context.Context, email string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		logger.FromContext(ctx).Debug("recovery requested for unknown email")
		return "", nil
	}
	return s.tokens.IssueRecovery(ctx, user.ID)
}

// ResetPassword sets a new password for the account behind a valid
// recovery token, then revokes the recovery token and any live session.
func (s *UserService) ResetPassword(ctx context.Context, recoveryToken, newPassword string) error {
	userID, err := s.tokens.ValidateRecovery(ctx, recoveryToken)
	if err != nil {
		return err
	}

	hashed, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if _, err := s.users.Update(ctx, userID, domain.UserPatch{HashedPassword: &hashed}, store.Always); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := s.tokens.RevokeRecovery(ctx, userID); err != nil {
		return err
	}
	if err := s.tokens.RevokeRefresh(ctx, userID); err != nil {
		return err
	}

	logger.FromContext(ctx).Info("password reset", "user_id", userID)
	return nil
}
