package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calebhs/storefront-api/internal/api/shared"
	"github.com/calebhs/storefront-api/internal/service/auth"
)

// stubTokenService accepts exactly one access token and maps it to a
// fixed user id.
type stubTokenService struct {
	accessToken string
	userID      int64
}

func (s *stubTokenService) IssuePair(_ context.Context, _ int64) (*auth.TokenPair, error) {
	panic("not used")
}

func (s *stubTokenService) ValidateAccess(_ context.Context, token string) (int64, error) {
	if token != s.accessToken {
		return 0, auth.ErrInvalidToken
	}
	return s.userID, nil
}

func (s *stubTokenService) ValidateRefresh(_ context.Context, _ string) (int64, error) {
	panic("not used")
}

func (s *stubTokenService) RevokeRefresh(_ context.Context, _ int64) error { panic("not used") }

func (s *stubTokenService) IssueRecovery(_ context.Context, _ int64) (string, error) {
	panic("not used")
}

func (s *stubTokenService) ValidateRecovery(_ context.Context, _ string) (int64, error) {
	panic("not used")
}

func (s *stubTokenService) RevokeRecovery(_ context.Context, _ int64) error { panic("not used") }

func (s *stubTokenService) RefreshTokenTTL() time.Duration { return 15 * 24 * time.Hour }

func TestAuthenticate(t *testing.T) {
	mw := NewAuthMiddleware(&stubTokenService{accessToken: "good-token", userID: 42})

	var gotUserID int64
	var called bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		id, ok := r.Context().Value(shared.UserIDContextKey).(int64)
		require.True(t, ok)
		gotUserID = id
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantNext   bool
	}{
		{"missing header", "", http.StatusUnauthorized, false},
		{"not a bearer scheme", "Basic abc123", http.StatusUnauthorized, false},
		{"malformed header", "Bearer", http.StatusUnauthorized, false},
		{"invalid token", "Bearer bad-token", http.StatusUnauthorized, false},
		{"valid token", "Bearer good-token", http.StatusOK, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called = false
			gotUserID = 0

			req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			mw.Authenticate(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantNext, called)
			if tt.wantNext {
				assert.Equal(t, int64(42), gotUserID)
			}
		})
	}
}
