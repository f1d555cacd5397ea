package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/calebhs/storefront-api/internal/config"
	"github.com/calebhs/storefront-api/internal/service"
	"github.com/calebhs/storefront-api/internal/service/auth"
	"github.com/calebhs/storefront-api/internal/store"
)

// refreshCookieName is the HTTP-only cookie carrying the refresh token.
const refreshCookieName = "refresh_token"

// AuthHandler handles registration and the session lifecycle. The refresh
// token never appears in a response body; it travels in an HTTP-only
// cookie scoped to the auth routes, with expiry matching the refresh TTL.
type AuthHandler struct {
	users      *service.UserService
	tokens     auth.TokenService
	validator  *validator.Validate
	cookieMode http.SameSite
}

// NewAuthHandler creates an AuthHandler with the given dependencies.
func NewAuthHandler(users *service.UserService, tokens auth.TokenService, cfg config.AuthConfig) *AuthHandler {
	return &AuthHandler{
		users:      users,
		tokens:     tokens,
		validator:  validator.New(),
		cookieMode: sameSiteMode(cfg.CookieSameSite),
	}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	user, err := h.users.Register(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			RespondWithError(w, r, http.StatusConflict, "Email already exists")
			return
		}
		HandleServiceError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, user)
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	pair, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		slog.Error("login failed", "error", err)
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to authenticate user")
		return
	}

	h.setRefreshCookie(w, pair.RefreshToken)
	h.respondWithPair(w, r, pair)
}

// Refresh handles POST /auth/refresh. The presented refresh token is
// rotated: the response carries a new pair and the old token is dead.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	token, ok := h.refreshTokenFromCookie(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Refresh token required")
		return
	}

	pair, err := h.users.Refresh(r.Context(), token)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			h.clearRefreshCookie(w)
			RespondWithError(w, r, http.StatusUnauthorized, "Invalid refresh token")
			return
		}
		slog.Error("token refresh failed", "error", err)
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to refresh token")
		return
	}

	h.setRefreshCookie(w, pair.RefreshToken)
	h.respondWithPair(w, r, pair)
}

// Logout handles POST /auth/logout. The bearer access token identifies
// the user, whose stored refresh token is revoked and cookie cleared; a
// missing or stale refresh cookie does not block logging out.
// Already-issued access tokens stay valid until they expire.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
		return
	}

	if err := h.users.Logout(r.Context(), token); err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			h.clearRefreshCookie(w)
			RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			return
		}
		slog.Error("logout failed", "error", err)
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to log out")
		return
	}

	h.clearRefreshCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// Recover handles POST /auth/recover. The response is 202 regardless of
// whether the email is registered.
func (h *AuthHandler) Recover(w http.ResponseWriter, r *http.Request) {
	var req RecoverRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	// TODO: deliver the token by email once an outbound mailer exists;
	// until then issuing it only stores the row.
	if _, err := h.users.RequestPasswordRecovery(r.Context(), req.Email); err != nil {
		slog.Error("recovery request failed", "error", err)
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to process recovery request")
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

// ResetPassword handles POST /auth/reset-password.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if err := h.users.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			RespondWithError(w, r, http.StatusUnauthorized, "Invalid recovery token")
			return
		}
		slog.Error("password reset failed", "error", err)
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to reset password")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) respondWithPair(w http.ResponseWriter, r *http.Request, pair *auth.TokenPair) {
	RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		UserID:      pair.UserID,
		AccessToken: pair.AccessToken,
	})
}

func (h *AuthHandler) refreshTokenFromCookie(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

func (h *AuthHandler) setRefreshCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/auth",
		Expires:  time.Now().Add(h.tokens.RefreshTokenTTL()),
		HttpOnly: true,
		Secure:   h.cookieMode == http.SameSiteNoneMode,
		SameSite: h.cookieMode,
	})
}

func (h *AuthHandler) clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/auth",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: h.cookieMode,
	})
}

func sameSiteMode(mode string) http.SameSite {
	switch mode {
	case "lax":
		return http.SameSiteLaxMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteStrictMode
	}
}
