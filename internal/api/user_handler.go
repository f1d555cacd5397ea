package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/calebhs/storefront-api/internal/domain"
	"github.com/calebhs/storefront-api/internal/service"
)

// UserHandler handles the authenticated user's own account.
type UserHandler struct {
	users     *service.UserService
	validator *validator.Validate
}

// NewUserHandler creates a UserHandler with the given dependencies.
func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{
		users:     users,
		validator: validator.New(),
	}
}

// Me handles GET /users/me.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	user, err := h.users.Get(r.Context(), userID)
	if err != nil {
		slog.Error("failed to load user", "error", err, "user_id", userID)
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to load user")
		return
	}
	if user == nil {
		// The token outlived the account.
		RespondWithError(w, r, http.StatusNotFound, "User not found")
		return
	}
	RespondWithJSON(w, r, http.StatusOK, user)
}

// UpdateMe handles PATCH /users/me.
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req UserPatchRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), userID, domain.UserPatch{Name: req.Name})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	if user == nil {
		RespondWithError(w, r, http.StatusNotFound, "User not found")
		return
	}
	RespondWithJSON(w, r, http.StatusOK, user)
}
