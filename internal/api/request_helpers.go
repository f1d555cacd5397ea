package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/calebhs/storefront-api/internal/api/shared"
	"github.com/calebhs/storefront-api/internal/store"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// getUserIDFromContext extracts the authenticated user's id placed into
// the request context by the auth middleware.
func getUserIDFromContext(r *http.Request) (int64, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(int64)
	if !ok || userID == 0 {
		return 0, false
	}
	return userID, true
}

// bearerToken extracts the token from a "Bearer <token>" Authorization
// header.
func bearerToken(r *http.Request) (string, bool) {
	parts := strings.Split(r.Header.Get("Authorization"), " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// getPathID extracts and parses an int64 path parameter.
func getPathID(r *http.Request, paramName string) (int64, error) {
	raw := chi.URLParam(r, paramName)
	if raw == "" {
		return 0, fmt.Errorf("%s is required", paramName)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s has invalid format", paramName)
	}
	return id, nil
}

// parsePage reads limit/offset query parameters, clamping the limit.
func parsePage(r *http.Request) store.Page {
	page := store.Page{Limit: defaultPageLimit}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			page.Limit = limit
		}
	}
	if page.Limit > maxPageLimit {
		page.Limit = maxPageLimit
	}

	if raw := r.URL.Query().Get("offset"); raw != "" {
		if offset, err := strconv.Atoi(raw); err == nil && offset > 0 {
			page.Offset = offset
		}
	}
	return page
}
