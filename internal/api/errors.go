package api

import (
	"errors"
	"net/http"

	"github.com/calebhs/storefront-api/internal/domain"
	"github.com/calebhs/storefront-api/internal/service"
	"github.com/calebhs/storefront-api/internal/service/auth"
	"github.com/calebhs/storefront-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes. Unknown
// errors become 500 so internal details never drive the response.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	case errors.Is(err, store.ErrAlreadyExists),
		errors.Is(err, store.ErrDependentEntity),
		errors.Is(err, service.ErrOutOfStock):
		return http.StatusConflict

	case errors.Is(err, service.ErrProductUnavailable):
		return http.StatusNotFound

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrEmptyEmail),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrEmptyTitle),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidPrice),
		errors.Is(err, service.ErrEmptyCart):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for err. Messages
// for expected errors carry enough detail to act on; everything else is
// generic so internals do not leak.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid credentials"

	case errors.Is(err, auth.ErrInvalidToken):
		return "Invalid token"

	case errors.Is(err, domain.ErrUnauthorized):
		return "Unauthorized"

	case errors.Is(err, store.ErrAlreadyExists):
		return "Resource already exists"

	case errors.Is(err, store.ErrDependentEntity):
		// The structured form names the dependent relation.
		var depErr *store.DependentEntityError
		if errors.As(err, &depErr) {
			return depErr.Error()
		}
		return "Another entity depends on this resource"

	case errors.Is(err, service.ErrOutOfStock):
		return "Not enough stock"

	case errors.Is(err, service.ErrProductUnavailable):
		return "Product unavailable"

	case errors.Is(err, service.ErrEmptyCart):
		return "Cart is empty"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrEmptyEmail),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrEmptyTitle),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidPrice):
		return err.Error()

	default:
		return "An unexpected error occurred"
	}
}

// HandleServiceError writes the response for an error escaping a service
// call, using the shared status and message mapping.
func HandleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
}
