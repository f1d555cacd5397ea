package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/calebhs/storefront-api/internal/domain"
	"github.com/calebhs/storefront-api/internal/service"
	"github.com/calebhs/storefront-api/internal/service/auth"
	"github.com/calebhs/storefront-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"stale token", auth.ErrStaleToken, http.StatusUnauthorized},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"already exists", store.ErrAlreadyExists, http.StatusConflict},
		{"dependent entity", &store.DependentEntityError{Entity: "Product", Relation: "cart_items"}, http.StatusConflict},
		{"out of stock", service.ErrOutOfStock, http.StatusConflict},
		{"product unavailable", service.ErrProductUnavailable, http.StatusNotFound},
		{"invalid email", domain.ErrInvalidEmail, http.StatusBadRequest},
		{"empty cart", service.ErrEmptyCart, http.StatusBadRequest},
		{"wrapped domain error", fmt.Errorf("update product: %w", domain.ErrInvalidQuantity), http.StatusBadRequest},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "An unexpected error occurred"},
		{"credentials", auth.ErrInvalidCredentials, "Invalid credentials"},
		{"token, wrapped", fmt.Errorf("refresh: %w", auth.ErrStaleToken), "Invalid token"},
		{"already exists", store.ErrAlreadyExists, "Resource already exists"},
		{
			"dependent entity keeps the relation",
			&store.DependentEntityError{Entity: "Product", Relation: "cart_items"},
			"there is some other entity in relation cart_items that depends on Product",
		},
		{"out of stock", service.ErrOutOfStock, "Not enough stock"},
		{"domain errors pass through", domain.ErrEmptyTitle, domain.ErrEmptyTitle.Error()},
		{"internal details stay hidden", errors.New("pq: connection refused"), "An unexpected error occurred"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetSafeErrorMessage(tt.err))
		})
	}
}
