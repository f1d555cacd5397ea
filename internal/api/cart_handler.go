package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/calebhs/storefront-api/internal/service"
)

// CartHandler handles the authenticated user's shopping cart.
type CartHandler struct {
	carts     *service.CartService
	validator *validator.Validate
}

// NewCartHandler creates a CartHandler with the given dependencies.
func NewCartHandler(carts *service.CartService) *CartHandler {
	return &CartHandler{
		carts:     carts,
		validator: validator.New(),
	}
}

// List handles GET /cart.
func (h *CartHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	items, err := h.carts.List(r.Context(), userID)
	if err != nil {
		slog.Error("failed to list cart", "error", err, "user_id", userID)
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to list cart")
		return
	}
	RespondWithJSON(w, r, http.StatusOK, items)
}

// PutItem handles PUT /cart/items: sets the quantity of a product in the
// cart, creating the item when absent.
func (h *CartHandler) PutItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CartItemRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	item, err := h.carts.PutItem(r.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusOK, item)
}

// RemoveItem handles DELETE /cart/items/{productID}. Removing an item that
// is not in the cart succeeds.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	productID, err := getPathID(r, "productID")
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.carts.RemoveItem(r.Context(), userID, productID); err != nil {
		slog.Error("failed to remove cart item",
			"error", err, "user_id", userID, "product_id", productID)
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to remove cart item")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Clear handles DELETE /cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	if err := h.carts.Clear(r.Context(), userID); err != nil {
		slog.Error("failed to clear cart", "error", err, "user_id", userID)
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to clear cart")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
