package api

import (
	"log/slog"
	"net/http"

	"github.com/calebhs/storefront-api/internal/service"
)

// OrderHandler handles checkout and order history for the authenticated
// user.
type OrderHandler struct {
	orders *service.OrderService
}

// NewOrderHandler creates an OrderHandler with the given dependencies.
func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// Checkout handles POST /orders: converts the caller's cart into an order.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	order, err := h.orders.Checkout(r.Context(), userID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusCreated, order)
}

// List handles GET /orders: the caller's orders, newest first.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	orders, err := h.orders.ListByUser(r.Context(), userID, parsePage(r))
	if err != nil {
		slog.Error("failed to list orders", "error", err, "user_id", userID)
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to list orders")
		return
	}
	RespondWithJSON(w, r, http.StatusOK, orders)
}

// Get handles GET /orders/{orderID}. Orders belonging to other users are
// indistinguishable from absent ones.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	orderID, err := getPathID(r, "orderID")
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.orders.Get(r.Context(), userID, orderID)
	if err != nil {
		slog.Error("failed to get order", "error", err, "order_id", orderID)
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to get order")
		return
	}
	if order == nil {
		RespondWithError(w, r, http.StatusNotFound, "Order not found")
		return
	}
	RespondWithJSON(w, r, http.StatusOK, order)
}
