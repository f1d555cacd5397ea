package service

import "errors"

// Business-rule errors surfaced by the services. The API layer maps these
// to response statuses; nothing below the service layer returns them.
var (
	// ErrEmptyCart indicates a checkout attempted with no cart items.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrOutOfStock indicates a requested quantity exceeding the product's
	// available stock.
	ErrOutOfStock = errors.New("not enough stock")

	// ErrProductUnavailable indicates a product that is absent or inactive.
	ErrProductUnavailable = errors.New("product unavailable")
)
