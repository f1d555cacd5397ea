package domain

import "time"

// CartItem is one product in one user's cart. Its primary key is the
// (UserID, ProductID) pair; a user holds at most one row per product.
type CartItem struct {
	UserID    int64     `json:"user_id"`
	ProductID int64     `json:"product_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

// CartKey is the composite primary key of a CartItem, compared as an
// ordered tuple.
type CartKey struct {
	UserID    int64
	ProductID int64
}

// CartItemPatch holds the fields of a CartItem that may be updated in place.
type CartItemPatch struct {
	Quantity *int
}

// Key returns the item's composite key.
func (i *CartItem) Key() CartKey {
	return CartKey{UserID: i.UserID, ProductID: i.ProductID}
}

// Validate checks that the CartItem has well-formed data.
func (i *CartItem) Validate() error {
	if i.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	return nil
}
