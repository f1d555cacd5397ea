package domain

import "time"

// Order is a placed order with its line items. Total is the sum of
// UnitPrice*Quantity across items, captured at checkout time.
type Order struct {
	ID        int64       `json:"id"`
	UserID    int64       `json:"user_id"`
	Total     int64       `json:"total"`
	CreatedAt time.Time   `json:"created_at"`
	Items     []OrderItem `json:"items,omitempty"`
}

// OrderItem is one product line within an order. UnitPrice is the product
// price at the moment the order was placed.
type OrderItem struct {
	OrderID   int64 `json:"order_id"`
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
	UnitPrice int64 `json:"unit_price"`
}
