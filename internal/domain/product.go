package domain

import "time"

// Product is a sellable item. Prices are stored in the smallest currency
// unit (cents).
type Product struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Quantity    int       `json:"quantity"`
	FullPrice   int64     `json:"full_price"`
	IsActive    bool      `json:"is_active"`
	CategoryID  *int64    `json:"category_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductPatch holds the fields of a Product that may be updated in place.
// Nil fields are left unchanged.
type ProductPatch struct {
	Title       *string
	Description *string
	Quantity    *int
	FullPrice   *int64
	IsActive    *bool
	CategoryID  *int64
}

// Validate checks that the Product has well-formed data.
func (p *Product) Validate() error {
	if p.Title == "" {
		return ErrEmptyTitle
	}
	if p.Quantity < 0 {
		return ErrInvalidQuantity
	}
	if p.FullPrice < 0 {
		return ErrInvalidPrice
	}
	return nil
}
