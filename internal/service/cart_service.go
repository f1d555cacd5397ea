package service

import (
	"context"
	"fmt"

	"github.com/calebhs/storefront-api/internal/domain"
	"github.com/calebhs/storefront-api/internal/store"
)

// CartService implements the shopping cart use cases. A cart is the set
// of cart items owned by one user; it has no identity of its own.
type CartService struct {
	carts    store.CartItemStore
	products store.ProductStore
}

// NewCartService creates a CartService with its dependencies.
func NewCartService(carts store.CartItemStore, products store.ProductStore) *CartService {
	return &CartService{carts: carts, products: products}
}

// PutItem sets the quantity of a product in the user's cart, creating the
// item if absent. The product must be active and hold enough stock at the
// time of the call; checkout re-verifies both under row locks.
func (s *CartService) PutItem(ctx context.Context, userID, productID int64, quantity int) (*domain.CartItem, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	product, err := s.products.Get(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up product: %w", err)
	}
	if product == nil || !product.IsActive {
		return nil, fmt.Errorf("product %d: %w", productID, ErrProductUnavailable)
	}
	if product.Quantity < quantity {
		return nil, fmt.Errorf("product %d: %w", productID, ErrOutOfStock)
	}

	return s.carts.Upsert(ctx, &domain.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	})
}

// RemoveItem deletes one product from the user's cart. Removing an absent
// item is a no-op.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID int64) error {
	return s.carts.Delete(ctx, domain.CartKey{UserID: userID, ProductID: productID})
}

// List returns the user's cart items.
func (s *CartService) List(ctx context.Context, userID int64) ([]domain.CartItem, error) {
	return s.carts.ListByUser(ctx, userID)
}

// Clear removes every item from the user's cart in one statement.
func (s *CartService) Clear(ctx context.Context, userID int64) error {
	return s.carts.DeleteAllByUser(ctx, userID)
}
