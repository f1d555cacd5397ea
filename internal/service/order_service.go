package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/calebhs/storefront-api/internal/domain"
	"github.com/calebhs/storefront-api/internal/platform/logger"
	"github.com/calebhs/storefront-api/internal/store"
)

// OrderService implements checkout and order history.
type OrderService struct {
	db       *sql.DB
	carts    store.CartItemStore
	products store.ProductStore
	orders   store.OrderStore
}

// NewOrderService creates an OrderService with its dependencies. The
// *sql.DB is needed because checkout owns a multi-store transaction.
func NewOrderService(db *sql.DB, carts store.CartItemStore, products store.ProductStore, orders store.OrderStore) *OrderService {
	return &OrderService{
		db:       db,
		carts:    carts,
		products: products,
		orders:   orders,
	}
}

// Checkout converts the user's cart into an order inside one transaction:
// cart rows are read under row locks, each product's stock is decremented
// only while it is active and sufficient, the order and its items are
// inserted, and the cart is cleared. Any failure rolls back everything,
// including stock decrements already applied for earlier items.
func (s *OrderService) Checkout(ctx context.Context, userID int64) (*domain.Order, error) {
	var placed *domain.Order

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		carts := s.carts.WithTx(tx)
		products := s.products.WithTx(tx)
		orders := s.orders.WithTx(tx)

		items, err := carts.ListByUser(ctx, userID, store.ForUpdate())
		if err != nil {
			return fmt.Errorf("failed to read cart: %w", err)
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		order := &domain.Order{UserID: userID}
		for _, item := range items {
			product, err := products.Get(ctx, item.ProductID, store.ForUpdate())
			if err != nil {
				return fmt.Errorf("failed to look up product %d: %w", item.ProductID, err)
			}
			if product == nil || !product.IsActive {
				return fmt.Errorf("product %d: %w", item.ProductID, ErrProductUnavailable)
			}

			remaining := product.Quantity - item.Quantity
			need := item.Quantity
			updated, err := products.Update(ctx, item.ProductID,
				domain.ProductPatch{Quantity: &remaining},
				func(p *domain.Product) bool { return p.IsActive && p.Quantity >= need })
			if err != nil {
				return fmt.Errorf("failed to reserve stock for product %d: %w", item.ProductID, err)
			}
			if updated == nil {
				return fmt.Errorf("product %d: %w", item.ProductID, ErrOutOfStock)
			}

			order.Items = append(order.Items, domain.OrderItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: product.FullPrice,
			})
			order.Total += product.FullPrice * int64(item.Quantity)
		}

		placed, err = orders.Create(ctx, order)
		if err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		if err := carts.DeleteAllByUser(ctx, userID); err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("order placed",
		"order_id", placed.ID, "user_id", userID, "total", placed.Total)
	return placed, nil
}

// Get returns the user's order with its items, or (nil, nil) when the
// order is absent or belongs to another user.
func (s *OrderService) Get(ctx context.Context, userID, orderID int64) (*domain.Order, error) {
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.UserID != userID {
		return nil, nil
	}
	return order, nil
}

// ListByUser returns the user's orders, newest first.
func (s *OrderService) ListByUser(ctx context.Context, userID int64, page store.Page) ([]domain.Order, error) {
	return s.orders.ListByUser(ctx, userID, page)
}
