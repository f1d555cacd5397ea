package store

import (
	"context"
	"database/sql"

	"github.com/calebhs/storefront-api/internal/domain"
)

// OrderStore defines the persistence contract for orders and their line
// items. Orders are written once at checkout and never patched, so the
// update capability is deliberately absent.
type OrderStore interface {
	// Create inserts the order and all its items. The caller is expected
	// to run it inside the checkout transaction.
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)

	// Get returns the order with its items, or (nil, nil) when absent.
	Get(ctx context.Context, id int64) (*domain.Order, error)

	// ListByUser returns the user's orders, newest first, without items.
	ListByUser(ctx context.Context, userID int64, page Page) ([]domain.Order, error)

	// WithTx returns an OrderStore bound to the given transaction.
	WithTx(tx *sql.Tx) OrderStore
}
