package store

import (
	"context"
	"database/sql"

	"github.com/calebhs/storefront-api/internal/domain"
)

// CartItemStore defines the persistence contract for cart items, keyed by
// the composite (user_id, product_id) pair.
//
// The per-user bulk operations are single statements: all rows owned by the
// user are affected or none.
type CartItemStore interface {
	Creator[domain.CartItem]
	Getter[domain.CartItem, domain.CartKey]
	Updater[domain.CartItem, domain.CartKey, domain.CartItemPatch]
	Deleter[domain.CartKey]

	// Upsert sets the quantity for the item's (user, product) pair,
	// inserting the row when absent, in one atomic statement. Concurrent
	// upserts of the same pair cannot conflict; last write wins.
	Upsert(ctx context.Context, item *domain.CartItem) (*domain.CartItem, error)

	// ListByUser returns every cart item owned by the user.
	ListByUser(ctx context.Context, userID int64, opts ...GetOption) ([]domain.CartItem, error)

	// DeleteAllByUser removes every cart item owned by the user in one
	// statement. Rows owned by other users are untouched.
	DeleteAllByUser(ctx context.Context, userID int64) error

	// WithTx returns a CartItemStore bound to the given transaction.
	WithTx(tx *sql.Tx) CartItemStore
}
