package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/calebhs/storefront-api/internal/domain"
	"github.com/calebhs/storefront-api/internal/store"
)

// CartItemStore implements store.CartItemStore against PostgreSQL. Cart
// items are keyed by the composite (user_id, product_id) pair.
type CartItemStore struct {
	crud[domain.CartItem, domain.CartKey]
}

var _ store.CartItemStore = (*CartItemStore)(nil)

var cartItemColumns = []string{"user_id", "product_id", "quantity", "created_at"}

// NewCartItemStore creates a CartItemStore bound to the given connection or
// transaction.
func NewCartItemStore(db store.DBTX) *CartItemStore {
	return &CartItemStore{crud: crud[domain.CartItem, domain.CartKey]{
		db:     db,
		table:  "cart_items",
		entity: "CartItem",
		cols:   cartItemColumns,
		keyWhere: func(key domain.CartKey, argOffset int) (string, []any) {
			clause := fmt.Sprintf("user_id = $%d AND product_id = $%d", argOffset+1, argOffset+2)
			return clause, []any{key.UserID, key.ProductID}
		},
		scanRow: scanCartItem,
	}}
}

func scanCartItem(s rowScanner) (*domain.CartItem, error) {
	var i domain.CartItem
	if err := s.Scan(&i.UserID, &i.ProductID, &i.Quantity, &i.CreatedAt); err != nil {
		return nil, err
	}
	return &i, nil
}

// Create inserts the cart item. A missing user or product fails with a
// DependentEntityError from the foreign keys; a duplicate (user, product)
// pair fails with store.ErrAlreadyExists.
func (s *CartItemStore) Create(ctx context.Context, item *domain.CartItem) (*domain.CartItem, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO cart_items (user_id, product_id, quantity)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`
	created := *item
	err := s.db.QueryRowContext(ctx, query, item.UserID, item.ProductID, item.Quantity).
		Scan(&created.CreatedAt)
	if err != nil {
		return nil, MapError(err, s.entity)
	}
	return &created, nil
}

// Upsert sets the quantity for the item's (user, product) pair, inserting
// the row when absent. One statement, so concurrent puts for the same
// pair never conflict; last write wins.
func (s *CartItemStore) Upsert(ctx context.Context, item *domain.CartItem) (*domain.CartItem, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO cart_items (user_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, product_id) DO UPDATE SET quantity = EXCLUDED.quantity
		RETURNING created_at
	`
	upserted := *item
	err := s.db.QueryRowContext(ctx, query, item.UserID, item.ProductID, item.Quantity).
		Scan(&upserted.CreatedAt)
	if err != nil {
		return nil, MapError(err, s.entity)
	}
	return &upserted, nil
}

// Update applies the patch to the item identified by the composite key,
// gated by pred.
func (s *CartItemStore) Update(ctx context.Context, key domain.CartKey, patch domain.CartItemPatch, pred store.Predicate[domain.CartItem]) (*domain.CartItem, error) {
	var set []assign
	if patch.Quantity != nil {
		set = append(set, assign{col: "quantity", val: *patch.Quantity})
	}
	return s.update(ctx, key, set, pred)
}

// ListByUser returns every cart item owned by userID, ordered by product.
func (s *CartItemStore) ListByUser(ctx context.Context, userID int64, opts ...store.GetOption) ([]domain.CartItem, error) {
	o := store.ApplyGetOptions(opts)
	return s.selectAll(ctx, s.db, "user_id = $1", []any{userID}, "product_id", store.Page{}, o.ForUpdate)
}

// DeleteAllByUser removes every cart item owned by userID in one statement.
func (s *CartItemStore) DeleteAllByUser(ctx context.Context, userID int64) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM cart_items WHERE user_id = $1", userID); err != nil {
		return MapError(err, s.entity)
	}
	return nil
}

// WithTx returns a CartItemStore that runs inside the given transaction.
func (s *CartItemStore) WithTx(tx *sql.Tx) store.CartItemStore {
	return NewCartItemStore(tx)
}
