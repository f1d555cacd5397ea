package store

import (
	"context"
	"database/sql"

	"github.com/calebhs/storefront-api/internal/domain"
)

// TokenStore persists single-row-per-user credentials. Refresh and recovery
// tokens share this contract with independent tables behind it.
type TokenStore interface {
	// Upsert stores token as the user's single live credential,
	// atomically replacing any prior value.
	Upsert(ctx context.Context, userID int64, token string) error

	// Get returns the user's stored credential row, or (nil, nil) when
	// the user has none.
	Get(ctx context.Context, userID int64) (*domain.AuthToken, error)

	// Delete revokes the user's stored credential. Deleting when no row
	// exists is a no-op.
	Delete(ctx context.Context, userID int64) error

	// WithTx returns a TokenStore bound to the given transaction.
	WithTx(tx *sql.Tx) TokenStore
}
