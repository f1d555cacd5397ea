package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/calebhs/storefront-api/internal/domain"
	"github.com/calebhs/storefront-api/internal/store"
)

// TokenStore implements store.TokenStore over one of the per-user token
// tables. Refresh and recovery tokens get separate instances with
// independent tables and identical semantics.
type TokenStore struct {
	db    store.DBTX
	table string
}

var _ store.TokenStore = (*TokenStore)(nil)

// NewRefreshTokenStore creates the TokenStore for refresh tokens.
func NewRefreshTokenStore(db store.DBTX) *TokenStore {
	return &TokenStore{db: db, table: "refresh_tokens"}
}

// NewRecoveryTokenStore creates the TokenStore for recovery tokens.
func NewRecoveryTokenStore(db store.DBTX) *TokenStore {
	return &TokenStore{db: db, table: "recovery_tokens"}
}

// Upsert stores token as the user's single live credential. user_id is the
// table's primary key, so the insert atomically replaces any prior row.
func (s *TokenStore) Upsert(ctx context.Context, userID int64, token string) error {
	query := `
		INSERT INTO ` + s.table + ` (user_id, token, created_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id)
		DO UPDATE SET token = EXCLUDED.token, created_at = EXCLUDED.created_at
	`
	if _, err := s.db.ExecContext(ctx, query, userID, token); err != nil {
		return MapError(err, s.table)
	}
	return nil
}

// Get returns the user's credential row, or (nil, nil) when none exists.
func (s *TokenStore) Get(ctx context.Context, userID int64) (*domain.AuthToken, error) {
	query := `SELECT user_id, token, created_at FROM ` + s.table + ` WHERE user_id = $1`

	var t domain.AuthToken
	err := s.db.QueryRowContext(ctx, query, userID).Scan(&t.UserID, &t.Token, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, MapError(err, s.table)
	}
	return &t, nil
}

// Delete revokes the user's credential. Deleting a missing row is a no-op.
func (s *TokenStore) Delete(ctx context.Context, userID int64) error {
	query := `DELETE FROM ` + s.table + ` WHERE user_id = $1`
	if _, err := s.db.ExecContext(ctx, query, userID); err != nil {
		return MapError(err, s.table)
	}
	return nil
}

// WithTx returns a TokenStore that runs inside the given transaction.
func (s *TokenStore) WithTx(tx *sql.Tx) store.TokenStore {
	return &TokenStore{db: tx, table: s.table}
}
