package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenStoreUpsertReplacesPriorRow(t *testing.T) {
	db, mock := newMock(t)
	s := NewRefreshTokenStore(db)

	mock.ExpectExec(`INSERT INTO refresh_tokens \(user_id, token, created_at\) VALUES \(\$1, \$2, now\(\)\) ON CONFLICT \(user_id\) DO UPDATE SET token = EXCLUDED.token, created_at = EXCLUDED.created_at`).
		WithArgs(int64(7), "tok-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Upsert(context.Background(), 7, "tok-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenStoreGet(t *testing.T) {
	db, mock := newMock(t)
	s := NewRefreshTokenStore(db)

	now := time.Now()
	mock.ExpectQuery(`SELECT user_id, token, created_at FROM refresh_tokens WHERE user_id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "token", "created_at"}).
			AddRow(int64(7), "tok-1", now))

	token, err := s.Get(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, token)
	assert.Equal(t, "tok-1", token.Token)
}

func TestTokenStoreGetAbsent(t *testing.T) {
	db, mock := newMock(t)
	s := NewRefreshTokenStore(db)

	mock.ExpectQuery(`SELECT user_id, token, created_at FROM refresh_tokens WHERE user_id = \$1`).
		WithArgs(int64(7)).
		WillReturnError(sql.ErrNoRows)

	token, err := s.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Nil(t, token)
}

func TestTokenStoreDeleteMissingIsNoop(t *testing.T) {
	db, mock := newMock(t)
	s := NewRecoveryTokenStore(db)

	mock.ExpectExec(`DELETE FROM recovery_tokens WHERE user_id = \$1`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, s.Delete(context.Background(), 7))
}

func TestTokenStoresUseIndependentTables(t *testing.T) {
	db, mock := newMock(t)
	refresh := NewRefreshTokenStore(db)
	recovery := NewRecoveryTokenStore(db)

	mock.ExpectExec(`INSERT INTO refresh_tokens`).
		WithArgs(int64(7), "r-tok").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO recovery_tokens`).
		WithArgs(int64(7), "c-tok").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, refresh.Upsert(context.Background(), 7, "r-tok"))
	require.NoError(t, recovery.Upsert(context.Background(), 7, "c-tok"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
