package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/calebhs/storefront-api/internal/domain"
	"github.com/calebhs/storefront-api/internal/store"
)

// UserStore implements store.UserStore against PostgreSQL.
type UserStore struct {
	crud[domain.User, int64]
}

var _ store.UserStore = (*UserStore)(nil)

var userColumns = []string{
	"id", "email", "name", "hashed_password", "identity_provider_id",
	"created_at", "updated_at",
}

// NewUserStore creates a UserStore bound to the given connection or
// transaction.
func NewUserStore(db store.DBTX) *UserStore {
	return &UserStore{crud: crud[domain.User, int64]{
		db:       db,
		table:    "users",
		entity:   "User",
		cols:     userColumns,
		keyWhere: singleKeyWhere("id"),
		scanRow:  scanUser,
	}}
}

func scanUser(s rowScanner) (*domain.User, error) {
	var (
		u        domain.User
		password sql.NullString
		idpID    sql.NullString
	)
	err := s.Scan(&u.ID, &u.Email, &u.Name, &password, &idpID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.HashedPassword = password.String
	u.IdentityProviderID = idpID.String
	return &u, nil
}

// Create inserts the user and populates its generated fields. A duplicate
// email fails with store.ErrAlreadyExists.
func (s *UserStore) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := user.Validate(); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO users (email, name, hashed_password, identity_provider_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	created := *user
	err := s.db.QueryRowContext(ctx, query,
		user.Email, user.Name,
		nullString(user.HashedPassword), nullString(user.IdentityProviderID),
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, MapError(err, s.entity)
	}
	return &created, nil
}

// Update applies the patch to the user identified by id, gated by pred.
func (s *UserStore) Update(ctx context.Context, id int64, patch domain.UserPatch, pred store.Predicate[domain.User]) (*domain.User, error) {
	var set []assign
	if patch.Name != nil {
		set = append(set, assign{col: "name", val: *patch.Name})
	}
	if patch.HashedPassword != nil {
		set = append(set, assign{col: "hashed_password", val: nullString(*patch.HashedPassword)})
	}
	if len(set) > 0 {
		set = append(set, assign{col: "updated_at", val: time.Now().UTC()})
	}
	return s.update(ctx, id, set, pred)
}

// GetByEmail looks a user up by email, returning (nil, nil) when absent.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getByColumn(ctx, "email", email)
}

// GetByIdentityProviderID looks a user up by external-provider id,
// returning (nil, nil) when absent.
func (s *UserStore) GetByIdentityProviderID(ctx context.Context, idpID string) (*domain.User, error) {
	return s.getByColumn(ctx, "identity_provider_id", idpID)
}

func (s *UserStore) getByColumn(ctx context.Context, col, value string) (*domain.User, error) {
	query := `
		SELECT id, email, name, hashed_password, identity_provider_id, created_at, updated_at
		FROM users
		WHERE ` + col + ` = $1
	`
	user, err := scanUser(s.db.QueryRowContext(ctx, query, value))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, MapError(err, s.entity)
	}
	return user, nil
}

// WithTx returns a UserStore that runs inside the given transaction.
func (s *UserStore) WithTx(tx *sql.Tx) store.UserStore {
	return NewUserStore(tx)
}

// nullString maps the empty string to SQL NULL.
func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}
