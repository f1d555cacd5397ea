package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/calebhs/storefront-api/internal/store"
)

// PostgreSQL error codes.
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
)

// uniqueRuleDescriptions maps constraint names from the schema to the
// human-readable description carried by store.ErrAlreadyExists.
var uniqueRuleDescriptions = map[string]string{
	"users_email_key":      "user with the given email already exists",
	"cart_items_pkey":      "cart item for this user and product already exists",
	"refresh_tokens_pkey":  "refresh token for this user already exists",
	"recovery_tokens_pkey": "recovery token for this user already exists",
}

// MapError translates a driver error into the domain error taxonomy.
// entity names the type the failed operation targeted; it appears in the
// dependent-entity message.
func MapError(err error, entity string) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			desc, ok := uniqueRuleDescriptions[pgErr.ConstraintName]
			if !ok {
				desc = fmt.Sprintf("duplicate value for constraint %s", pgErr.ConstraintName)
			}
			return fmt.Errorf("%w: %s", store.ErrAlreadyExists, desc)
		case foreignKeyViolationCode:
			return &store.DependentEntityError{
				Entity:   entity,
				Relation: pgErr.TableName,
				Err:      err,
			}
		}
	}

	return fmt.Errorf("%s store: %w", entity, err)
}

// IsUniqueViolation reports whether err is a unique-constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// IsForeignKeyViolation reports whether err is a foreign-key violation.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode
}
