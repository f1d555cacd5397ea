package store

import (
	"context"
	"database/sql"

	"github.com/calebhs/storefront-api/internal/domain"
)

// UserStore defines the persistence contract for users.
//
// Email uniqueness is enforced at Create. The entity-specific lookups
// return (nil, nil) when no user matches, mirroring Get.
type UserStore interface {
	Creator[domain.User]
	Getter[domain.User, int64]
	Updater[domain.User, int64, domain.UserPatch]
	Deleter[int64]

	// GetByEmail looks a user up by email address.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByIdentityProviderID looks a user up by the id assigned by an
	// external identity provider.
	GetByIdentityProviderID(ctx context.Context, idpID string) (*domain.User, error)

	// WithTx returns a UserStore bound to the given transaction, so
	// multiple operations can share one unit of work.
	WithTx(tx *sql.Tx) UserStore
}
