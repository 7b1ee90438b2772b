package store

import (
	"context"
	"database/sql"

	"github.com/dreis/minhasfinancas-api/internal/domain"
	"github.com/google/uuid"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Save inserts a new user, assigning its ID and creation time.
	// The user must carry a HashedPassword; the plaintext Password is never stored.
	// Returns ErrEmailExists if the email is already taken.
	Save(ctx context.Context, user *domain.User) (*domain.User, error)

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// FindByEmail retrieves a user by email address.
	// Returns ErrUserNotFound if the user does not exist.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// ExistsByEmail reports whether a user with the email is stored.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// WithTx returns a new UserStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) UserStore
}
