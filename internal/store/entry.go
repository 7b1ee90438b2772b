package store

import (
	"context"
	"database/sql"

	"github.com/dreis/minhasfinancas-api/internal/domain"
	"github.com/google/uuid"
)

// EntryFilter is a query-by-example probe. Zero-valued fields are
// unconstrained. Description matches as a case-insensitive substring; every
// other populated field must match exactly.
type EntryFilter struct {
	Description string
	Month       int
	Year        int
	Type        domain.EntryType
	Status      domain.EntryStatus
	UserID      uuid.UUID
}

// FilterFromEntry builds a probe from the populated fields of an entry.
// Value and ID never participate in matching.
func FilterFromEntry(e *domain.Entry) EntryFilter {
	return EntryFilter{
		Description: e.Description,
		Month:       e.Month,
		Year:        e.Year,
		Type:        e.Type,
		Status:      e.Status,
		UserID:      e.UserID,
	}
}

// EntryStore defines the interface for financial entry persistence.
type EntryStore interface {
	// Save inserts the entry when it has no ID (assigning one) and updates it
	// otherwise. Returns the persisted entry.
	// Returns ErrEntryNotFound when updating an entry that does not exist.
	Save(ctx context.Context, entry *domain.Entry) (*domain.Entry, error)

	// GetByID retrieves an entry by its unique ID.
	// Returns ErrEntryNotFound if the entry does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Entry, error)

	// Delete removes an entry by its ID.
	// Returns ErrEntryNotFound if the entry does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByExample returns every entry matching the filter, ordered by
	// year, month and creation time. Returns an empty slice when nothing matches.
	FindByExample(ctx context.Context, filter EntryFilter) ([]*domain.Entry, error)

	// WithTx returns a new EntryStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) EntryStore
}
