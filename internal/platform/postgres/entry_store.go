package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dreis/minhasfinancas-api/internal/domain"
	"github.com/dreis/minhasfinancas-api/internal/platform/logger"
	"github.com/dreis/minhasfinancas-api/internal/store"
	"github.com/google/uuid"
)

const entryColumns = "id, user_id, description, month, year, value, type, status, created_at"

// PostgresEntryStore implements the store.EntryStore interface
// using a PostgreSQL database as the storage backend.
type PostgresEntryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresEntryStore creates a new PostgreSQL implementation of the EntryStore interface.
func NewPostgresEntryStore(db store.DBTX, logger *slog.Logger) *PostgresEntryStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresEntryStore{
		db:     db,
		logger: logger.With(slog.String("component", "entry_store")),
	}
}

var _ store.EntryStore = (*PostgresEntryStore)(nil)

// WithTx implements store.EntryStore.WithTx
func (s *PostgresEntryStore) WithTx(tx *sql.Tx) store.EntryStore {
	if tx == nil {
		return s
	}
	return &PostgresEntryStore{db: tx, logger: s.logger}
}

// Save implements store.EntryStore.Save.
// Entries without an ID are inserted with a fresh one; others are updated in place.
func (s *PostgresEntryStore) Save(ctx context.Context, entry *domain.Entry) (*domain.Entry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	saved := *entry

	var err error
	if !saved.HasIdentity() {
		saved.ID = uuid.New()
		err = s.db.QueryRowContext(ctx, `
			INSERT INTO entries (id, user_id, description, month, year, value, type, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING created_at
		`, saved.ID, saved.UserID, saved.Description, saved.Month, saved.Year,
			saved.Value, string(saved.Type), string(saved.Status)).Scan(&saved.CreatedAt)
	} else {
		err = s.db.QueryRowContext(ctx, `
			UPDATE entries
			SET user_id = $2, description = $3, month = $4, year = $5,
				value = $6, type = $7, status = $8
			WHERE id = $1
			RETURNING created_at
		`, saved.ID, saved.UserID, saved.Description, saved.Month, saved.Year,
			saved.Value, string(saved.Type), string(saved.Status)).Scan(&saved.CreatedAt)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrEntryNotFound
		}
	}
	if err != nil {
		log.Error("failed to save entry",
			slog.String("error", err.Error()),
			slog.String("entry_id", saved.ID.String()))
		return nil, MapError(err)
	}

	return &saved, nil
}

// GetByID implements store.EntryStore.GetByID
func (s *PostgresEntryStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Entry, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+entryColumns+" FROM entries WHERE id = $1", id)

	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrEntryNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get entry",
			slog.String("error", err.Error()),
			slog.String("entry_id", id.String()))
		return nil, MapError(err)
	}
	return entry, nil
}

// Delete implements store.EntryStore.Delete
func (s *PostgresEntryStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM entries WHERE id = $1", id)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to delete entry",
			slog.String("error", err.Error()),
			slog.String("entry_id", id.String()))
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrEntryNotFound)
}

// FindByExample implements store.EntryStore.FindByExample
func (s *PostgresEntryStore) FindByExample(
	ctx context.Context,
	filter store.EntryFilter,
) ([]*domain.Entry, error) {
	query, args := buildFindQuery(filter)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to search entries",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	entries := make([]*domain.Entry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}

	return entries, nil
}

// buildFindQuery turns a filter into a SELECT with positional arguments.
func buildFindQuery(f store.EntryFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.Description != "" {
		add(`description ILIKE '%%' || $%d || '%%' ESCAPE '\'`, escapeLike(f.Description))
	}
	if f.Month != 0 {
		add("month = $%d", f.Month)
	}
	if f.Year != 0 {
		add("year = $%d", f.Year)
	}
	if f.Type != "" {
		add("type = $%d", string(f.Type))
	}
	if f.Status != "" {
		add("status = $%d", string(f.Status))
	}
	if f.UserID != uuid.Nil {
		add("user_id = $%d", f.UserID)
	}

	query := "SELECT " + entryColumns + " FROM entries"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY year, month, created_at"
	return query, args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralizes LIKE wildcards so user input matches literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*domain.Entry, error) {
	var (
		e         domain.Entry
		entryType string
		status    string
	)
	err := row.Scan(&e.ID, &e.UserID, &e.Description, &e.Month, &e.Year,
		&e.Value, &entryType, &status, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	e.Type = domain.EntryType(entryType)
	e.Status = domain.EntryStatus(status)
	return &e, nil
}
