package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/dreis/minhasfinancas-api/internal/domain"
	"github.com/dreis/minhasfinancas-api/internal/platform/logger"
	"github.com/dreis/minhasfinancas-api/internal/store"
	"github.com/google/uuid"
)

const entryColumns = "id, user_id, description, month, year, value, type, status, created_at"

// SQLiteEntryStore implements store.EntryStore on SQLite.
type SQLiteEntryStore struct {
	db        store.DBTX
	writeLock *sync.Mutex
	logger    *slog.Logger
}

// NewSQLiteEntryStore creates an entry store on db. See NewSQLiteUserStore
// for writeLock.
func NewSQLiteEntryStore(db store.DBTX, writeLock *sync.Mutex, logger *slog.Logger) *SQLiteEntryStore {
	if writeLock == nil {
		writeLock = &sync.Mutex{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SQLiteEntryStore{
		db:        db,
		writeLock: writeLock,
		logger:    logger.With(slog.String("component", "entry_store")),
	}
}

var _ store.EntryStore = (*SQLiteEntryStore)(nil)

// WithTx implements store.EntryStore.WithTx
func (s *SQLiteEntryStore) WithTx(tx *sql.Tx) store.EntryStore {
	if tx == nil {
		return s
	}
	return &SQLiteEntryStore{db: tx, logger: s.logger}
}

func (s *SQLiteEntryStore) lock() func() {
	if s.writeLock == nil {
		return func() {}
	}
	s.writeLock.Lock()
	return s.writeLock.Unlock
}

// Save implements store.EntryStore.Save
func (s *SQLiteEntryStore) Save(ctx context.Context, entry *domain.Entry) (*domain.Entry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	saved := *entry

	unlock := s.lock()
	defer unlock()

	var err error
	if !saved.HasIdentity() {
		saved.ID = uuid.New()
		saved.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO entries (id, user_id, description, month, year, value, type, status, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, saved.ID.String(), saved.UserID.String(), saved.Description, saved.Month, saved.Year,
			saved.Value.String(), string(saved.Type), string(saved.Status), saved.CreatedAt.UnixMilli())
	} else {
		var created int64
		err = s.db.QueryRowContext(ctx, `
			UPDATE entries
			SET user_id = ?, description = ?, month = ?, year = ?,
				value = ?, type = ?, status = ?
			WHERE id = ?
			RETURNING created_at
		`, saved.UserID.String(), saved.Description, saved.Month, saved.Year,
			saved.Value.String(), string(saved.Type), string(saved.Status),
			saved.ID.String()).Scan(&created)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrEntryNotFound
		}
		saved.CreatedAt = time.UnixMilli(created).UTC()
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
func (s *SQLiteEntryStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Entry, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+entryColumns+" FROM entries WHERE id = ?", id.String())

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
func (s *SQLiteEntryStore) Delete(ctx context.Context, id uuid.UUID) error {
	unlock := s.lock()
	defer unlock()

	result, err := s.db.ExecContext(ctx, "DELETE FROM entries WHERE id = ?", id.String())
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to delete entry",
			slog.String("error", err.Error()),
			slog.String("entry_id", id.String()))
		return MapError(err)
	}
	return checkRowsAffected(result, store.ErrEntryNotFound)
}

// FindByExample implements store.EntryStore.FindByExample
func (s *SQLiteEntryStore) FindByExample(
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
	if f.Description != "" {
		conds = append(conds, unicodeLowerFunc+`(description) LIKE '%' || `+unicodeLowerFunc+`(?) || '%' ESCAPE '\'`)
		args = append(args, escapeLike(f.Description))
	}
	if f.Month != 0 {
		conds = append(conds, "month = ?")
		args = append(args, f.Month)
	}
	if f.Year != 0 {
		conds = append(conds, "year = ?")
		args = append(args, f.Year)
	}
	if f.Type != "" {
		conds = append(conds, "type = ?")
		args = append(args, string(f.Type))
	}
	if f.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, string(f.Status))
	}
	if f.UserID != uuid.Nil {
		conds = append(conds, "user_id = ?")
		args = append(args, f.UserID.String())
	}

	query := "SELECT " + entryColumns + " FROM entries"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY year, month, created_at, rowid"
	return query, args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

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
		created   int64
	)
	err := row.Scan(&e.ID, &e.UserID, &e.Description, &e.Month, &e.Year,
		&e.Value, &entryType, &status, &created)
	if err != nil {
		return nil, err
	}
	e.Type = domain.EntryType(entryType)
	e.Status = domain.EntryStatus(status)
	e.CreatedAt = time.UnixMilli(created).UTC()
	return &e, nil
}
