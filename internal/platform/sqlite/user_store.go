package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dreis/minhasfinancas-api/internal/domain"
	"github.com/dreis/minhasfinancas-api/internal/platform/logger"
	"github.com/dreis/minhasfinancas-api/internal/store"
	"github.com/google/uuid"
)

// SQLiteUserStore implements store.UserStore on SQLite.
type SQLiteUserStore struct {
	db        store.DBTX
	writeLock *sync.Mutex
	logger    *slog.Logger
}

// NewSQLiteUserStore creates a user store on db. Stores sharing a database
// should share writeLock; a nil lock gets a private one.
func NewSQLiteUserStore(db store.DBTX, writeLock *sync.Mutex, logger *slog.Logger) *SQLiteUserStore {
	if writeLock == nil {
		writeLock = &sync.Mutex{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SQLiteUserStore{
		db:        db,
		writeLock: writeLock,
		logger:    logger.With(slog.String("component", "user_store")),
	}
}

var _ store.UserStore = (*SQLiteUserStore)(nil)

// WithTx implements store.UserStore.WithTx.
// Transactions are opened with BEGIN IMMEDIATE and already hold the
// database write lock, so the returned store skips the mutex.
func (s *SQLiteUserStore) WithTx(tx *sql.Tx) store.UserStore {
	if tx == nil {
		return s
	}
	return &SQLiteUserStore{db: tx, logger: s.logger}
}

func (s *SQLiteUserStore) lock() func() {
	if s.writeLock == nil {
		return func() {}
	}
	s.writeLock.Lock()
	return s.writeLock.Unlock
}

// Save implements store.UserStore.Save
func (s *SQLiteUserStore) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during save", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	saved := *user
	saved.ID = uuid.New()
	saved.Password = ""
	saved.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	unlock := s.lock()
	defer unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, hashed_password, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, saved.ID.String(), saved.Name, saved.Email, saved.HashedPassword, saved.CreatedAt.UnixMilli())
	if err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrEmailExists) {
			log.Debug("email already registered")
		} else {
			log.Error("failed to insert user", slog.String("error", err.Error()))
		}
		return nil, mapped
	}

	return &saved, nil
}

// GetByID implements store.UserStore.GetByID
func (s *SQLiteUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.getOne(ctx, `
		SELECT id, name, email, hashed_password, created_at
		FROM users WHERE id = ?
	`, id.String())
}

// FindByEmail implements store.UserStore.FindByEmail
func (s *SQLiteUserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getOne(ctx, `
		SELECT id, name, email, hashed_password, created_at
		FROM users WHERE email = ?
	`, email)
}

// ExistsByEmail implements store.UserStore.ExistsByEmail
func (s *SQLiteUserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = ?)`, email).Scan(&exists)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to check user existence",
			slog.String("error", err.Error()))
		return false, MapError(err)
	}
	return exists, nil
}

func (s *SQLiteUserStore) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var (
		u       domain.User
		created int64
	)
	err := s.db.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Name, &u.Email, &u.HashedPassword, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to query user",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	u.CreatedAt = time.UnixMilli(created).UTC()
	return &u, nil
}
