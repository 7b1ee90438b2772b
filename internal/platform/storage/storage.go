// Package storage opens the configured database backend and builds the
// stores on top of it.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dreis/minhasfinancas-api/internal/config"
	"github.com/dreis/minhasfinancas-api/internal/platform/postgres"
	"github.com/dreis/minhasfinancas-api/internal/platform/sqlite"
	"github.com/dreis/minhasfinancas-api/internal/store"
)

// Supported drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Backend bundles an open database with the stores that use it.
type Backend struct {
	DB       *sql.DB
	Users    store.UserStore
	Entries  store.EntryStore
	TxRunner store.TxRunner
}

// Open connects to the database described by cfg, applies pending
// migrations and returns the stores.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*Backend, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.Driver {
	case DriverPostgres:
		db, err := postgres.Open(ctx, cfg.URL)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, db, "up", logger); err != nil {
			_ = db.Close()
			return nil, err
		}
		return &Backend{
			DB:       db,
			Users:    postgres.NewPostgresUserStore(db, logger),
			Entries:  postgres.NewPostgresEntryStore(db, logger),
			TxRunner: store.NewTxRunner(db),
		}, nil

	case DriverSQLite:
		if err := sqlite.Migrate(cfg.URL, logger); err != nil {
			return nil, err
		}
		db, err := sqlite.Open(ctx, cfg.URL)
		if err != nil {
			return nil, err
		}
		writeLock := &sync.Mutex{}
		return &Backend{
			DB:       db,
			Users:    sqlite.NewSQLiteUserStore(db, writeLock, logger),
			Entries:  sqlite.NewSQLiteEntryStore(db, writeLock, logger),
			TxRunner: store.NewTxRunner(db),
		}, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// Close closes the underlying database.
func (b *Backend) Close() error {
	if b == nil || b.DB == nil {
		return nil
	}
	return b.DB.Close()
}
