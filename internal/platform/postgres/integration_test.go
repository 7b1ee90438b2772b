package postgres_test

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/dreis/minhasfinancas-api/internal/domain"
	"github.com/dreis/minhasfinancas-api/internal/platform/postgres"
	"github.com/dreis/minhasfinancas-api/internal/store"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testDatabaseURLEnv names the variable that enables the integration tests.
const testDatabaseURLEnv = "FINANCAS_TEST_DATABASE_URL"

var testDB *sql.DB

// TestMain sets up the database and runs all tests once, rather than for each test.
// Without a database URL only the unit tests in package postgres run.
func TestMain(m *testing.M) {
	dbURL := os.Getenv(testDatabaseURLEnv)
	if dbURL == "" {
		os.Exit(m.Run())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var err error
	testDB, err = postgres.Open(ctx, dbURL)
	if err != nil {
		fmt.Printf("Failed to open database connection: %v\n", err)
		os.Exit(1)
	}

	if err := postgres.Migrate(ctx, testDB, "up", nil); err != nil {
		fmt.Printf("Failed to setup test database schema: %v\n", err)
		os.Exit(1)
	}

	exitCode := m.Run()

	if err := testDB.Close(); err != nil {
		fmt.Printf("Failed to close database connection: %v\n", err)
	}
	os.Exit(exitCode)
}

// withTx runs fn inside a transaction that is always rolled back.
func withTx(t *testing.T, fn func(tx *sql.Tx)) {
	t.Helper()
	if testDB == nil {
		t.Skipf("%s not set", testDatabaseURLEnv)
	}

	tx, err := testDB.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback() }()

	fn(tx)
}

func createUser(t *testing.T, tx *sql.Tx, email string) *domain.User {
	t.Helper()
	users := postgres.NewPostgresUserStore(tx, nil)
	u, err := users.Save(context.Background(), &domain.User{
		Name:           "Usuario",
		Email:          email,
		HashedPassword: "$2a$10$abcdefghijklmnopqrstuv",
	})
	require.NoError(t, err)
	return u
}

func TestPostgresUserStore(t *testing.T) {
	withTx(t, func(tx *sql.Tx) {
		ctx := context.Background()
		users := postgres.NewPostgresUserStore(tx, nil)
		email := fmt.Sprintf("usuario-%s@email.com", uuid.NewString())

		exists, err := users.ExistsByEmail(ctx, email)
		require.NoError(t, err)
		assert.False(t, exists)

		saved := createUser(t, tx, email)
		assert.NotEqual(t, uuid.Nil, saved.ID)
		assert.False(t, saved.CreatedAt.IsZero())

		exists, err = users.ExistsByEmail(ctx, email)
		require.NoError(t, err)
		assert.True(t, exists)

		found, err := users.FindByEmail(ctx, email)
		require.NoError(t, err)
		assert.Equal(t, saved.ID, found.ID)

		_, err = users.FindByEmail(ctx, "ninguem@email.com")
		assert.ErrorIs(t, err, store.ErrUserNotFound)

		_, err = users.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})
}

func TestPostgresUserStore_DuplicateEmail(t *testing.T) {
	withTx(t, func(tx *sql.Tx) {
		email := fmt.Sprintf("dup-%s@email.com", uuid.NewString())
		createUser(t, tx, email)

		_, err := postgres.NewPostgresUserStore(tx, nil).Save(context.Background(), &domain.User{
			Email:          email,
			HashedPassword: "hash",
		})
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})
}

func TestPostgresEntryStore_Lifecycle(t *testing.T) {
	withTx(t, func(tx *sql.Tx) {
		ctx := context.Background()
		owner := createUser(t, tx, fmt.Sprintf("owner-%s@email.com", uuid.NewString()))
		entries := postgres.NewPostgresEntryStore(tx, nil)

		saved, err := entries.Save(ctx, &domain.Entry{
			Description: "Salario de Janeiro",
			Month:       1,
			Year:        2024,
			Value:       decimal.RequireFromString("4500.25"),
			Type:        domain.EntryTypeIncome,
			Status:      domain.EntryStatusPending,
			UserID:      owner.ID,
		})
		require.NoError(t, err)

		saved.Status = domain.EntryStatusConfirmed
		updated, err := entries.Save(ctx, saved)
		require.NoError(t, err)
		assert.Equal(t, domain.EntryStatusConfirmed, updated.Status)

		found, err := entries.FindByExample(ctx, store.EntryFilter{Description: "SALARIO", UserID: owner.ID})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.True(t, decimal.RequireFromString("4500.25").Equal(found[0].Value))

		found, err = entries.FindByExample(ctx, store.EntryFilter{UserID: owner.ID, Month: 2})
		require.NoError(t, err)
		assert.Empty(t, found)

		require.NoError(t, entries.Delete(ctx, saved.ID))
		_, err = entries.GetByID(ctx, saved.ID)
		assert.ErrorIs(t, err, store.ErrEntryNotFound)
	})
}
