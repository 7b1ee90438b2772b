package mocks

import (
	"context"
	"database/sql"

	"github.com/dreis/minhasfinancas-api/internal/domain"
	"github.com/dreis/minhasfinancas-api/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// TestifyMockUserStore is a mock of store.UserStore interface for use with testify/mock
type TestifyMockUserStore struct {
	mock.Mock
}

// Save is a mock implementation of store.UserStore.Save
func (m *TestifyMockUserStore) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*domain.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetByID is a mock implementation of store.UserStore.GetByID
func (m *TestifyMockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*domain.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

// FindByEmail is a mock implementation of store.UserStore.FindByEmail
func (m *TestifyMockUserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*domain.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

// ExistsByEmail is a mock implementation of store.UserStore.ExistsByEmail
func (m *TestifyMockUserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// WithTx returns the same mock so expectations carry into transactions.
func (m *TestifyMockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}

// TestifyMockEntryStore is a mock of store.EntryStore interface for use with testify/mock
type TestifyMockEntryStore struct {
	mock.Mock
}

// Save is a mock implementation of store.EntryStore.Save
func (m *TestifyMockEntryStore) Save(ctx context.Context, entry *domain.Entry) (*domain.Entry, error) {
	args := m.Called(ctx, entry)
	if e, ok := args.Get(0).(*domain.Entry); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetByID is a mock implementation of store.EntryStore.GetByID
func (m *TestifyMockEntryStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Entry, error) {
	args := m.Called(ctx, id)
	if e, ok := args.Get(0).(*domain.Entry); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

// Delete is a mock implementation of store.EntryStore.Delete
func (m *TestifyMockEntryStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// FindByExample is a mock implementation of store.EntryStore.FindByExample
func (m *TestifyMockEntryStore) FindByExample(
	ctx context.Context,
	filter store.EntryFilter,
) ([]*domain.Entry, error) {
	args := m.Called(ctx, filter)
	if e, ok := args.Get(0).([]*domain.Entry); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

// WithTx returns the same mock so expectations carry into transactions.
func (m *TestifyMockEntryStore) WithTx(tx *sql.Tx) store.EntryStore {
	return m
}
