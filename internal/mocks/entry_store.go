package mocks

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dreis/minhasfinancas-api/internal/domain"
	"github.com/dreis/minhasfinancas-api/internal/store"
	"github.com/google/uuid"
)

// MockEntryStore implements store.EntryStore for testing with an in-memory map.
type MockEntryStore struct {
	SaveFn          func(ctx context.Context, entry *domain.Entry) (*domain.Entry, error)
	GetByIDFn       func(ctx context.Context, id uuid.UUID) (*domain.Entry, error)
	DeleteFn        func(ctx context.Context, id uuid.UUID) error
	FindByExampleFn func(ctx context.Context, filter store.EntryFilter) ([]*domain.Entry, error)

	Entries map[uuid.UUID]*domain.Entry

	mu sync.Mutex
}

// NewMockEntryStore creates a new mock store with initialized defaults
func NewMockEntryStore() *MockEntryStore {
	return &MockEntryStore{Entries: make(map[uuid.UUID]*domain.Entry)}
}

// Save implements the EntryStore interface
func (m *MockEntryStore) Save(ctx context.Context, entry *domain.Entry) (*domain.Entry, error) {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, entry)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	saved := *entry
	if !saved.HasIdentity() {
		saved.ID = uuid.New()
		saved.CreatedAt = time.Now().UTC()
	} else {
		existing, ok := m.Entries[saved.ID]
		if !ok {
			return nil, store.ErrEntryNotFound
		}
		saved.CreatedAt = existing.CreatedAt
	}
	m.Entries[saved.ID] = &saved

	out := saved
	return &out, nil
}

// GetByID implements the EntryStore interface
func (m *MockEntryStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Entry, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.Entries[id]
	if !ok {
		return nil, store.ErrEntryNotFound
	}
	out := *e
	return &out, nil
}

// Delete implements the EntryStore interface
func (m *MockEntryStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Entries[id]; !ok {
		return store.ErrEntryNotFound
	}
	delete(m.Entries, id)
	return nil
}

// FindByExample implements the EntryStore interface
func (m *MockEntryStore) FindByExample(ctx context.Context, f store.EntryFilter) ([]*domain.Entry, error) {
	if m.FindByExampleFn != nil {
		return m.FindByExampleFn(ctx, f)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]*domain.Entry, 0)
	for _, e := range m.Entries {
		if MatchesFilter(e, f) {
			out := *e
			result = append(result, &out)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Year != result[j].Year {
			return result[i].Year < result[j].Year
		}
		if result[i].Month != result[j].Month {
			return result[i].Month < result[j].Month
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// WithTx returns the same mock.
func (m *MockEntryStore) WithTx(tx *sql.Tx) store.EntryStore {
	return m
}

// MatchesFilter applies query-by-example semantics to a single entry.
func MatchesFilter(e *domain.Entry, f store.EntryFilter) bool {
	if f.Description != "" &&
		!strings.Contains(strings.ToLower(e.Description), strings.ToLower(f.Description)) {
		return false
	}
	if f.Month != 0 && e.Month != f.Month {
		return false
	}
	if f.Year != 0 && e.Year != f.Year {
		return false
	}
	if f.Type != "" && e.Type != f.Type {
		return false
	}
	if f.Status != "" && e.Status != f.Status {
		return false
	}
	if f.UserID != uuid.Nil && e.UserID != f.UserID {
		return false
	}
	return true
}
