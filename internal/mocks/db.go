package mocks

import (
	"context"
	"database/sql"
	"sync"

	"github.com/dreis/minhasfinancas-api/internal/store"
)

// MockTxRunner implements store.TxRunner without a database. By default it
// calls fn with a nil transaction, so stores must tolerate WithTx(nil).
type MockTxRunner struct {
	RunInTxFn func(ctx context.Context, fn store.TxFn) error

	mu    sync.Mutex
	calls int
}

// RunInTx implements store.TxRunner.
func (m *MockTxRunner) RunInTx(ctx context.Context, fn store.TxFn) error {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.RunInTxFn != nil {
		return m.RunInTxFn(ctx, fn)
	}
	return fn(ctx, (*sql.Tx)(nil))
}

// Calls returns how many units of work were run.
func (m *MockTxRunner) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
