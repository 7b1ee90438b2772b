// Package mocks holds test doubles for the store, auth and event interfaces.
//
// MockUserStore and MockEntryStore are in-memory stores that honour the
// query-by-example contract, so handler and service tests can run against
// real behaviour. Their *Fn fields override single methods. The
// TestifyMock* stores record calls for tests that assert on exact
// interactions. MockPasswordVerifier, MockJWTService, MockTxRunner and
// MockEventEmitter are function-field fakes.
//
//	entries := mocks.NewMockEntryStore()
//	entries.SaveFn = func(ctx context.Context, e *domain.Entry) (*domain.Entry, error) {
//	    return nil, store.ErrInvalidEntity
//	}
package mocks
