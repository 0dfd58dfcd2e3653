// Package mock provides an in-memory storage.BulkImporter for tests.
package mock

import (
	"context"
	"sync"

	"github.com/tenantfirstaid/lawcorpus/storage"
)

// Call records one ImportDocuments invocation.
type Call struct {
	Mode      storage.ReconciliationMode
	Documents []storage.Document
}

// MockImporter is a test double for storage.BulkImporter.
type MockImporter struct {
	// ImportFunc replaces the default behavior when set. The default reports every
	// document as created.
	ImportFunc func(ctx context.Context, call int, docs []storage.Document) (*storage.ImportResult, error)

	// TargetName is returned by Target.
	TargetName string

	mu     sync.Mutex
	calls  []Call
	closed bool
}

var _ storage.BulkImporter = (*MockImporter)(nil)

// NewMockImporter creates a MockImporter.
func NewMockImporter() *MockImporter {
	return &MockImporter{TargetName: "mock"}
}

// ImportDocuments implements storage.BulkImporter.
// call passed to ImportFunc is 1-based.
func (m *MockImporter) ImportDocuments(ctx context.Context, mode storage.ReconciliationMode, docs []storage.Document) (*storage.ImportResult, error) {
	m.mu.Lock()
	m.calls = append(m.calls, Call{Mode: mode, Documents: append([]storage.Document(nil), docs...)})
	n := len(m.calls)
	fn := m.ImportFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, n, docs)
	}
	return &storage.ImportResult{Created: len(docs)}, nil
}

// Target implements storage.BulkImporter.
func (m *MockImporter) Target() string {
	return m.TargetName
}

// Close implements storage.BulkImporter.
func (m *MockImporter) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Calls returns every recorded invocation in order.
func (m *MockImporter) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}

// CallCount returns the number of ImportDocuments calls.
func (m *MockImporter) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Closed reports whether Close was called.
func (m *MockImporter) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
