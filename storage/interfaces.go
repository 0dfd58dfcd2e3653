package storage

import (
	"context"
	"time"
)

// ReconciliationMode controls how a store treats documents absent from a submission.
type ReconciliationMode int

const (
	// ModeIncremental creates or updates the submitted documents and leaves
	// every other document untouched.
	ModeIncremental ReconciliationMode = iota + 1
)

func (m ReconciliationMode) String() string {
	if m == ModeIncremental {
		return "incremental"
	}
	return "unknown"
}

// MimeTypeText is the content type of section bodies.
const MimeTypeText = "text/plain"

// Metadata is the structured payload stored with each document.
type Metadata struct {
	Title string `json:"title"`
	City  string `json:"city"`
	State string `json:"state"`
}

// Document is one section in the shape a document store accepts.
type Document struct {
	// ID is the sanitized section id.
	ID       string
	Metadata Metadata
	Content  []byte
	MimeType string
}

// ErrorSample is a per-document problem reported by a store.
// DocumentID is empty when the store did not attribute the problem to a document.
type ErrorSample struct {
	DocumentID string
	Message    string
}

// ImportResult summarizes one bulk-import call.
// Stores that do not report counts leave them zero.
type ImportResult struct {
	Created      int
	Updated      int
	Unchanged    int
	ErrorSamples []ErrorSample
}

// BulkImporter is a document store that accepts batches of documents.
type BulkImporter interface {
	// ImportDocuments submits docs and blocks until the store has applied them or
	// ctx is done. A non-nil error means the batch as a whole failed; problems
	// with individual documents are returned as ErrorSamples instead.
	ImportDocuments(ctx context.Context, mode ReconciliationMode, docs []Document) (*ImportResult, error)

	// Target names the destination for operator output.
	Target() string

	// Close releases resources held by the store.
	Close() error
}

// StoredDocument is a document as persisted by a local store.
type StoredDocument struct {
	Document
	ContentHash string
	Vector      []float32
	UpdatedAt   time.Time
}

// ImportRun records one completed import against a store.
type ImportRun struct {
	RunID         string
	StartedAt     time.Time
	FinishedAt    time.Time
	Documents     int
	Batches       int
	FailedBatches []int
	ErrorSamples  int
}

// DocumentReader reads back documents held by a local store.
type DocumentReader interface {
	// GetDocument returns the document with the given sanitized id.
	// Returns ErrNotFound if it does not exist.
	GetDocument(ctx context.Context, id string) (*StoredDocument, error)

	// CountDocuments returns the number of stored documents.
	CountDocuments(ctx context.Context) (int, error)
}

// VectorRewriter is implemented by local stores whose vectors can be regenerated
// in place, e.g. after the embedding model changes.
type VectorRewriter interface {
	DocumentReader

	// ListDocuments returns every stored document ordered by id.
	ListDocuments(ctx context.Context) ([]*StoredDocument, error)

	// UpdateVectors replaces the vectors of existing documents.
	// Returns ErrNotFound if any document does not exist; nothing is written then.
	UpdateVectors(ctx context.Context, docs ...*StoredDocument) error
}

// RunRecorder is implemented by stores that keep a history of import runs.
type RunRecorder interface {
	// SaveRun persists run as the latest import.
	SaveRun(ctx context.Context, run *ImportRun) error

	// LastRun returns the latest import, or nil if none was recorded.
	LastRun(ctx context.Context) (*ImportRun, error)
}
