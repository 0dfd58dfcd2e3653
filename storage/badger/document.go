package badger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/tenantfirstaid/lawcorpus/ai"
	"github.com/tenantfirstaid/lawcorpus/core"
	"github.com/tenantfirstaid/lawcorpus/docid"
	"github.com/tenantfirstaid/lawcorpus/storage"
)

// DocumentRepository is a local document store backed by BadgerDB.
// It applies incremental reconciliation: submitted documents are created or
// replaced when their content changed, nothing is ever deleted.
type DocumentRepository struct {
	backend        *Backend
	ownsBackend    bool
	target         string
	embedder       ai.Embedder
	maxRetries     int
	retryBaseDelay time.Duration
	logger         *slog.Logger
}

var (
	_ storage.BulkImporter   = (*DocumentRepository)(nil)
	_ storage.DocumentReader = (*DocumentRepository)(nil)
	_ storage.VectorRewriter = (*DocumentRepository)(nil)
	_ storage.RunRecorder    = (*DocumentRepository)(nil)
)

// RepositoryOption configures a DocumentRepository.
type RepositoryOption func(*DocumentRepository)

// WithEmbedder embeds created and updated documents before they are stored.
// maxRetries and baseDelay control RetryWithBackoff around each embedding call.
func WithEmbedder(embedder ai.Embedder, maxRetries int, baseDelay time.Duration) RepositoryOption {
	return func(r *DocumentRepository) {
		r.embedder = embedder
		r.maxRetries = maxRetries
		r.retryBaseDelay = baseDelay
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) RepositoryOption {
	return func(r *DocumentRepository) {
		if logger != nil {
			r.logger = logger.With("component", "badger-documents")
		}
	}
}

// NewDocumentRepository creates a repository on an open backend.
// The caller keeps ownership of backend.
func NewDocumentRepository(backend *Backend, opts ...RepositoryOption) (*DocumentRepository, error) {
	if backend == nil || backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}
	r := &DocumentRepository{
		backend:    backend,
		target:     "badger:memory",
		maxRetries: 1,
		logger:     slog.Default().With("component", "badger-documents"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Open opens (or creates) a BadgerDB directory and returns a repository that
// closes it on Close.
func Open(dirPath string, opts ...RepositoryOption) (*DocumentRepository, error) {
	backend, err := OpenBackend(dirPath, false)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dirPath, err)
	}
	r, err := NewDocumentRepository(backend, opts...)
	if err != nil {
		backend.Close()
		return nil, err
	}
	r.ownsBackend = true
	r.target = "badger:" + dirPath
	return r, nil
}

// Target implements storage.BulkImporter.
func (r *DocumentRepository) Target() string {
	return r.target
}

// Close closes the backend if the repository opened it.
func (r *DocumentRepository) Close() error {
	if r.ownsBackend && !r.backend.IsClosed() {
		return r.backend.Close()
	}
	return nil
}

// ImportDocuments implements storage.BulkImporter.
//
// Documents with an invalid id are reported as error samples and skipped. Documents
// whose metadata and content hash to the stored value are counted as unchanged and
// not rewritten. If an embedder is configured and embedding fails after retries, the
// whole batch fails and nothing is written.
func (r *DocumentRepository) ImportDocuments(ctx context.Context, mode storage.ReconciliationMode, docs []storage.Document) (*storage.ImportResult, error) {
	if mode != storage.ModeIncremental {
		return nil, fmt.Errorf("%w: %s", storage.ErrUnsupportedMode, mode)
	}
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	result := &storage.ImportResult{}
	var pending []*storage.StoredDocument
	var created []bool
	seen := make(map[string]struct{}, len(docs))

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for i := range docs {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc := &docs[i]

			if msg := checkDocument(doc); msg != "" {
				result.ErrorSamples = append(result.ErrorSamples, storage.ErrorSample{DocumentID: doc.ID, Message: msg})
				continue
			}
			if _, dup := seen[doc.ID]; dup {
				result.ErrorSamples = append(result.ErrorSamples, storage.ErrorSample{DocumentID: doc.ID, Message: "duplicate document id in batch"})
				continue
			}
			seen[doc.ID] = struct{}{}

			hash, err := hashDocument(doc)
			if err != nil {
				return err
			}

			old, err := r.readDocument(tx, doc.ID)
			if err != nil {
				return err
			}
			if old != nil && old.ContentHash == hash {
				result.Unchanged++
				continue
			}

			pending = append(pending, &storage.StoredDocument{Document: *doc, ContentHash: hash})
			created = append(created, old == nil)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	if err := r.embed(ctx, pending); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	err = r.backend.WithTx(func(tx *badger.Txn) error {
		for _, doc := range pending {
			doc.UpdatedAt = now
			value, err := marshalDocument(doc)
			if err != nil {
				return err
			}
			if err := tx.Set(makeDocumentKey(doc.ID), value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}

	for _, c := range created {
		if c {
			result.Created++
		} else {
			result.Updated++
		}
	}

	r.logger.Debug("imported documents",
		"created", result.Created, "updated", result.Updated,
		"unchanged", result.Unchanged, "errors", len(result.ErrorSamples))

	return result, nil
}

// embed fills Vector for docs in one embedding call.
func (r *DocumentRepository) embed(ctx context.Context, docs []*storage.StoredDocument) error {
	if r.embedder == nil || len(docs) == 0 {
		return nil
	}

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = string(doc.Content)
	}

	var vectors [][]float32
	err := ai.RetryWithBackoff(ctx, func() error {
		var err error
		vectors, err = r.embedder.EmbedTexts(ctx, texts)
		return err
	}, r.maxRetries, r.retryBaseDelay)
	if err != nil {
		return fmt.Errorf("failed to generate embeddings after %d attempts: %w", r.maxRetries, err)
	}

	if len(vectors) != len(docs) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(docs), len(vectors))
	}

	for i := range docs {
		docs[i].Vector = ai.NormalizeVector(vectors[i])
	}
	return nil
}

// GetDocument implements storage.DocumentReader.
func (r *DocumentRepository) GetDocument(ctx context.Context, id string) (*storage.StoredDocument, error) {
	var doc *storage.StoredDocument
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		doc, err = r.readDocument(tx, id)
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, id)
	}
	return doc, nil
}

// CountDocuments implements storage.DocumentReader.
func (r *DocumentRepository) CountDocuments(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(documentPrefix)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// ListDocuments implements storage.VectorRewriter.
func (r *DocumentRepository) ListDocuments(ctx context.Context) ([]*storage.StoredDocument, error) {
	var docs []*storage.StoredDocument
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(documentPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			err := iter.Item().Value(func(val []byte) error {
				doc, err := unmarshalDocument(val)
				if err != nil {
					return err
				}
				docs = append(docs, doc)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// UpdateVectors implements storage.VectorRewriter.
// Only Vector is taken from docs; the stored content and hash are kept.
func (r *DocumentRepository) UpdateVectors(ctx context.Context, docs ...*storage.StoredDocument) error {
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	now := time.Now().UTC()
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, doc := range docs {
			old, err := r.readDocument(tx, doc.ID)
			if err != nil {
				return err
			}
			if old == nil {
				return fmt.Errorf("%w: %s", storage.ErrNotFound, doc.ID)
			}

			old.Vector = doc.Vector
			old.UpdatedAt = now
			value, err := marshalDocument(old)
			if err != nil {
				return err
			}
			if err := tx.Set(makeDocumentKey(doc.ID), value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// readDocument returns nil, nil if the document does not exist.
func (r *DocumentRepository) readDocument(tx *badger.Txn, id string) (*storage.StoredDocument, error) {
	item, err := tx.Get(makeDocumentKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var doc *storage.StoredDocument
	err = item.Value(func(val []byte) error {
		var err error
		doc, err = unmarshalDocument(val)
		return err
	})
	return doc, err
}

// checkDocument returns a rejection message, or "" if doc is acceptable.
func checkDocument(doc *storage.Document) string {
	switch {
	case doc.ID == "":
		return "document id is empty"
	case docid.Sanitize(doc.ID) != doc.ID:
		return fmt.Sprintf("document id %q is not a sanitized id", doc.ID)
	case doc.MimeType != "" && doc.MimeType != storage.MimeTypeText:
		return fmt.Sprintf("unsupported mime type %q", doc.MimeType)
	}
	return ""
}

// hashDocument covers metadata and content, so a title change is an update.
func hashDocument(doc *storage.Document) (string, error) {
	meta, err := json.Marshal(doc.Metadata)
	if err != nil {
		return "", fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
	}
	return core.ContentHash(string(meta)+"\x00"+string(doc.Content), 16), nil
}
