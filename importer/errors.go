package importer

import "errors"

var (
	// ErrStoreRequired is returned when a non-dry-run Importer has no store.
	ErrStoreRequired = errors.New("document store is required")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("batch size must be greater than 0")

	// ErrInvalidTimeout is returned when the batch timeout is not positive.
	ErrInvalidTimeout = errors.New("batch timeout must be greater than 0")

	// ErrBatchesFailed is returned after a run in which one or more batches failed.
	ErrBatchesFailed = errors.New("import batches failed")
)
