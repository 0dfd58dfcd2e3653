package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/tenantfirstaid/lawcorpus/corpus"
	"github.com/tenantfirstaid/lawcorpus/storage"
)

// BatchReport is the outcome of one batch. Index is 1-based.
type BatchReport struct {
	Index  int
	Size   int
	Result *storage.ImportResult
	Err    error
}

// Report summarizes an import run.
type Report struct {
	RunID    string
	DryRun   bool
	Plan     Plan
	Batches  []BatchReport
	Imported int
}

// Failed returns the 1-based indexes of batches that failed as a whole.
func (r *Report) Failed() []int {
	var failed []int
	for _, b := range r.Batches {
		if b.Err != nil {
			failed = append(failed, b.Index)
		}
	}
	return failed
}

// ErrorSamples returns the number of per-document error samples across all batches.
func (r *Report) ErrorSamples() int {
	n := 0
	for _, b := range r.Batches {
		if b.Result != nil {
			n += len(b.Result.ErrorSamples)
		}
	}
	return n
}

// Importer submits corpus records to a storage.BulkImporter.
type Importer struct {
	config   Config
	store    storage.BulkImporter
	progress io.Writer
	logger   *slog.Logger
}

// Option configures an Importer.
type Option func(*Importer) error

// WithStore sets the destination store. Required unless the config is a dry run.
func WithStore(store storage.BulkImporter) Option {
	return func(i *Importer) error {
		i.store = store
		return nil
	}
}

// WithProgress sets where operator progress lines are written.
func WithProgress(w io.Writer) Option {
	return func(i *Importer) error {
		i.progress = w
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(i *Importer) error {
		if logger == nil {
			logger = slog.Default()
		}
		i.logger = logger.With("component", "importer")
		return nil
	}
}

// New creates an Importer. A nil config means DefaultConfig().
// Configuration errors are returned here, before any batch is attempted.
func New(config *Config, opts ...Option) (*Importer, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	i := &Importer{
		config:   *config,
		progress: io.Discard,
		logger:   slog.Default().With("component", "importer"),
	}
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, err
		}
	}

	if !i.config.DryRun && i.store == nil {
		return nil, ErrStoreRequired
	}
	return i, nil
}

// Run imports records in order, one batch at a time.
//
// A batch that fails as a whole is recorded and the run moves on; the returned
// error then wraps ErrBatchesFailed. Cancellation of ctx stops the run before the
// next batch and is returned as is. The Report is returned in every case.
func (i *Importer) Run(ctx context.Context, records []corpus.Record) (*Report, error) {
	report := &Report{
		RunID:  ulid.Make().String(),
		DryRun: i.config.DryRun,
		Plan:   NewPlan(len(records), i.config.BatchSize),
	}
	logger := i.logger.With("run_id", report.RunID)

	if i.config.DryRun {
		fmt.Fprintf(i.progress, "[dry-run] would import %d documents in %d batch(es)\n",
			report.Plan.Total, report.Plan.Batches())
		logger.Info("dry run", "documents", report.Plan.Total, "batches", report.Plan.Batches())
		return report, nil
	}

	startedAt := time.Now().UTC()
	tracker := NewProgressTracker(i.progress, report.Plan.Batches())
	tracker.Start(i.store.Target())
	logger.Info("starting import",
		"target", i.store.Target(), "documents", report.Plan.Total, "batches", report.Plan.Batches())

	for n, batch := range Partition(records, i.config.BatchSize) {
		if err := ctx.Err(); err != nil {
			report.Imported = tracker.Imported()
			return report, err
		}

		br := i.runBatch(ctx, logger, tracker, n+1, batch)
		report.Batches = append(report.Batches, br)

		if br.Err != nil && ctx.Err() != nil {
			report.Imported = tracker.Imported()
			return report, ctx.Err()
		}
	}

	tracker.Finish()
	report.Imported = tracker.Imported()

	failed := report.Failed()
	logger.Info("import finished",
		"imported", report.Imported,
		"failed_batches", len(failed),
		"error_samples", report.ErrorSamples(),
		"elapsed", tracker.Elapsed())

	i.recordRun(ctx, logger, report, startedAt)

	if len(failed) > 0 {
		return report, fmt.Errorf("%w: batch(es) %s of %d; re-run the import to retry",
			ErrBatchesFailed, joinInts(failed), report.Plan.Batches())
	}
	return report, nil
}

func (i *Importer) runBatch(ctx context.Context, logger *slog.Logger, tracker *ProgressTracker, n int, batch []corpus.Record) BatchReport {
	docs := ToDocuments(batch)
	br := BatchReport{Index: n, Size: len(docs)}

	tracker.BatchStarted(n, len(docs))

	batchCtx, cancel := context.WithTimeout(ctx, i.config.Timeout)
	result, err := i.store.ImportDocuments(batchCtx, storage.ModeIncremental, docs)
	cancel()

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			err = fmt.Errorf("batch timed out after %s: %w", i.config.Timeout, err)
		}
		br.Err = err
		tracker.BatchFinished(len(docs), err)
		logger.Error("batch import failed",
			"batch", n, "size", len(docs),
			"first_id", docs[0].ID, "last_id", docs[len(docs)-1].ID,
			"err", err)
		return br
	}

	if result == nil {
		result = &storage.ImportResult{}
	}
	br.Result = result
	tracker.BatchFinished(len(docs), nil)
	for _, sample := range result.ErrorSamples {
		tracker.ErrorSample(sample.DocumentID, sample.Message)
		logger.Warn("document import error", "batch", n, "document", sample.DocumentID, "message", sample.Message)
	}
	logger.Debug("batch imported",
		"batch", n, "size", len(docs),
		"created", result.Created, "updated", result.Updated, "unchanged", result.Unchanged)
	return br
}

// recordRun saves a run summary when the store keeps one.
func (i *Importer) recordRun(ctx context.Context, logger *slog.Logger, report *Report, startedAt time.Time) {
	recorder, ok := i.store.(storage.RunRecorder)
	if !ok {
		return
	}
	run := &storage.ImportRun{
		RunID:         report.RunID,
		StartedAt:     startedAt,
		FinishedAt:    time.Now().UTC(),
		Documents:     report.Plan.Total,
		Batches:       report.Plan.Batches(),
		FailedBatches: report.Failed(),
		ErrorSamples:  report.ErrorSamples(),
	}
	if err := recorder.SaveRun(ctx, run); err != nil {
		logger.Warn("failed to record import run", "err", err)
	}
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}
