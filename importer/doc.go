// Package importer transfers a corpus into a document store in bounded batches.
//
// Records are converted to storage documents with sanitized ids, partitioned into
// ordered batches of at most Config.BatchSize, and submitted one batch at a time
// under incremental reconciliation. Each batch is awaited under Config.Timeout
// before the next begins.
//
// Per-document error samples are reported and never stop the run. A batch that
// fails as a whole is reported and the run continues with the next batch; the run
// then ends with ErrBatchesFailed naming the failed batches. Because reconciliation
// is incremental, re-running the whole import is the recovery path.
//
// Dry-run mode computes the batch plan and touches no store.
package importer
