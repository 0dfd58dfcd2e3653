package importer

import (
	"fmt"
	"io"
	"time"
)

// ProgressTracker writes operator-facing batch progress lines.
type ProgressTracker struct {
	writer    io.Writer
	batches   int
	imported  int
	startTime time.Time
}

// NewProgressTracker creates a tracker for a run of batches batches.
// writer is typically os.Stderr.
func NewProgressTracker(writer io.Writer, batches int) *ProgressTracker {
	if writer == nil {
		writer = io.Discard
	}
	return &ProgressTracker{writer: writer, batches: batches}
}

// Start records the start time and prints the target.
func (p *ProgressTracker) Start(target string) {
	p.startTime = time.Now()
	fmt.Fprintf(p.writer, "Target: %s\n", target)
}

// BatchStarted prints the batch header without a newline; BatchFinished completes it.
func (p *ProgressTracker) BatchStarted(n, size int) {
	fmt.Fprintf(p.writer, "Importing batch %d/%d (%d documents)... ", n, p.batches, size)
}

// BatchFinished completes the batch line.
func (p *ProgressTracker) BatchFinished(size int, err error) {
	if err != nil {
		fmt.Fprintf(p.writer, "failed: %v\n", err)
		return
	}
	p.imported += size
	fmt.Fprintln(p.writer, "done")
}

// ErrorSample prints one per-document problem under the current batch.
func (p *ProgressTracker) ErrorSample(documentID, message string) {
	if documentID == "" {
		fmt.Fprintf(p.writer, "  [error] %s\n", message)
		return
	}
	fmt.Fprintf(p.writer, "  [error] %s: %s\n", documentID, message)
}

// Finish prints the imported document count.
func (p *ProgressTracker) Finish() {
	fmt.Fprintf(p.writer, "\nImported %d documents.\n", p.imported)
}

// Imported returns the number of documents in batches that succeeded.
func (p *ProgressTracker) Imported() int {
	return p.imported
}

// Elapsed returns the time elapsed since Start was called.
func (p *ProgressTracker) Elapsed() time.Duration {
	if p.startTime.IsZero() {
		return 0
	}
	return time.Since(p.startTime)
}
