package corpus

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/tenantfirstaid/lawcorpus/core"
	"github.com/tenantfirstaid/lawcorpus/format"
)

// Summary describes one assembled document.
type Summary struct {
	Stem     string
	Outcome  format.Outcome
	Sections int
}

// Assembly is the result of assembling a set of source documents.
type Assembly struct {
	Records   []Record
	Documents []Summary
}

// Fallbacks returns the stems of documents whose header rule matched nothing.
func (a *Assembly) Fallbacks() []string {
	var stems []string
	for _, d := range a.Documents {
		if d.Outcome == format.OutcomeFallback {
			stems = append(stems, d.Stem)
		}
	}
	return stems
}

// Assembler turns source documents into corpus records in document order.
type Assembler struct {
	dispatcher *format.Dispatcher
	progress   io.Writer
	logger     *slog.Logger
}

// AssemblerOption configures an Assembler.
type AssemblerOption func(*Assembler)

// WithProgress sets where per-document section counts are written.
func WithProgress(w io.Writer) AssemblerOption {
	return func(a *Assembler) {
		a.progress = w
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) AssemblerOption {
	return func(a *Assembler) {
		if logger != nil {
			a.logger = logger.With("component", "corpus-assembler")
		}
	}
}

// NewAssembler creates an Assembler. Progress output is discarded unless WithProgress is given.
func NewAssembler(dispatcher *format.Dispatcher, opts ...AssemblerOption) (*Assembler, error) {
	if dispatcher == nil {
		return nil, ErrDispatcherRequired
	}
	a := &Assembler{
		dispatcher: dispatcher,
		progress:   io.Discard,
		logger:     slog.Default().With("component", "corpus-assembler"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Assemble splits each document and concatenates the sections in document order.
// Documents are processed one at a time; "<stem>: N section(s)" is reported for each.
func (a *Assembler) Assemble(ctx context.Context, docs []core.SourceDocument) (*Assembly, error) {
	result := &Assembly{
		Records:   []Record{},
		Documents: make([]Summary, 0, len(docs)),
	}

	for i := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		res, err := a.dispatcher.SectionsFor(&docs[i])
		if err != nil {
			return nil, fmt.Errorf("assemble %s: %w", docs[i].Stem, err)
		}

		for _, s := range res.Sections {
			if err := core.ValidateSection(&s); err != nil {
				return nil, err
			}
			result.Records = append(result.Records, FromSection(s))
		}
		result.Documents = append(result.Documents, Summary{
			Stem:     res.Stem,
			Outcome:  res.Outcome,
			Sections: len(res.Sections),
		})

		fmt.Fprintf(a.progress, "%s: %d section(s)\n", res.Stem, len(res.Sections))
		a.logger.Debug("assembled document",
			"document", res.Stem, "outcome", res.Outcome.String(), "sections", len(res.Sections))
	}

	return result, nil
}
