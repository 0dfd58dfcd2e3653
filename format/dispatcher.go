package format

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/tenantfirstaid/lawcorpus/core"
	"github.com/tenantfirstaid/lawcorpus/segment"
)

// Outcome tells how a document's sections were produced.
type Outcome int

const (
	// OutcomeMatched means the header rule matched one or more sections.
	OutcomeMatched Outcome = iota + 1
	// OutcomeLiteral means the document was emitted whole as a literal section.
	OutcomeLiteral
	// OutcomeFallback means the header rule matched nothing.
	OutcomeFallback
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMatched:
		return "matched"
	case OutcomeLiteral:
		return "literal"
	case OutcomeFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Result holds the sections produced for one source document.
type Result struct {
	Stem     string
	Outcome  Outcome
	Sections []core.Section
}

// Dispatcher selects a segment.Rule per document format.
type Dispatcher struct {
	rules  map[core.Format]segment.Rule
	logger *slog.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		d.logger = logger.With("component", "format-dispatcher")
		return nil
	}
}

// WithRule replaces the rule used for a splittable format.
func WithRule(f core.Format, rule segment.Rule) Option {
	return func(d *Dispatcher) error {
		if rule == nil {
			return ErrRuleRequired
		}
		if !f.Valid() || f == core.FormatLiteral {
			return fmt.Errorf("%w: %q", core.ErrUnknownFormat, f)
		}
		d.rules[f] = rule
		return nil
	}
}

// DefaultRules returns the header rules for the known source layouts.
func DefaultRules() map[core.Format]segment.Rule {
	return map[core.Format]segment.Rule{
		core.FormatStatute:   segment.MustInlineRule(segment.StatuteHeader),
		core.FormatAdminRule: segment.MustStackedRule(segment.AdminRuleAnchor),
		core.FormatMunicipal: segment.MustInlineRule(segment.MunicipalHeader),
	}
}

// NewDispatcher creates a Dispatcher with the default rules.
func NewDispatcher(opts ...Option) (*Dispatcher, error) {
	d := &Dispatcher{
		rules:  DefaultRules(),
		logger: slog.Default().With("component", "format-dispatcher"),
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// SectionsFor splits doc into sections and attaches the document's jurisdiction to each.
// Only an invalid document or header pattern is an error; a document whose rule
// matches nothing yields a single fallback section.
func (d *Dispatcher) SectionsFor(doc *core.SourceDocument) (*Result, error) {
	if err := core.ValidateDocument(doc); err != nil {
		return nil, err
	}

	result := &Result{Stem: doc.Stem, Outcome: OutcomeMatched}

	if doc.Format == core.FormatLiteral {
		title := doc.Title
		if title == "" {
			title = doc.Stem
		}
		result.Outcome = OutcomeLiteral
		result.Sections = []core.Section{{
			ID:      doc.Stem,
			Title:   title,
			Content: strings.TrimSpace(doc.Text),
		}}
	} else {
		rule, err := d.ruleFor(doc)
		if err != nil {
			return nil, err
		}
		result.Sections = segment.Split(doc.Text, rule, doc.Stem)
		if doc.Format == core.FormatMunicipal {
			result.Sections = LastWins(result.Sections)
		}
	}

	if len(result.Sections) == 0 {
		d.logger.Warn("no sections parsed; emitting as single document",
			"document", doc.Stem, "format", string(doc.Format))
		result.Outcome = OutcomeFallback
		result.Sections = []core.Section{{
			ID:      doc.Stem,
			Title:   doc.Stem,
			Content: strings.TrimSpace(doc.Text),
		}}
	}

	for i := range result.Sections {
		result.Sections[i].Jurisdiction = doc.Jurisdiction
	}

	return result, nil
}

// ruleFor returns the document's pattern override or the registered rule for its format.
func (d *Dispatcher) ruleFor(doc *core.SourceDocument) (segment.Rule, error) {
	if doc.Pattern == "" {
		rule, ok := d.rules[doc.Format]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrNoRule, doc.Format)
		}
		return rule, nil
	}

	var (
		rule segment.Rule
		err  error
	)
	if doc.Format == core.FormatAdminRule {
		rule, err = segment.NewStackedRule(doc.Pattern)
	} else {
		rule, err = segment.NewInlineRule(doc.Pattern)
	}
	if err != nil {
		return nil, fmt.Errorf("document %s: %w", doc.Stem, err)
	}
	return rule, nil
}
