package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tenantfirstaid/lawcorpus/core"
)

// Loader reads the files named by a manifest.
type Loader struct {
	dir    string
	logger *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger.With("component", "source-loader")
		}
	}
}

// NewLoader creates a Loader rooted at dir.
func NewLoader(dir string, opts ...LoaderOption) *Loader {
	l := &Loader{
		dir:    dir,
		logger: slog.Default().With("component", "source-loader"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads every entry of m in manifest order.
// Entries whose file does not exist are skipped; any other read error stops the load.
func (l *Loader) Load(ctx context.Context, m *Manifest) ([]core.SourceDocument, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	docs := make([]core.SourceDocument, 0, len(m.Documents))
	for _, e := range m.Documents {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		path := filepath.Join(l.dir, filepath.FromSlash(e.Path))
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			l.logger.Info("source file not found, skipping", "document", e.Stem, "path", path)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", e.Stem, err)
		}

		text := string(data)
		if e.HTML {
			text, err = ExtractText(bytes.NewReader(data))
			if err != nil {
				return nil, fmt.Errorf("extract %s: %w", e.Stem, err)
			}
		}

		docs = append(docs, core.SourceDocument{
			Stem:         e.Stem,
			Title:        e.Title,
			Format:       e.Format,
			Pattern:      e.Pattern,
			Text:         text,
			Jurisdiction: e.Jurisdiction(),
		})
		l.logger.Debug("loaded source", "document", e.Stem, "bytes", len(data))
	}

	return docs, nil
}

// Load reads the documents of m from dir with a default Loader.
func Load(ctx context.Context, dir string, m *Manifest) ([]core.SourceDocument, error) {
	return NewLoader(dir).Load(ctx, m)
}
