// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package lawcorpus turns statute and ordinance text files into a corpus of
// per-section records and imports that corpus into a searchable document store.
//
// The two phases are independent: Build writes the corpus file, Import reads it.
// Either can be re-run on its own.
package lawcorpus

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/tenantfirstaid/lawcorpus/corpus"
	"github.com/tenantfirstaid/lawcorpus/format"
	"github.com/tenantfirstaid/lawcorpus/importer"
	"github.com/tenantfirstaid/lawcorpus/source"
	"github.com/tenantfirstaid/lawcorpus/storage"
)

// Pipeline wires source loading, format dispatch, corpus assembly and import.
type Pipeline struct {
	dispatcher *format.Dispatcher
	progress   io.Writer
	logger     *slog.Logger
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*pipelineOptions)

type pipelineOptions struct {
	progress    io.Writer
	logger      *slog.Logger
	formatRules []format.Option
}

// WithProgress sets where operator progress lines are written.
func WithProgress(w io.Writer) PipelineOption {
	return func(o *pipelineOptions) {
		o.progress = w
	}
}

// WithLogger sets the logger passed to every component.
func WithLogger(logger *slog.Logger) PipelineOption {
	return func(o *pipelineOptions) {
		o.logger = logger
	}
}

// WithFormatOptions customizes the format dispatcher, e.g. with format.WithRule.
func WithFormatOptions(opts ...format.Option) PipelineOption {
	return func(o *pipelineOptions) {
		o.formatRules = append(o.formatRules, opts...)
	}
}

// NewPipeline creates a Pipeline.
func NewPipeline(opts ...PipelineOption) (*Pipeline, error) {
	options := &pipelineOptions{
		progress: io.Discard,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	dispatcherOpts := append([]format.Option{format.WithLogger(options.logger)}, options.formatRules...)
	dispatcher, err := format.NewDispatcher(dispatcherOpts...)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		dispatcher: dispatcher,
		progress:   options.progress,
		logger:     options.logger,
	}, nil
}

// BuildRequest describes one corpus build.
type BuildRequest struct {
	// DocumentsDir is the directory manifest paths are relative to.
	DocumentsDir string
	// Manifest lists the sources; nil means source.DefaultManifest().
	Manifest *source.Manifest
	// OutPath is the corpus file to write.
	OutPath string
	DryRun  bool
}

// Build assembles the corpus and, unless DryRun is set, replaces OutPath with it.
func (p *Pipeline) Build(ctx context.Context, req BuildRequest) (*corpus.Assembly, error) {
	manifest := req.Manifest
	if manifest == nil {
		manifest = source.DefaultManifest()
	}

	loader := source.NewLoader(req.DocumentsDir, source.WithLogger(p.logger))
	docs, err := loader.Load(ctx, manifest)
	if err != nil {
		return nil, err
	}

	assembler, err := corpus.NewAssembler(p.dispatcher,
		corpus.WithProgress(p.progress), corpus.WithLogger(p.logger))
	if err != nil {
		return nil, err
	}

	assembly, err := assembler.Assemble(ctx, docs)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(p.progress, "Total: %d entries\n", len(assembly.Records))
	if fallbacks := assembly.Fallbacks(); len(fallbacks) > 0 {
		p.logger.Warn("documents emitted without section headers", "documents", fallbacks)
	}

	if req.DryRun {
		fmt.Fprintf(p.progress, "[dry-run] would write %s\n", req.OutPath)
		return assembly, nil
	}

	if err := corpus.WriteFile(req.OutPath, assembly.Records); err != nil {
		return nil, fmt.Errorf("write corpus: %w", err)
	}
	fmt.Fprintf(p.progress, "Wrote %s\n", req.OutPath)
	return assembly, nil
}

// StoreOpener opens the destination store. It is not called for dry runs.
type StoreOpener func(ctx context.Context) (storage.BulkImporter, error)

// ImportRequest describes one import run.
type ImportRequest struct {
	CorpusPath string
	// Config is the importer configuration; nil means importer.DefaultConfig().
	Config    *importer.Config
	OpenStore StoreOpener
}

// Import reads the corpus file and imports it.
// The store is opened only for real runs and closed before Import returns.
func (p *Pipeline) Import(ctx context.Context, req ImportRequest) (report *importer.Report, err error) {
	cfg := req.Config
	if cfg == nil {
		cfg = importer.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	records, err := corpus.ReadFile(req.CorpusPath)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(p.progress, "Loaded %d sections from %s\n", len(records), req.CorpusPath)

	opts := []importer.Option{importer.WithProgress(p.progress), importer.WithLogger(p.logger)}

	if !cfg.DryRun {
		if req.OpenStore == nil {
			return nil, importer.ErrStoreRequired
		}
		var store storage.BulkImporter
		store, err = req.OpenStore(ctx)
		if err != nil {
			return nil, err
		}
		defer func() {
			if cerr := store.Close(); cerr != nil {
				p.logger.Error("error closing document store", "err", cerr)
				err = errors.Join(err, cerr)
			}
		}()
		opts = append(opts, importer.WithStore(store))
	}

	imp, err := importer.New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return imp.Run(ctx, records)
}
