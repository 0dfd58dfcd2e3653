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

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/tenantfirstaid/lawcorpus"
	"github.com/tenantfirstaid/lawcorpus/ai"
	"github.com/tenantfirstaid/lawcorpus/ai/openai"
	"github.com/tenantfirstaid/lawcorpus/docid"
	"github.com/tenantfirstaid/lawcorpus/importer"
	"github.com/tenantfirstaid/lawcorpus/reembed"
	"github.com/tenantfirstaid/lawcorpus/source"
	"github.com/tenantfirstaid/lawcorpus/storage"
	"github.com/tenantfirstaid/lawcorpus/storage/badger"
	"github.com/tenantfirstaid/lawcorpus/storage/discovery"
	"github.com/urfave/cli/v2"
)

const (
	defaultDocumentsDir = "documents"
	defaultCorpusPath   = "documents/corpus.jsonl"
	defaultEnvFile      = ".env"

	targetDiscovery = "discovery"
	targetLocal     = "local"
)

func main() {
	if err := newApp(os.Stderr).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// newApp builds the CLI. Progress output goes to progress.
func newApp(progress io.Writer) *cli.App {
	return &cli.App{
		Name:  "lawcorpus",
		Usage: "Build a per-section legal corpus and import it into a search data store",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Load environment variables from this file if it exists",
				Value: defaultEnvFile,
			},
		},
		Before: func(c *cli.Context) error {
			if err := setupLogger(c); err != nil {
				return err
			}
			return loadEnv(c)
		},
		Writer:    progress,
		ErrWriter: progress,
		Commands: []*cli.Command{
			{
				Name:   "build",
				Usage:  "Split the source documents into sections and write the corpus file",
				Action: buildAction(progress),
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "Path of the corpus file to write",
						Value:   defaultCorpusPath,
					},
					&cli.StringFlag{
						Name:  "documents",
						Usage: "Directory the manifest paths are relative to",
						Value: defaultDocumentsDir,
					},
					&cli.StringFlag{
						Name:  "manifest",
						Usage: "YAML manifest listing the source documents (default: built-in list)",
					},
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "Report what would be written without writing it",
					},
				},
			},
			{
				Name:   "import",
				Usage:  "Import the corpus file into the document store",
				Action: importAction(progress),
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "corpus",
						Usage: "Path to the corpus file",
						Value: defaultCorpusPath,
					},
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "Report the batch plan without contacting the store",
					},
					&cli.StringFlag{
						Name:  "target",
						Usage: "Destination store (discovery, local)",
						Value: targetDiscovery,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of documents per import request",
						Value: importer.DefaultBatchSize,
					},
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "Maximum time to wait for one batch",
						Value: importer.DefaultTimeout,
					},
					&cli.StringFlag{
						Name:    "project",
						Usage:   "Google Cloud project id",
						EnvVars: []string{"GOOGLE_CLOUD_PROJECT"},
					},
					&cli.StringFlag{
						Name:    "location",
						Usage:   "Data store location",
						EnvVars: []string{"GOOGLE_CLOUD_LOCATION"},
						Value:   discovery.DefaultLocation,
					},
					&cli.StringFlag{
						Name:    "datastore",
						Usage:   "Data store id",
						EnvVars: []string{"VERTEX_AI_DATASTORE"},
					},
					&cli.StringFlag{
						Name:    "credentials",
						Usage:   "Path to a service account or authorized user credentials file",
						EnvVars: []string{"GOOGLE_APPLICATION_CREDENTIALS"},
					},
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to BadgerDB database directory (local target)",
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL (local target)",
						Value: ai.DefaultConfig().EmbeddingHost,
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name; documents are stored without vectors when empty (local target)",
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum attempts per embedding call",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				},
			},
			{
				Name:   "reembed",
				Usage:  "Regenerate the vectors of every document in a local store",
				Action: reembedAction(progress),
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: ai.DefaultConfig().EmbeddingHost,
					},
					&cli.StringFlag{
						Name:     "embedding-model",
						Usage:    "Embedding model name",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of documents to embed in each call",
						Value: reembed.DefaultBatchSize,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N documents",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				},
			},
			{
				Name:   "inspect",
				Usage:  "Show what a local import stored",
				Action: inspectAction(progress),
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "id",
						Usage: "Corpus section id to show, e.g. ORS090_90.100",
					},
				},
			},
		},
	}
}

func buildAction(progress io.Writer) cli.ActionFunc {
	return func(c *cli.Context) error {
		ctx := context.Background()

		var manifest *source.Manifest
		if path := c.String("manifest"); path != "" {
			m, err := source.LoadManifest(path)
			if err != nil {
				return fmt.Errorf("failed to load manifest: %w", err)
			}
			manifest = m
		}

		pipeline, err := lawcorpus.NewPipeline(lawcorpus.WithProgress(progress))
		if err != nil {
			return err
		}

		_, err = pipeline.Build(ctx, lawcorpus.BuildRequest{
			DocumentsDir: c.String("documents"),
			Manifest:     manifest,
			OutPath:      c.String("out"),
			DryRun:       c.Bool("dry-run"),
		})
		if err != nil {
			return fmt.Errorf("build failed: %w", err)
		}
		return nil
	}
}

func importAction(progress io.Writer) cli.ActionFunc {
	return func(c *cli.Context) error {
		ctx := context.Background()

		cfg := &importer.Config{
			BatchSize: c.Int("batch-size"),
			Timeout:   c.Duration("timeout"),
			DryRun:    c.Bool("dry-run"),
		}

		var open lawcorpus.StoreOpener
		switch target := c.String("target"); target {
		case targetDiscovery:
			open = discoveryOpener(c)
		case targetLocal:
			if c.String("db") == "" {
				return fmt.Errorf("--db is required for the %s target", targetLocal)
			}
			open = localOpener(c)
		default:
			return fmt.Errorf("invalid target %q: must be one of %s, %s", target, targetDiscovery, targetLocal)
		}

		pipeline, err := lawcorpus.NewPipeline(lawcorpus.WithProgress(progress))
		if err != nil {
			return err
		}

		_, err = pipeline.Import(ctx, lawcorpus.ImportRequest{
			CorpusPath: c.String("corpus"),
			Config:     cfg,
			OpenStore:  open,
		})
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}
		return nil
	}
}

func discoveryOpener(c *cli.Context) lawcorpus.StoreOpener {
	cfg := discovery.DefaultConfig()
	cfg.Project = c.String("project")
	cfg.Location = c.String("location")
	cfg.DataStore = c.String("datastore")
	cfg.CredentialsFile = c.String("credentials")

	return func(ctx context.Context) (storage.BulkImporter, error) {
		store, err := discovery.New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
}

func localOpener(c *cli.Context) lawcorpus.StoreOpener {
	dbPath := c.String("db")
	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithRetry(c.Int("max-retries"), c.Duration("retry-delay")),
	)

	return func(ctx context.Context) (storage.BulkImporter, error) {
		var opts []badger.RepositoryOption
		if aiConfig.EmbeddingModel != "" {
			if err := aiConfig.Validate(); err != nil {
				return nil, fmt.Errorf("invalid AI configuration: %w", err)
			}
			embedder, err := openai.NewEmbedder(aiConfig)
			if err != nil {
				return nil, fmt.Errorf("failed to create embedder: %w", err)
			}
			opts = append(opts, badger.WithEmbedder(embedder, aiConfig.MaxRetries, aiConfig.RetryBaseDelay))
		}

		repo, err := badger.Open(dbPath, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		return repo, nil
	}
}

func reembedAction(progress io.Writer) cli.ActionFunc {
	return func(c *cli.Context) error {
		ctx := context.Background()

		config := &reembed.Config{
			BatchSize:      c.Int("batch-size"),
			ReportInterval: c.Int("report-interval"),
			MaxRetries:     c.Int("max-retries"),
			RetryDelay:     c.Duration("retry-delay"),
		}
		if err := config.Validate(); err != nil {
			return err
		}

		aiConfig := ai.NewConfig(
			ai.WithEmbeddingHost(c.String("embedding-host")),
			ai.WithEmbeddingModel(c.String("embedding-model")),
		)
		if err := aiConfig.Validate(); err != nil {
			return fmt.Errorf("invalid AI configuration: %w", err)
		}

		embedder, err := openai.NewEmbedder(aiConfig)
		if err != nil {
			return fmt.Errorf("failed to create embedder: %w", err)
		}

		dbPath := c.String("db")
		repo, err := badger.Open(dbPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer repo.Close()

		reembedder, err := reembed.NewReembedder(repo, embedder, config, progress)
		if err != nil {
			return err
		}

		fmt.Fprintf(progress, "Database: %s\n", dbPath)
		fmt.Fprintf(progress, "Embedding host: %s\n", aiConfig.EmbeddingHost)
		fmt.Fprintf(progress, "Embedding model: %s\n", aiConfig.EmbeddingModel)
		fmt.Fprintln(progress)

		if err := reembedder.Run(ctx); err != nil {
			return fmt.Errorf("reembedding failed: %w", err)
		}
		return nil
	}
}

func inspectAction(progress io.Writer) cli.ActionFunc {
	return func(c *cli.Context) error {
		ctx := context.Background()

		repo, err := badger.Open(c.String("db"))
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer repo.Close()

		if raw := c.String("id"); raw != "" {
			id := docid.Sanitize(raw)
			doc, err := repo.GetDocument(ctx, id)
			if err != nil {
				return fmt.Errorf("document %s: %w", id, err)
			}
			fmt.Fprintf(progress, "ID: %s\n", doc.ID)
			fmt.Fprintf(progress, "Title: %s\n", doc.Metadata.Title)
			fmt.Fprintf(progress, "State: %s\n", doc.Metadata.State)
			fmt.Fprintf(progress, "City: %s\n", doc.Metadata.City)
			fmt.Fprintf(progress, "Hash: %s\n", doc.ContentHash)
			fmt.Fprintf(progress, "Vector: %d dimensions\n", len(doc.Vector))
			fmt.Fprintf(progress, "Updated: %s\n\n", doc.UpdatedAt.Format(time.RFC3339))
			fmt.Fprintln(progress, string(doc.Content))
			return nil
		}

		count, err := repo.CountDocuments(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(progress, "Documents: %d\n", count)

		run, err := repo.LastRun(ctx)
		if err != nil {
			return err
		}
		if run == nil {
			fmt.Fprintln(progress, "Last run: none")
			return nil
		}
		fmt.Fprintf(progress, "Last run: %s (%s)\n", run.RunID, run.FinishedAt.Format(time.RFC3339))
		fmt.Fprintf(progress, "  documents=%d batches=%d failed=%v error_samples=%d\n",
			run.Documents, run.Batches, run.FailedBatches, run.ErrorSamples)
		return nil
	}
}

// loadEnv loads the --env-file. A missing default file is not an error.
func loadEnv(c *cli.Context) error {
	path := c.String("env-file")
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) && !c.IsSet("env-file") {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
