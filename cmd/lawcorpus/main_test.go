package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tenantfirstaid/lawcorpus/corpus"
	"github.com/urfave/cli/v2"
)

func findCommand(t *testing.T, app *cli.App, name string) *cli.Command {
	t.Helper()
	for _, cmd := range app.Commands {
		if cmd.Name == name {
			return cmd
		}
	}
	t.Fatalf("command %q not found", name)
	return nil
}

func findStringFlag(t *testing.T, cmd *cli.Command, name string) *cli.StringFlag {
	t.Helper()
	for _, flag := range cmd.Flags {
		if f, ok := flag.(*cli.StringFlag); ok && f.Name == name {
			return f
		}
	}
	t.Fatalf("flag %q not found on %s", name, cmd.Name)
	return nil
}

func TestImportCommandFlags(t *testing.T) {
	cmd := findCommand(t, newApp(&bytes.Buffer{}), "import")

	t.Run("cloud settings come from the environment", func(t *testing.T) {
		cases := map[string]string{
			"project":     "GOOGLE_CLOUD_PROJECT",
			"location":    "GOOGLE_CLOUD_LOCATION",
			"datastore":   "VERTEX_AI_DATASTORE",
			"credentials": "GOOGLE_APPLICATION_CREDENTIALS",
		}
		for name, env := range cases {
			assert.Equal(t, []string{env}, findStringFlag(t, cmd, name).EnvVars, name)
		}
	})

	t.Run("location defaults to global", func(t *testing.T) {
		assert.Equal(t, "global", findStringFlag(t, cmd, "location").Value)
	})

	t.Run("target defaults to discovery", func(t *testing.T) {
		assert.Equal(t, "discovery", findStringFlag(t, cmd, "target").Value)
	})

	t.Run("corpus has default value", func(t *testing.T) {
		assert.Equal(t, "documents/corpus.jsonl", findStringFlag(t, cmd, "corpus").Value)
	})

	t.Run("batch-size has default value of 100", func(t *testing.T) {
		var batchFlag *cli.IntFlag
		for _, flag := range cmd.Flags {
			if f, ok := flag.(*cli.IntFlag); ok && f.Name == "batch-size" {
				batchFlag = f
				break
			}
		}
		require.NotNil(t, batchFlag)
		assert.Equal(t, 100, batchFlag.Value)
	})

	t.Run("embedding-model has no default value", func(t *testing.T) {
		modelFlag := findStringFlag(t, cmd, "embedding-model")
		assert.Empty(t, modelFlag.Value)
		assert.Empty(t, modelFlag.EnvVars)
	})
}

func TestReembedCommandFlags(t *testing.T) {
	t.Run("embedding-model is required", func(t *testing.T) {
		err := newApp(&bytes.Buffer{}).Run([]string{"lawcorpus", "reembed", "--db", t.TempDir()})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "embedding-model")
	})

	t.Run("embedding-host has default value", func(t *testing.T) {
		cmd := findCommand(t, newApp(&bytes.Buffer{}), "reembed")
		hostFlag := findStringFlag(t, cmd, "embedding-host")
		assert.Equal(t, "http://localhost:11434/v1", hostFlag.Value)
		assert.Empty(t, hostFlag.EnvVars)
	})

	t.Run("invalid report interval", func(t *testing.T) {
		err := newApp(&bytes.Buffer{}).Run([]string{"lawcorpus", "reembed", "--db", t.TempDir(),
			"--embedding-model", "m", "--report-interval", "0"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "report interval")
	})
}

func TestInspectCommandFlags(t *testing.T) {
	t.Run("db is required", func(t *testing.T) {
		err := newApp(&bytes.Buffer{}).Run([]string{"lawcorpus", "inspect"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db")
	})
}

func writeDocuments(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "or", "ORS090.txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	text := "Chapter 90\n\n      90.100 Definitions. As used in this chapter:\n\n      90.105 Short title. This chapter may be cited.\n"
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return dir
}

func writeCorpusFile(t *testing.T, n int) string {
	t.Helper()
	records := make([]corpus.Record, n)
	for i := range records {
		records[i] = corpus.Record{
			ID:      fmt.Sprintf("ORS090_90.%03d", i),
			Title:   "Definitions",
			Content: "section text",
			State:   "or",
			City:    "null",
		}
	}
	path := filepath.Join(t.TempDir(), "corpus.jsonl")
	require.NoError(t, corpus.WriteFile(path, records))
	return path
}

func TestBuildCommand(t *testing.T) {
	docs := writeDocuments(t)
	out := filepath.Join(t.TempDir(), "corpus.jsonl")

	t.Run("dry run writes nothing", func(t *testing.T) {
		var progress bytes.Buffer
		err := newApp(&progress).Run([]string{"lawcorpus", "build", "--documents", docs, "--out", out, "--dry-run"})
		require.NoError(t, err)

		assert.Contains(t, progress.String(), "ORS090: 2 section(s)\n")
		assert.Contains(t, progress.String(), "Total: 2 entries\n")
		assert.Contains(t, progress.String(), "[dry-run] would write "+out)
		assert.NoFileExists(t, out)
	})

	t.Run("writes corpus", func(t *testing.T) {
		var progress bytes.Buffer
		err := newApp(&progress).Run([]string{"lawcorpus", "build", "--documents", docs, "--out", out})
		require.NoError(t, err)

		records, err := corpus.ReadFile(out)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "ORS090_90.100", records[0].ID)
		assert.Equal(t, "Definitions", records[0].Title)
	})

	t.Run("custom manifest", func(t *testing.T) {
		manifest := filepath.Join(t.TempDir(), "manifest.yaml")
		yaml := "documents:\n  - stem: ORS090\n    path: or/ORS090.txt\n    format: literal\n    state: or\n    title: Chapter 90\n"
		require.NoError(t, os.WriteFile(manifest, []byte(yaml), 0o644))

		var progress bytes.Buffer
		err := newApp(&progress).Run([]string{"lawcorpus", "build",
			"--documents", docs, "--manifest", manifest, "--dry-run"})
		require.NoError(t, err)
		assert.Contains(t, progress.String(), "ORS090: 1 section(s)\n")
	})

	t.Run("invalid manifest", func(t *testing.T) {
		manifest := filepath.Join(t.TempDir(), "manifest.yaml")
		require.NoError(t, os.WriteFile(manifest, []byte("documents: [{path: x}]"), 0o644))

		err := newApp(&bytes.Buffer{}).Run([]string{"lawcorpus", "build", "--manifest", manifest})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load manifest")
	})
}

func TestImportCommand(t *testing.T) {
	t.Run("dry run needs no credentials", func(t *testing.T) {
		path := writeCorpusFile(t, 101)
		var progress bytes.Buffer
		err := newApp(&progress).Run([]string{"lawcorpus", "import", "--corpus", path, "--dry-run", "--credentials", ""})
		require.NoError(t, err)
		assert.Equal(t,
			"Loaded 101 sections from "+path+"\n[dry-run] would import 101 documents in 2 batch(es)\n",
			progress.String())
	})

	t.Run("invalid target", func(t *testing.T) {
		path := writeCorpusFile(t, 1)
		err := newApp(&bytes.Buffer{}).Run([]string{"lawcorpus", "import", "--corpus", path, "--target", "s3"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `invalid target "s3"`)
	})

	t.Run("local target requires db", func(t *testing.T) {
		path := writeCorpusFile(t, 1)
		err := newApp(&bytes.Buffer{}).Run([]string{"lawcorpus", "import", "--corpus", path, "--target", "local"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--db is required")
	})

	t.Run("discovery target without credentials", func(t *testing.T) {
		path := writeCorpusFile(t, 1)
		err := newApp(&bytes.Buffer{}).Run([]string{"lawcorpus", "import", "--corpus", path,
			"--credentials", "", "--project", "p", "--datastore", "d"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "import failed")
	})
}

func TestImportThenInspectLocal(t *testing.T) {
	path := writeCorpusFile(t, 3)
	db := filepath.Join(t.TempDir(), "db")

	var progress bytes.Buffer
	err := newApp(&progress).Run([]string{"lawcorpus", "import", "--corpus", path, "--target", "local", "--db", db})
	require.NoError(t, err)
	assert.Contains(t, progress.String(), "Importing batch 1/1 (3 documents)... done\n")
	assert.Contains(t, progress.String(), "Imported 3 documents.")

	progress.Reset()
	err = newApp(&progress).Run([]string{"lawcorpus", "inspect", "--db", db})
	require.NoError(t, err)
	assert.Contains(t, progress.String(), "Documents: 3\n")
	assert.Contains(t, progress.String(), "documents=3 batches=1 failed=[] error_samples=0")

	progress.Reset()
	err = newApp(&progress).Run([]string{"lawcorpus", "inspect", "--db", db, "--id", "ORS090_90.001"})
	require.NoError(t, err)
	assert.Contains(t, progress.String(), "ID: ORS090-90-001\n")
	assert.Contains(t, progress.String(), "Vector: 0 dimensions\n")
	assert.Contains(t, progress.String(), "section text")

	err = newApp(&bytes.Buffer{}).Run([]string{"lawcorpus", "inspect", "--db", db, "--id", "missing"})
	require.Error(t, err)
}

func TestEnvFile(t *testing.T) {
	t.Run("missing default file is ignored", func(t *testing.T) {
		path := writeCorpusFile(t, 1)
		err := newApp(&bytes.Buffer{}).Run([]string{"lawcorpus", "import", "--corpus", path, "--dry-run"})
		require.NoError(t, err)
	})

	t.Run("missing explicit file is an error", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "nope.env")
		err := newApp(&bytes.Buffer{}).Run([]string{"lawcorpus", "--env-file", missing, "build", "--dry-run"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load env file")
	})

	t.Run("values are loaded", func(t *testing.T) {
		envFile := filepath.Join(t.TempDir(), "test.env")
		require.NoError(t, os.WriteFile(envFile, []byte("LAWCORPUS_TEST_VALUE=loaded\n"), 0o644))
		t.Cleanup(func() { os.Unsetenv("LAWCORPUS_TEST_VALUE") })

		app := newApp(&bytes.Buffer{})
		app.Commands = append(app.Commands, &cli.Command{
			Name: "probe",
			Action: func(c *cli.Context) error {
				assert.Equal(t, "loaded", os.Getenv("LAWCORPUS_TEST_VALUE"))
				return nil
			},
		})
		require.NoError(t, app.Run([]string{"lawcorpus", "--env-file", envFile, "probe"}))
	})
}

func TestSetupLogger(t *testing.T) {
	t.Run("valid log levels", func(t *testing.T) {
		testCases := []struct {
			input    string
			expected slog.Level
		}{
			{"debug", slog.LevelDebug},
			{"info", slog.LevelInfo},
			{"warn", slog.LevelWarn},
			{"error", slog.LevelError},
		}

		for _, tc := range testCases {
			t.Run(tc.input, func(t *testing.T) {
				app := &cli.App{
					Name: "test",
					Flags: []cli.Flag{
						&cli.StringFlag{
							Name:  "log-level",
							Value: tc.input,
						},
					},
					Before: setupLogger,
					Action: func(c *cli.Context) error {
						return nil
					},
				}

				err := app.Run([]string{"test", "--log-level", tc.input})
				require.NoError(t, err)
				assert.True(t, slog.Default().Enabled(context.Background(), tc.expected))
			})
		}
	})

	t.Run("case insensitive log levels", func(t *testing.T) {
		for _, tc := range []string{"DEBUG", "Info", "WaRn", "ERROR"} {
			t.Run(tc, func(t *testing.T) {
				app := &cli.App{
					Name: "test",
					Flags: []cli.Flag{
						&cli.StringFlag{Name: "log-level"},
					},
					Before: setupLogger,
					Action: func(c *cli.Context) error { return nil },
				}

				err := app.Run([]string{"test", "--log-level", tc})
				require.NoError(t, err)
			})
		}
	})

	t.Run("invalid log level", func(t *testing.T) {
		err := newApp(&bytes.Buffer{}).Run([]string{"lawcorpus", "-l", "verbose", "build", "--dry-run"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `invalid log level "verbose"`)
	})
}
