package lawcorpus

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tenantfirstaid/lawcorpus/core"
	"github.com/tenantfirstaid/lawcorpus/corpus"
	"github.com/tenantfirstaid/lawcorpus/importer"
	"github.com/tenantfirstaid/lawcorpus/source"
	"github.com/tenantfirstaid/lawcorpus/storage"
	"github.com/tenantfirstaid/lawcorpus/storage/badger"
	"github.com/tenantfirstaid/lawcorpus/storage/mock"
)

const ors090 = `Chapter 90 Residential Landlord and Tenant

      90.100 Definitions. As used in this chapter, unless the context otherwise requires:
(1) "Action" includes recoupment, counterclaim, set-off, suit in equity.

      90.105 Short title. This chapter shall be known and may be cited as the Residential Landlord and Tenant Act.
`

const oar54 = `411-054-0000
Purpose
These rules apply to residential care facilities.

411-054-0005
Definitions
The following definitions apply to these rules.
`

const pcc = `30.01.010 Purpose.
30.01.085 Portland Renter Additional Protections.

30.01.010 Purpose.
The purpose of this Chapter is to preserve affordable housing.
30.01.085 Portland Renter Additional Protections.
A. A Landlord may terminate a Rental Agreement only as provided here.
`

func writeSources(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"or/ORS090.txt":            ors090,
		"or/ORS105.txt":            "105.105 headers without the statute indent",
		"or/OAR54.txt":             oar54,
		"or/portland/PCC30.01.txt": pcc,
		"or/eugene/EHC8.425.txt":   "8.425 Rental Housing Code.\nApplies to all rental housing in Eugene.",
	}
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func TestPipeline_Build(t *testing.T) {
	docs := writeSources(t)
	out := filepath.Join(t.TempDir(), "corpus.jsonl")

	var progress bytes.Buffer
	p, err := NewPipeline(WithProgress(&progress))
	require.NoError(t, err)

	assembly, err := p.Build(context.Background(), BuildRequest{DocumentsDir: docs, OutPath: out})
	require.NoError(t, err)

	records, err := corpus.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, assembly.Records, records)

	byID := make(map[string]corpus.Record)
	for _, r := range records {
		byID[r.ID] = r
	}
	assert.Contains(t, byID, "ORS090_90.100")
	assert.Contains(t, byID, "ORS090_90.105")
	assert.Contains(t, byID, "ORS105", "unsplittable statute falls back to one section")
	assert.Contains(t, byID, "OAR54_411-054-0005")
	assert.Equal(t, "eugene", byID["EHC8.425"].City)
	assert.Equal(t, "Eugene Housing Code 8.425", byID["EHC8.425"].Title)
	assert.Equal(t, core.StatewideCity, byID["ORS090_90.100"].City)

	pcc085 := byID["PCC30.01_30.01.085"]
	assert.Contains(t, pcc085.Content, "A Landlord may terminate")
	assert.Equal(t, "portland", pcc085.City)

	assert.Equal(t, []string{"ORS105"}, assembly.Fallbacks())

	out2 := progress.String()
	assert.Contains(t, out2, "ORS090: 2 section(s)\n")
	assert.Contains(t, out2, "PCC30.01: 2 section(s)\n")
	assert.Contains(t, out2, "Total: 8 entries\n")
	assert.Contains(t, out2, "Wrote "+out+"\n")
	assert.NotContains(t, out2, "ORS091", "missing sources are skipped")
}

func TestPipeline_BuildDryRun(t *testing.T) {
	docs := writeSources(t)
	out := filepath.Join(t.TempDir(), "corpus.jsonl")

	var progress bytes.Buffer
	p, err := NewPipeline(WithProgress(&progress))
	require.NoError(t, err)

	_, err = p.Build(context.Background(), BuildRequest{DocumentsDir: docs, OutPath: out, DryRun: true})
	require.NoError(t, err)

	_, err = os.Stat(out)
	assert.True(t, os.IsNotExist(err), "dry run writes nothing")
	assert.Contains(t, progress.String(), "[dry-run] would write "+out+"\n")
}

func TestPipeline_BuildCustomManifest(t *testing.T) {
	docs := writeSources(t)
	manifest := &source.Manifest{Documents: []source.Entry{
		{Stem: "ORS090", Path: "or/ORS090.txt", Format: core.FormatStatute, State: "or"},
	}}

	p, err := NewPipeline()
	require.NoError(t, err)

	assembly, err := p.Build(context.Background(), BuildRequest{
		DocumentsDir: docs, Manifest: manifest, OutPath: filepath.Join(t.TempDir(), "c.jsonl"),
	})
	require.NoError(t, err)
	assert.Len(t, assembly.Records, 2)
}

func writeCorpus(t *testing.T, n int) string {
	t.Helper()
	records := make([]corpus.Record, n)
	for i := range records {
		records[i] = corpus.Record{
			ID:      fmt.Sprintf("ORS090_90.%03d", i),
			Title:   "Definitions",
			Content: "section text",
			State:   "or",
			City:    core.StatewideCity,
		}
	}
	path := filepath.Join(t.TempDir(), "corpus.jsonl")
	require.NoError(t, corpus.WriteFile(path, records))
	return path
}

func TestPipeline_ImportDryRun(t *testing.T) {
	path := writeCorpus(t, 250)

	var progress bytes.Buffer
	p, err := NewPipeline(WithProgress(&progress))
	require.NoError(t, err)

	cfg := importer.DefaultConfig()
	cfg.DryRun = true
	opened := false
	report, err := p.Import(context.Background(), ImportRequest{
		CorpusPath: path,
		Config:     cfg,
		OpenStore: func(ctx context.Context) (storage.BulkImporter, error) {
			opened = true
			return nil, errors.New("should not be called")
		},
	})
	require.NoError(t, err)
	assert.False(t, opened, "dry run never opens the store")
	assert.Equal(t, 3, report.Plan.Batches())
	assert.Equal(t,
		"Loaded 250 sections from "+path+"\n[dry-run] would import 250 documents in 3 batch(es)\n",
		progress.String())
}

func TestPipeline_Import(t *testing.T) {
	path := writeCorpus(t, 120)
	store := mock.NewMockImporter()

	var progress bytes.Buffer
	p, err := NewPipeline(WithProgress(&progress))
	require.NoError(t, err)

	report, err := p.Import(context.Background(), ImportRequest{
		CorpusPath: path,
		OpenStore: func(ctx context.Context) (storage.BulkImporter, error) {
			return store, nil
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 120, report.Imported)
	assert.Equal(t, 2, store.CallCount())
	assert.True(t, store.Closed())
	assert.Contains(t, progress.String(), "Imported 120 documents.")
}

func TestPipeline_ImportStoreError(t *testing.T) {
	path := writeCorpus(t, 1)
	p, err := NewPipeline()
	require.NoError(t, err)

	configErr := errors.New("credentials file is required")
	_, err = p.Import(context.Background(), ImportRequest{
		CorpusPath: path,
		OpenStore: func(ctx context.Context) (storage.BulkImporter, error) {
			return nil, configErr
		},
	})
	assert.ErrorIs(t, err, configErr)

	_, err = p.Import(context.Background(), ImportRequest{CorpusPath: path})
	assert.ErrorIs(t, err, importer.ErrStoreRequired)
}

func TestPipeline_BuildThenImportLocal(t *testing.T) {
	docs := writeSources(t)
	out := filepath.Join(t.TempDir(), "corpus.jsonl")
	db := filepath.Join(t.TempDir(), "db")
	ctx := context.Background()

	p, err := NewPipeline()
	require.NoError(t, err)
	assembly, err := p.Build(ctx, BuildRequest{DocumentsDir: docs, OutPath: out})
	require.NoError(t, err)

	open := func(ctx context.Context) (storage.BulkImporter, error) { return badger.Open(db) }
	_, err = p.Import(ctx, ImportRequest{CorpusPath: out, OpenStore: open})
	require.NoError(t, err)

	repo, err := badger.Open(db)
	require.NoError(t, err)
	defer repo.Close()

	count, err := repo.CountDocuments(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(assembly.Records), count)

	doc, err := repo.GetDocument(ctx, "PCC30-01-30-01-085")
	require.NoError(t, err)
	assert.Equal(t, "portland", doc.Metadata.City)
}
