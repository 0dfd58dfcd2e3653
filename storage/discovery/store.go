package discovery

import (
	"context"
	"fmt"
	"log/slog"

	discoveryengine "cloud.google.com/go/discoveryengine/apiv1beta"
	"cloud.google.com/go/discoveryengine/apiv1beta/discoveryenginepb"
	"github.com/tenantfirstaid/lawcorpus/storage"
	"google.golang.org/api/option"
)

// importFunc issues one import request and waits for the operation to finish.
type importFunc func(ctx context.Context, req *discoveryenginepb.ImportDocumentsRequest) (*discoveryenginepb.ImportDocumentsResponse, error)

// Store is a storage.BulkImporter for one Discovery Engine data store branch.
type Store struct {
	parent   string
	client   *discoveryengine.DocumentClient
	doImport importFunc
	logger   *slog.Logger
}

var _ storage.BulkImporter = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger.With("component", "discovery-store")
		}
	}
}

// New validates cfg and connects a document client to the data store.
// Configuration errors are returned before any connection is made.
func New(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	clientOpts := []option.ClientOption{option.WithCredentialsFile(cfg.CredentialsFile)}
	if endpoint := cfg.Endpoint(); endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(endpoint))
	}

	client, err := discoveryengine.NewDocumentClient(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create discovery engine client: %w", err)
	}

	s := newStore(cfg.Parent(), nil, opts...)
	s.client = client
	s.doImport = s.importAndWait
	return s, nil
}

func newStore(parent string, fn importFunc, opts ...Option) *Store {
	s := &Store{
		parent:   parent,
		doImport: fn,
		logger:   slog.Default().With("component", "discovery-store"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Target implements storage.BulkImporter.
func (s *Store) Target() string {
	return s.parent
}

// Close implements storage.BulkImporter.
func (s *Store) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

// ImportDocuments implements storage.BulkImporter.
// Discovery Engine does not report created and updated counts; only error samples
// are returned.
func (s *Store) ImportDocuments(ctx context.Context, mode storage.ReconciliationMode, docs []storage.Document) (*storage.ImportResult, error) {
	if mode != storage.ModeIncremental {
		return nil, fmt.Errorf("%w: %s", storage.ErrUnsupportedMode, mode)
	}

	pbDocs := make([]*discoveryenginepb.Document, 0, len(docs))
	for _, doc := range docs {
		pb, err := toProto(doc)
		if err != nil {
			return nil, fmt.Errorf("convert %s: %w", doc.ID, err)
		}
		pbDocs = append(pbDocs, pb)
	}

	req := &discoveryenginepb.ImportDocumentsRequest{
		Parent: s.parent,
		Source: &discoveryenginepb.ImportDocumentsRequest_InlineSource_{
			InlineSource: &discoveryenginepb.ImportDocumentsRequest_InlineSource{
				Documents: pbDocs,
			},
		},
		ReconciliationMode: discoveryenginepb.ImportDocumentsRequest_INCREMENTAL,
	}

	s.logger.Debug("importing documents", "parent", s.parent, "count", len(pbDocs))
	resp, err := s.doImport(ctx, req)
	if err != nil {
		return nil, err
	}

	result := &storage.ImportResult{}
	for _, sample := range resp.GetErrorSamples() {
		result.ErrorSamples = append(result.ErrorSamples, storage.ErrorSample{Message: sample.GetMessage()})
	}
	return result, nil
}

func (s *Store) importAndWait(ctx context.Context, req *discoveryenginepb.ImportDocumentsRequest) (*discoveryenginepb.ImportDocumentsResponse, error) {
	op, err := s.client.ImportDocuments(ctx, req)
	if err != nil {
		return nil, err
	}
	return op.Wait(ctx)
}
