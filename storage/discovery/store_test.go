package discovery

import (
	"context"
	"errors"
	"testing"

	"cloud.google.com/go/discoveryengine/apiv1beta/discoveryenginepb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tenantfirstaid/lawcorpus/storage"
	"google.golang.org/genproto/googleapis/rpc/status"
)

const testParent = "projects/p/locations/global/dataStores/ds/branches/0"

func TestImportDocuments_Request(t *testing.T) {
	var got *discoveryenginepb.ImportDocumentsRequest
	s := newStore(testParent, func(ctx context.Context, req *discoveryenginepb.ImportDocumentsRequest) (*discoveryenginepb.ImportDocumentsResponse, error) {
		got = req
		return &discoveryenginepb.ImportDocumentsResponse{}, nil
	})

	docs := []storage.Document{{
		ID:       "PCC30-01-30-01-085",
		Metadata: storage.Metadata{Title: "Renter <Protections> & Relocation", City: "portland", State: "or"},
		Content:  []byte("30.01.085 Portland Renter Additional Protections."),
		MimeType: storage.MimeTypeText,
	}}

	result, err := s.ImportDocuments(context.Background(), storage.ModeIncremental, docs)
	require.NoError(t, err)
	assert.Empty(t, result.ErrorSamples)

	require.NotNil(t, got)
	assert.Equal(t, testParent, got.GetParent())
	assert.Equal(t, discoveryenginepb.ImportDocumentsRequest_INCREMENTAL, got.GetReconciliationMode())

	pbDocs := got.GetInlineSource().GetDocuments()
	require.Len(t, pbDocs, 1)
	assert.Equal(t, "PCC30-01-30-01-085", pbDocs[0].GetId())
	assert.JSONEq(t,
		`{"title":"Renter <Protections> & Relocation","city":"portland","state":"or"}`,
		pbDocs[0].GetJsonData())
	assert.Contains(t, pbDocs[0].GetJsonData(), "<Protections> &", "metadata is not HTML-escaped")
	assert.Equal(t, []byte("30.01.085 Portland Renter Additional Protections."), pbDocs[0].GetContent().GetRawBytes())
	assert.Equal(t, "text/plain", pbDocs[0].GetContent().GetMimeType())
}

func TestImportDocuments_ErrorSamples(t *testing.T) {
	s := newStore(testParent, func(ctx context.Context, req *discoveryenginepb.ImportDocumentsRequest) (*discoveryenginepb.ImportDocumentsResponse, error) {
		return &discoveryenginepb.ImportDocumentsResponse{
			ErrorSamples: []*status.Status{
				{Code: 3, Message: "document ORS090-90-100 content too large"},
				{Code: 3, Message: "invalid json_data"},
			},
		}, nil
	})

	result, err := s.ImportDocuments(context.Background(), storage.ModeIncremental, []storage.Document{{ID: "a"}})
	require.NoError(t, err)
	require.Len(t, result.ErrorSamples, 2)
	assert.Equal(t, "document ORS090-90-100 content too large", result.ErrorSamples[0].Message)
}

func TestImportDocuments_TransportError(t *testing.T) {
	unavailable := errors.New("rpc error: code = Unavailable")
	s := newStore(testParent, func(ctx context.Context, req *discoveryenginepb.ImportDocumentsRequest) (*discoveryenginepb.ImportDocumentsResponse, error) {
		return nil, unavailable
	})

	_, err := s.ImportDocuments(context.Background(), storage.ModeIncremental, []storage.Document{{ID: "a"}})
	assert.ErrorIs(t, err, unavailable)
}

func TestImportDocuments_UnsupportedMode(t *testing.T) {
	calls := 0
	s := newStore(testParent, func(ctx context.Context, req *discoveryenginepb.ImportDocumentsRequest) (*discoveryenginepb.ImportDocumentsResponse, error) {
		calls++
		return &discoveryenginepb.ImportDocumentsResponse{}, nil
	})

	_, err := s.ImportDocuments(context.Background(), storage.ReconciliationMode(7), nil)
	assert.ErrorIs(t, err, storage.ErrUnsupportedMode)
	assert.Zero(t, calls)
}

func TestStore_TargetAndClose(t *testing.T) {
	s := newStore(testParent, nil)
	assert.Equal(t, testParent, s.Target())
	assert.NoError(t, s.Close())
}

func TestNew_ConfigErrorBeforeConnect(t *testing.T) {
	_, err := New(context.Background(), Config{Project: "p", DataStore: "ds"})
	assert.ErrorIs(t, err, ErrCredentialsRequired)
}
