package badger

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/tenantfirstaid/lawcorpus/storage"
)

// documentValue is the persisted form of a storage.StoredDocument.
type documentValue struct {
	ID          string           `json:"id"`
	Metadata    storage.Metadata `json:"metadata"`
	Content     string           `json:"content"`
	MimeType    string           `json:"mime_type"`
	ContentHash string           `json:"content_hash"`
	Vector      []float32        `json:"vector,omitempty"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func marshalDocument(doc *storage.StoredDocument) ([]byte, error) {
	data, err := json.Marshal(documentValue{
		ID:          doc.ID,
		Metadata:    doc.Metadata,
		Content:     string(doc.Content),
		MimeType:    doc.MimeType,
		ContentHash: doc.ContentHash,
		Vector:      doc.Vector,
		UpdatedAt:   doc.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
	}
	return data, nil
}

func unmarshalDocument(data []byte) (*storage.StoredDocument, error) {
	var v documentValue
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
	}
	return &storage.StoredDocument{
		Document: storage.Document{
			ID:       v.ID,
			Metadata: v.Metadata,
			Content:  []byte(v.Content),
			MimeType: v.MimeType,
		},
		ContentHash: v.ContentHash,
		Vector:      v.Vector,
		UpdatedAt:   v.UpdatedAt,
	}, nil
}

func marshalRun(run *storage.ImportRun) ([]byte, error) {
	data, err := json.Marshal(run)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
	}
	return data, nil
}

func unmarshalRun(data []byte) (*storage.ImportRun, error) {
	var run storage.ImportRun
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
	}
	return &run, nil
}
