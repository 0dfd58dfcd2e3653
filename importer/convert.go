package importer

import (
	"github.com/tenantfirstaid/lawcorpus/core"
	"github.com/tenantfirstaid/lawcorpus/corpus"
	"github.com/tenantfirstaid/lawcorpus/docid"
	"github.com/tenantfirstaid/lawcorpus/storage"
)

// ToDocument converts a corpus record to the store's document shape.
// A missing city means state-wide law; a missing state defaults to core.DefaultState.
func ToDocument(rec corpus.Record) storage.Document {
	city := rec.City
	if city == "" {
		city = core.StatewideCity
	}
	state := rec.State
	if state == "" {
		state = core.DefaultState
	}

	return storage.Document{
		ID: docid.Sanitize(rec.ID),
		Metadata: storage.Metadata{
			Title: rec.Title,
			City:  city,
			State: state,
		},
		Content:  []byte(rec.Content),
		MimeType: storage.MimeTypeText,
	}
}

// ToDocuments converts records in order.
func ToDocuments(records []corpus.Record) []storage.Document {
	docs := make([]storage.Document, len(records))
	for i, rec := range records {
		docs[i] = ToDocument(rec)
	}
	return docs
}
