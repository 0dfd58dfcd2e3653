package discovery

import (
	"bytes"
	"encoding/json"

	"cloud.google.com/go/discoveryengine/apiv1beta/discoveryenginepb"
	"github.com/tenantfirstaid/lawcorpus/storage"
)

// toProto converts a storage.Document to the Discovery Engine shape. Metadata goes
// into JSON data so the retriever's city and state filters can use it; the section
// text is the raw content.
func toProto(doc storage.Document) (*discoveryenginepb.Document, error) {
	var meta bytes.Buffer
	enc := json.NewEncoder(&meta)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc.Metadata); err != nil {
		return nil, err
	}

	mimeType := doc.MimeType
	if mimeType == "" {
		mimeType = storage.MimeTypeText
	}

	return &discoveryenginepb.Document{
		Id: doc.ID,
		Data: &discoveryenginepb.Document_JsonData{
			JsonData: string(bytes.TrimRight(meta.Bytes(), "\n")),
		},
		Content: &discoveryenginepb.Document_Content{
			Content: &discoveryenginepb.Document_Content_RawBytes{
				RawBytes: doc.Content,
			},
			MimeType: mimeType,
		},
	}, nil
}
