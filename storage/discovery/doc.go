// Package discovery imports documents into a Vertex AI Search (Discovery Engine)
// data store.
//
// Each call to ImportDocuments issues one inline ImportDocuments request under
// incremental reconciliation and waits for the long-running operation. Error
// samples reported by the operation are returned per document; they never fail
// the call.
//
// The target is an explicit Config; nothing is read from the environment here.
package discovery
