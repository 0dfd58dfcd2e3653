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

// Package storage defines the bulk-import contract between the importer and the
// document stores it writes to.
//
// A store receives bounded lists of documents together with an explicit
// reconciliation mode and reports per-document error samples alongside counts.
// Implementations:
//
//   - storage/discovery: Vertex AI Search (Discovery Engine) data stores
//   - storage/badger: a local BadgerDB directory, for offline runs and tests
//   - storage/mock: an in-memory test double
//
// # Usage
//
//	store, err := badger.NewDocumentRepository(backend)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
//	result, err := store.ImportDocuments(ctx, storage.ModeIncremental, docs)
//
// # Context Support
//
// ImportDocuments blocks until the store has finished the batch. Callers bound it
// with a context deadline.
package storage
