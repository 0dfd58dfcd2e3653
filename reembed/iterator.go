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

package reembed

import (
	"context"

	"github.com/tenantfirstaid/lawcorpus/storage"
)

const (
	// DefaultBatchSize is the default number of documents embedded per call
	DefaultBatchSize = 100
)

// DocumentIterator walks every stored document in batches.
type DocumentIterator struct {
	store     storage.VectorRewriter
	batchSize int
}

// NewDocumentIterator creates a new document iterator.
// A batchSize <= 0 uses DefaultBatchSize.
func NewDocumentIterator(store storage.VectorRewriter, batchSize int) *DocumentIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &DocumentIterator{
		store:     store,
		batchSize: batchSize,
	}
}

// ForEach calls fn for each batch of documents in id order.
// Iteration stops on the first error from fn. Context cancellation is checked
// between batches.
func (it *DocumentIterator) ForEach(ctx context.Context, fn func([]*storage.StoredDocument) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	docs, err := it.store.ListDocuments(ctx)
	if err != nil {
		return err
	}

	for i := 0; i < len(docs); i += it.batchSize {
		end := min(i+it.batchSize, len(docs))

		if err := fn(docs[i:end]); err != nil {
			return err
		}

		if err := ctx.Err(); err != nil {
			return err
		}
	}

	return nil
}
