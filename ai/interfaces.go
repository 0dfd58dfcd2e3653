package ai

import "context"

// Embedder generates vector embeddings from text.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates embeddings for several texts in one call.
	// The returned slice is in input order.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}
