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

// Package ai provides the embedding abstraction used when documents are imported
// into the local store.
//
// Embedding is optional. When configured, newly created or changed documents are
// embedded in one call per import batch, retried with exponential backoff, and the
// vectors are normalized to unit length before they are stored.
//
// Implementation packages:
//   - ai/openai: OpenAI-compatible endpoints (Ollama, LocalAI, vLLM) via langchaingo
//   - ai/mock: deterministic test double
//
// # Usage
//
//	cfg := ai.NewConfig(ai.WithEmbeddingHost("http://localhost:11434"))
//	embedder, err := openai.NewEmbedder(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	vectors, err := embedder.EmbedTexts(ctx, texts)
package ai
