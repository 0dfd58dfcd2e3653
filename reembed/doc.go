// Package reembed regenerates the vectors of documents held by a local store,
// for example after switching embedding models.
//
// Imports skip documents whose content is unchanged, so they never pick up a
// new model on their own. This package walks every stored document in batches,
// embeds its content with retry and exponential backoff, normalizes the vectors
// for cosine similarity and writes them back.
package reembed
