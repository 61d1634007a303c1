// Package embedding defines the text-to-vector boundary shared by the index
// build and query paths. Both must use the same embedder so the embedding
// spaces match.
package embedding

import "context"

// Embedder converts free text into a numeric vector representation.
// Implementations may require a preparation phase over the corpus.
type Embedder interface {
	Name() string
	Prepare(corpus []string) error
	Dimension() int
	Embed(ctx context.Context, text string) ([]float64, error)
}
