// Package vectorstore defines the nearest-neighbor index boundary. The index
// always holds exactly the current catalog's documents; it is dropped and
// rebuilt as a whole, never partially updated.
package vectorstore

import "github.com/motobot-ai/server/internal/catalog"

// SearchResult represents a matching document with a similarity score.
type SearchResult struct {
	Document catalog.Document
	Score    float64
}

// Store holds document vectors and supports similarity search.
type Store interface {
	Init(dimension int) error
	Upsert(docs []catalog.Document, vectors [][]float64) error
	Search(vector []float64, topK int) ([]SearchResult, error)
	Clear() error
}
