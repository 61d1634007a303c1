// Package memory is an in-memory vector store using brute-force cosine
// similarity. The catalog is small enough that a linear scan beats any index
// structure.
package memory

import (
	"errors"
	"sort"

	"github.com/motobot-ai/server/internal/catalog"
	"github.com/motobot-ai/server/internal/vectorstore"
)

// Store keeps documents and their vectors side by side.
type Store struct {
	dimension int
	vectors   [][]float64
	docs      []catalog.Document
}

func NewStore() *Store { return &Store{} }

// Init drops any previous contents and fixes the vector dimension.
func (s *Store) Init(dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	s.dimension = dimension
	s.vectors = nil
	s.docs = nil
	return nil
}

func (s *Store) Upsert(docs []catalog.Document, vectors [][]float64) error {
	if len(docs) != len(vectors) {
		return errors.New("docs and vectors length mismatch")
	}
	for _, v := range vectors {
		if len(v) != s.dimension {
			return errors.New("vector dimension mismatch")
		}
	}
	s.docs = append(s.docs, docs...)
	s.vectors = append(s.vectors, vectors...)
	return nil
}

// Search returns up to topK documents in descending similarity order.
// Vectors are assumed L2-normalized, so the dot product is the cosine.
// Defaulting topK is the caller's concern; zero or negative is rejected.
func (s *Store) Search(vector []float64, topK int) ([]vectorstore.SearchResult, error) {
	if topK <= 0 {
		return nil, errors.New("invalid topK")
	}
	idxs := make([]int, len(s.vectors))
	scores := make([]float64, len(s.vectors))
	for i := range s.vectors {
		idxs[i] = i
		scores[i] = dot(s.vectors[i], vector)
	}
	sort.SliceStable(idxs, func(a, b int) bool { return scores[idxs[a]] > scores[idxs[b]] })
	if topK > len(idxs) {
		topK = len(idxs)
	}
	results := make([]vectorstore.SearchResult, 0, topK)
	for i := 0; i < topK; i++ {
		j := idxs[i]
		results = append(results, vectorstore.SearchResult{Document: s.docs[j], Score: scores[j]})
	}
	return results, nil
}

// Clear drops everything. Clearing an already empty store is not an error.
func (s *Store) Clear() error {
	s.vectors = nil
	s.docs = nil
	return nil
}

func dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

var _ vectorstore.Store = (*Store)(nil)
