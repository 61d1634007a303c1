// Package retrieval ties the embedder and the vector store into the index
// build and query operations.
package retrieval

import (
	"context"
	"fmt"
	"strings"

	"github.com/motobot-ai/server/internal/catalog"
	"github.com/motobot-ai/server/internal/embedding"
	"github.com/motobot-ai/server/internal/vectorstore"
	logx "github.com/motobot-ai/server/pkg/logger"
)

// DefaultTopK is the number of documents handed to the prompt composer.
const DefaultTopK = 3

// Service owns the process-wide embedder and index. Both are built once at
// startup and read-only afterwards.
type Service struct {
	embedder embedding.Embedder
	store    vectorstore.Store
}

func NewService(embedder embedding.Embedder, store vectorstore.Store) *Service {
	return &Service{embedder: embedder, store: store}
}

// BuildIndex performs a full rebuild from the catalog records: drop the old
// index, prepare the embedder on the document corpus, embed every document
// and insert them in a single batch. There is no incremental update path.
func (s *Service) BuildIndex(ctx context.Context, records []catalog.Record) error {
	docs := catalog.Documents(records)
	if len(docs) == 0 {
		return fmt.Errorf("empty catalog")
	}
	corpus := make([]string, len(docs))
	for i, d := range docs {
		corpus[i] = d.Text
	}

	if err := s.embedder.Prepare(corpus); err != nil {
		return fmt.Errorf("prepare embedder: %w", err)
	}

	vectors := make([][]float64, len(docs))
	for i, d := range docs {
		vec, err := s.embedder.Embed(ctx, d.Text)
		if err != nil {
			return fmt.Errorf("embed document %d: %w", d.ID, err)
		}
		vectors[i] = vec
	}

	// Dropping a not-yet-existing index is fine.
	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("clear index: %w", err)
	}
	if err := s.store.Init(s.embedder.Dimension()); err != nil {
		return fmt.Errorf("init index: %w", err)
	}
	if err := s.store.Upsert(docs, vectors); err != nil {
		return fmt.Errorf("insert documents: %w", err)
	}

	logx.Debug().
		Int("documents", len(docs)).
		Int("dimension", s.embedder.Dimension()).
		Str("embedder", s.embedder.Name()).
		Msg("catalog index built")
	return nil
}

// Retrieve embeds the query, finds the topK most similar documents and
// returns their texts joined by newlines, best match first. No minimum
// similarity is applied.
func (s *Service) Retrieve(ctx context.Context, query string, topK int) (string, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}
	vec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return "", fmt.Errorf("embed query: %w", err)
	}
	results, err := s.store.Search(vec, topK)
	if err != nil {
		return "", fmt.Errorf("search index: %w", err)
	}
	texts := make([]string, 0, len(results))
	for _, r := range results {
		texts = append(texts, r.Document.Text)
	}
	return strings.Join(texts, "\n"), nil
}
