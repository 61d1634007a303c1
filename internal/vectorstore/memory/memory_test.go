package memory

import (
	"testing"

	"github.com/motobot-ai/server/internal/catalog"
)

func TestInitRejectsInvalidDimension(t *testing.T) {
	if err := NewStore().Init(0); err == nil {
		t.Fatal("expected error for zero dimension")
	}
}

func TestUpsertRejectsMismatches(t *testing.T) {
	s := NewStore()
	if err := s.Init(2); err != nil {
		t.Fatalf("Init: %v", err)
	}
	docs := []catalog.Document{{ID: 0, Text: "a"}}
	if err := s.Upsert(docs, nil); err == nil {
		t.Error("expected error for docs/vectors length mismatch")
	}
	if err := s.Upsert(docs, [][]float64{{1, 2, 3}}); err == nil {
		t.Error("expected error for vector dimension mismatch")
	}
}

func TestSearchReturnsDescendingSimilarity(t *testing.T) {
	s := NewStore()
	if err := s.Init(2); err != nil {
		t.Fatalf("Init: %v", err)
	}
	docs := []catalog.Document{
		{ID: 0, Text: "east"},
		{ID: 1, Text: "north"},
		{ID: 2, Text: "diagonal"},
	}
	vectors := [][]float64{
		{1, 0},
		{0, 1},
		{0.7071, 0.7071},
	}
	if err := s.Upsert(docs, vectors); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	results, err := s.Search([]float64{1, 0}, 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Document.ID != 0 {
		t.Errorf("best match ID = %d, want 0", results[0].Document.ID)
	}
	if results[1].Document.ID != 2 {
		t.Errorf("second match ID = %d, want 2", results[1].Document.ID)
	}
	if results[0].Score < results[1].Score {
		t.Error("results not in descending score order")
	}
}

func TestSearchRejectsInvalidTopK(t *testing.T) {
	s := NewStore()
	if err := s.Init(2); err != nil {
		t.Fatalf("Init: %v", err)
	}
	for _, topK := range []int{0, -1} {
		if _, err := s.Search([]float64{1, 0}, topK); err == nil {
			t.Errorf("expected error for topK=%d", topK)
		}
	}
}

func TestSearchCapsAtStoredCount(t *testing.T) {
	s := NewStore()
	if err := s.Init(2); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := s.Upsert([]catalog.Document{{ID: 0}}, [][]float64{{1, 0}}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	results, err := s.Search([]float64{1, 0}, 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("expected 1 result, got %d", len(results))
	}
}

func TestClearIsIdempotent(t *testing.T) {
	s := NewStore()
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear on empty store: %v", err)
	}
	if err := s.Init(1); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := s.Upsert([]catalog.Document{{ID: 0}}, [][]float64{{1}}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	results, err := s.Search([]float64{1}, 3)
	if err != nil {
		t.Fatalf("Search after clear: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected empty result set after clear, got %d", len(results))
	}
}
