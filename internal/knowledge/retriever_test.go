package knowledge

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sayantan007pal/Customer-Support-app-using-mindsdb/internal/models"
	"github.com/sayantan007pal/Customer-Support-app-using-mindsdb/internal/utils"
)

type fakeEngine struct {
	hits        []RawHit
	err         error
	lastFilters models.SearchFilters
}

func (f *fakeEngine) Search(ctx context.Context, query string, filters models.SearchFilters) ([]RawHit, error) {
	f.lastFilters = filters
	return f.hits, f.err
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestSearch_AppliesFilterDefaults(t *testing.T) {
	eng := &fakeEngine{}
	r := NewRetriever(eng, quietLogger())

	if _, err := r.Search(context.Background(), "q", models.SearchFilters{}); err != nil {
		t.Fatalf("search: %v", err)
	}
	if eng.lastFilters.Limit != 10 {
		t.Errorf("default limit = %d, want 10", eng.lastFilters.Limit)
	}
	if eng.lastFilters.RelevanceThreshold != 0.7 {
		t.Errorf("default threshold = %v, want 0.7", eng.lastFilters.RelevanceThreshold)
	}
}

func TestSearch_NormalizesMetadata(t *testing.T) {
	updated := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	eng := &fakeEngine{hits: []RawHit{{
		ID:        "kb-1",
		Content:   "raw chunk text",
		Relevance: 0.91,
		Distance:  0.09,
		Metadata: map[string]any{
			"title":        "Refund policy",
			"category":     "billing",
			"priority":     "high",
			"product_type": "subscription",
			"tags":         []any{"refunds", "billing"},
			"last_updated": updated.Format(time.RFC3339),
		},
	}}}

	entries, err := NewRetriever(eng, quietLogger()).Search(context.Background(), "refund", models.SearchFilters{})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	e := entries[0]
	if e.Title != "Refund policy" || e.Category != "billing" || e.Priority != "high" {
		t.Errorf("metadata fields not extracted: %+v", e)
	}
	if e.ProductType != "subscription" {
		t.Errorf("product_type = %q", e.ProductType)
	}
	if len(e.Tags) != 2 || e.Tags[0] != "refunds" {
		t.Errorf("tags = %v", e.Tags)
	}
	if !e.LastUpdated.Equal(updated) {
		t.Errorf("last_updated = %v, want %v", e.LastUpdated, updated)
	}
	if e.Content != "raw chunk text" {
		t.Errorf("content should fall back to the raw chunk, got %q", e.Content)
	}
}

func TestSearch_FailsSoftOnMalformedMetadata(t *testing.T) {
	eng := &fakeEngine{hits: []RawHit{{
		ID:        "kb-2",
		Content:   "First line of the chunk\nand the rest of it.",
		Relevance: 0.8,
		Metadata: map[string]any{
			"title":        42,            // wrong type
			"category":     "not-a-real",  // unknown value
			"priority":     true,          // wrong type
			"tags":         "not-a-slice", // wrong type
			"last_updated": "garbage",     // unparseable
		},
	}}}

	entries, err := NewRetriever(eng, quietLogger()).Search(context.Background(), "q", models.SearchFilters{})
	if err != nil {
		t.Fatalf("malformed metadata must not fail the search: %v", err)
	}

	e := entries[0]
	if e.Title != "First line of the chunk" {
		t.Errorf("title fallback = %q", e.Title)
	}
	if e.Category != models.CategoryGeneral {
		t.Errorf("category fallback = %q, want general", e.Category)
	}
	if e.Priority != models.PriorityMedium {
		t.Errorf("priority fallback = %q, want medium", e.Priority)
	}
	if e.Tags != nil {
		t.Errorf("tags fallback = %v, want nil", e.Tags)
	}
	if !e.LastUpdated.IsZero() {
		t.Errorf("last_updated fallback = %v, want zero", e.LastUpdated)
	}
}

func TestSearch_NilMetadata(t *testing.T) {
	eng := &fakeEngine{hits: []RawHit{{ID: "kb-3", Content: "", Relevance: 0.75}}}

	entries, err := NewRetriever(eng, quietLogger()).Search(context.Background(), "q", models.SearchFilters{})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if entries[0].Title != "Untitled entry" {
		t.Errorf("empty content title = %q", entries[0].Title)
	}
}

func TestSearch_OrdersByDescendingRelevance(t *testing.T) {
	eng := &fakeEngine{hits: []RawHit{
		{ID: "a", Content: "a", Relevance: 0.72},
		{ID: "b", Content: "b", Relevance: 0.95},
		{ID: "c", Content: "c", Relevance: 0.81},
	}}

	entries, err := NewRetriever(eng, quietLogger()).Search(context.Background(), "q", models.SearchFilters{})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	want := []string{"b", "c", "a"}
	for i, id := range want {
		if entries[i].ID != id {
			t.Fatalf("order[%d] = %q, want %q", i, entries[i].ID, id)
		}
	}
}

func TestSearch_EnforcesLimit(t *testing.T) {
	// a misbehaving engine returning more than Limit still gets capped
	eng := &fakeEngine{hits: []RawHit{
		{ID: "a", Relevance: 0.9},
		{ID: "b", Relevance: 0.8},
		{ID: "c", Relevance: 0.7},
	}}

	entries, err := NewRetriever(eng, quietLogger()).Search(context.Background(), "q", models.SearchFilters{Limit: 2, RelevanceThreshold: 0.7})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
}

func TestSearch_EngineFailure(t *testing.T) {
	cause := errors.New("connection refused")
	eng := &fakeEngine{err: cause}

	_, err := NewRetriever(eng, quietLogger()).Search(context.Background(), "q", models.SearchFilters{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !utils.IsCode(err, utils.CodeUnavailable) {
		t.Errorf("expected UNAVAILABLE, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Error("original cause lost from the chain")
	}
}

func TestSearch_RelevanceClamped(t *testing.T) {
	eng := &fakeEngine{hits: []RawHit{
		{ID: "a", Relevance: 1.2},
		{ID: "b", Relevance: -0.1},
	}}

	entries, err := NewRetriever(eng, quietLogger()).Search(context.Background(), "q", models.SearchFilters{})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	for _, e := range entries {
		if e.Relevance < 0 || e.Relevance > 1 {
			t.Errorf("relevance %v outside [0,1]", e.Relevance)
		}
	}
}
