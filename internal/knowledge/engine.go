package knowledge

import (
	"context"

	"github.com/sayantan007pal/Customer-Support-app-using-mindsdb/internal/models"
)

// RawHit is one match as produced by the underlying semantic-search engine.
// Metadata is an opaque blob; the Retriever owns all normalization.
type RawHit struct {
	ID        string
	Content   string
	Relevance float64
	Distance  float64
	Metadata  map[string]any
}

// SearchEngine is the underlying vector-search engine. It applies the
// relevance threshold (inclusive) and the exact-match filters itself, orders
// by ascending distance, and caps results at filters.Limit.
type SearchEngine interface {
	Search(ctx context.Context, query string, filters models.SearchFilters) ([]RawHit, error)
}

// Indexer ingests entries into the engine's store.
type Indexer interface {
	Index(ctx context.Context, entry models.KnowledgeBaseEntry) error
}
