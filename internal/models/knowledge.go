package models

import "time"

const (
	CategoryBilling   = "billing"
	CategoryTechnical = "technical"
	CategoryGeneral   = "general"
	CategoryShipping  = "shipping"
	CategoryReturns   = "returns"
)

// KnowledgeCategories lists the valid knowledge-base categories.
var KnowledgeCategories = []string{
	CategoryBilling,
	CategoryTechnical,
	CategoryGeneral,
	CategoryShipping,
	CategoryReturns,
}

func ValidCategory(c string) bool {
	for _, k := range KnowledgeCategories {
		if c == k {
			return true
		}
	}
	return false
}

// KnowledgeBaseEntry is a normalized knowledge-base hit. Relevance is
// higher-is-better in [0,1]; Distance is the engine's raw lower-is-closer
// score and is not guaranteed to be an exact inverse of Relevance.
type KnowledgeBaseEntry struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Category    string    `json:"category"`
	Priority    string    `json:"priority"`
	ProductType string    `json:"product_type,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	LastUpdated time.Time `json:"last_updated"`
	Relevance   float64   `json:"relevance"`
	Distance    float64   `json:"distance"`
}

const (
	DefaultSearchLimit        = 10
	DefaultRelevanceThreshold = 0.7
)

// SearchFilters constrain a semantic search. Category, Priority and
// ProductType are exact-match constraints combined with AND semantics;
// RelevanceThreshold is an inclusive lower bound applied by the engine.
type SearchFilters struct {
	Category           string  `json:"category,omitempty"`
	Priority           string  `json:"priority,omitempty"`
	ProductType        string  `json:"product_type,omitempty"`
	Limit              int     `json:"limit,omitempty"`
	RelevanceThreshold float64 `json:"relevance_threshold,omitempty"`
}

// Normalize applies the documented defaults.
func (f SearchFilters) Normalize() SearchFilters {
	if f.Limit <= 0 {
		f.Limit = DefaultSearchLimit
	}
	if f.RelevanceThreshold <= 0 {
		f.RelevanceThreshold = DefaultRelevanceThreshold
	}
	return f
}
