package knowledge

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sayantan007pal/Customer-Support-app-using-mindsdb/internal/models"
	"github.com/sayantan007pal/Customer-Support-app-using-mindsdb/internal/utils"
)

// Retriever runs filtered semantic searches and normalizes raw engine hits
// into KnowledgeBaseEntry values.
type Retriever interface {
	Search(ctx context.Context, query string, filters models.SearchFilters) ([]models.KnowledgeBaseEntry, error)
}

type retriever struct {
	engine SearchEngine
	log    *logrus.Logger
}

func NewRetriever(engine SearchEngine, log *logrus.Logger) Retriever {
	return &retriever{engine: engine, log: log}
}

func (r *retriever) Search(ctx context.Context, query string, filters models.SearchFilters) ([]models.KnowledgeBaseEntry, error) {
	const op = "Retriever.Search"

	filters = filters.Normalize()

	hits, err := r.engine.Search(ctx, query, filters)
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "knowledge search failed", err)
	}

	entries := make([]models.KnowledgeBaseEntry, 0, len(hits))
	for _, h := range hits {
		entries = append(entries, normalizeHit(h))
	}

	// engine returns ascending distance; re-assert descending relevance,
	// stable so insertion order breaks ties
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Relevance > entries[j].Relevance
	})

	if len(entries) > filters.Limit {
		entries = entries[:filters.Limit]
	}

	r.log.WithFields(logrus.Fields{
		"results":   len(entries),
		"category":  filters.Category,
		"threshold": filters.RelevanceThreshold,
	}).Debug("knowledge search")

	return entries, nil
}

// normalizeHit maps a raw hit onto the entry shape. Every metadata field is
// optional: missing or malformed values fall back to defaults instead of
// failing the search.
func normalizeHit(h RawHit) models.KnowledgeBaseEntry {
	e := models.KnowledgeBaseEntry{
		ID:          h.ID,
		Content:     stringField(h.Metadata, "content"),
		Title:       stringField(h.Metadata, "title"),
		Category:    strings.ToLower(stringField(h.Metadata, "category")),
		Priority:    strings.ToLower(stringField(h.Metadata, "priority")),
		ProductType: stringField(h.Metadata, "product_type"),
		Tags:        stringSliceField(h.Metadata, "tags"),
		LastUpdated: timeField(h.Metadata, "last_updated"),
		Relevance:   clamp01(h.Relevance),
		Distance:    h.Distance,
	}

	if e.Content == "" {
		e.Content = h.Content
	}
	if e.Title == "" {
		e.Title = titleFromContent(e.Content)
	}
	if !models.ValidCategory(e.Category) {
		e.Category = models.CategoryGeneral
	}
	switch e.Priority {
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
	default:
		e.Priority = models.PriorityMedium
	}
	return e
}

func titleFromContent(content string) string {
	line := content
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSpace(line)
	if len(line) > 80 {
		line = line[:80]
	}
	if line == "" {
		return "Untitled entry"
	}
	return line
}

func stringField(md map[string]any, key string) string {
	if md == nil {
		return ""
	}
	if s, ok := md[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func stringSliceField(md map[string]any, key string) []string {
	if md == nil {
		return nil
	}
	switch v := md[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func timeField(md map[string]any, key string) time.Time {
	s := stringField(md, key)
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
