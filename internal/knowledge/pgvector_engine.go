package knowledge

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sayantan007pal/Customer-Support-app-using-mindsdb/internal/models"
	"github.com/sayantan007pal/Customer-Support-app-using-mindsdb/internal/providers/ai"
)

// KnowledgeChunk is the stored form of a knowledge-base entry. Category,
// priority and product_type are duplicated out of the metadata blob as plain
// columns so filters stay index-friendly.
type KnowledgeChunk struct {
	ID          string          `gorm:"column:id;type:uuid;primaryKey"`
	Content     string          `gorm:"column:content;type:text"`
	Category    string          `gorm:"column:category;type:text;index"`
	Priority    string          `gorm:"column:priority;type:text"`
	ProductType string          `gorm:"column:product_type;type:text"`
	Tags        pq.StringArray  `gorm:"column:tags;type:text[]"`
	Metadata    datatypes.JSON  `gorm:"column:metadata;type:jsonb"`
	Embedding   pgvector.Vector `gorm:"column:embedding;type:vector(768)"`
	LastUpdated time.Time       `gorm:"column:last_updated;type:timestamptz"`
}

func (KnowledgeChunk) TableName() string { return "knowledge_chunks" }

// PgvectorEngine searches knowledge_chunks by cosine distance. Relevance is
// reported as 1 - distance, clamped to [0,1].
type PgvectorEngine struct {
	db       *gorm.DB
	embedder ai.Embedder
}

func NewPgvectorEngine(db *gorm.DB, embedder ai.Embedder) *PgvectorEngine {
	return &PgvectorEngine{db: db, embedder: embedder}
}

type hitRow struct {
	ID        string
	Content   string
	Metadata  datatypes.JSON
	Relevance float64
	Distance  float64
}

func (e *PgvectorEngine) Search(ctx context.Context, query string, filters models.SearchFilters) ([]RawHit, error) {
	vec, err := e.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	qv := pgvector.NewVector(vec)

	q := e.db.WithContext(ctx).
		Model(&KnowledgeChunk{}).
		Select("id, content, metadata, 1 - (embedding <=> ?) AS relevance, embedding <=> ? AS distance", qv, qv).
		Where("1 - (embedding <=> ?) >= ?", qv, filters.RelevanceThreshold)

	if filters.Category != "" {
		q = q.Where("category = ?", filters.Category)
	}
	if filters.Priority != "" {
		q = q.Where("priority = ?", filters.Priority)
	}
	if filters.ProductType != "" {
		q = q.Where("product_type = ?", filters.ProductType)
	}

	var rows []hitRow
	if err := q.Order("distance ASC").Limit(filters.Limit).Scan(&rows).Error; err != nil {
		return nil, err
	}

	hits := make([]RawHit, 0, len(rows))
	for _, r := range rows {
		var md map[string]any
		if len(r.Metadata) > 0 {
			// malformed blobs degrade to nil metadata, not an error
			_ = json.Unmarshal(r.Metadata, &md)
		}
		hits = append(hits, RawHit{
			ID:        r.ID,
			Content:   r.Content,
			Relevance: clamp01(r.Relevance),
			Distance:  r.Distance,
			Metadata:  md,
		})
	}
	return hits, nil
}

func (e *PgvectorEngine) Index(ctx context.Context, entry models.KnowledgeBaseEntry) error {
	vec, err := e.embedder.Embed(ctx, entry.Title+"\n\n"+entry.Content)
	if err != nil {
		return fmt.Errorf("embed entry: %w", err)
	}

	blob, err := json.Marshal(map[string]any{
		"title":        entry.Title,
		"category":     entry.Category,
		"priority":     entry.Priority,
		"product_type": entry.ProductType,
		"tags":         entry.Tags,
		"last_updated": entry.LastUpdated.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	chunk := KnowledgeChunk{
		ID:          entry.ID,
		Content:     entry.Content,
		Category:    entry.Category,
		Priority:    entry.Priority,
		ProductType: entry.ProductType,
		Tags:        pq.StringArray(entry.Tags),
		Metadata:    datatypes.JSON(blob),
		Embedding:   pgvector.NewVector(vec),
		LastUpdated: entry.LastUpdated,
	}

	return e.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&chunk).Error
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
