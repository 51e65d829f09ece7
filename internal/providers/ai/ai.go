package ai

import (
	"context"

	"github.com/sayantan007pal/Customer-Support-app-using-mindsdb/internal/models"
)

// Classifier categorizes a raw user message into a support topic.
type Classifier interface {
	Classify(ctx context.Context, message string) (models.QueryClassification, error)
}

// Generator produces the natural-language answer for a message given the
// retrieved knowledge-base entries and the classification.
type Generator interface {
	Generate(ctx context.Context, message string, entries []models.KnowledgeBaseEntry, classification models.QueryClassification) (models.ResponseGeneration, error)
}

// Embedder turns text into a vector for semantic search.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
