package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sayantan007pal/Customer-Support-app-using-mindsdb/internal/knowledge"
	"github.com/sayantan007pal/Customer-Support-app-using-mindsdb/internal/models"
	"github.com/sayantan007pal/Customer-Support-app-using-mindsdb/internal/utils"
)

type KnowledgeService interface {
	Ingest(ctx context.Context, entry models.KnowledgeBaseEntry) (models.KnowledgeBaseEntry, error)
	Search(ctx context.Context, query string, filters models.SearchFilters) ([]models.KnowledgeBaseEntry, error)
}

type knowledgeService struct {
	indexer   knowledge.Indexer
	retriever knowledge.Retriever
	log       *logrus.Logger
}

func NewKnowledgeService(indexer knowledge.Indexer, retriever knowledge.Retriever, log *logrus.Logger) KnowledgeService {
	return &knowledgeService{indexer: indexer, retriever: retriever, log: log}
}

func (s *knowledgeService) Ingest(ctx context.Context, entry models.KnowledgeBaseEntry) (models.KnowledgeBaseEntry, error) {
	const op = "KnowledgeService.Ingest"

	if strings.TrimSpace(entry.Title) == "" || strings.TrimSpace(entry.Content) == "" {
		return models.KnowledgeBaseEntry{}, utils.E(utils.CodeInvalidArgument, op, "title and content are required", nil)
	}
	entry.Category = strings.ToLower(strings.TrimSpace(entry.Category))
	if !models.ValidCategory(entry.Category) {
		return models.KnowledgeBaseEntry{}, utils.E(utils.CodeInvalidArgument, op, "unknown category", nil)
	}
	switch entry.Priority {
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
	case "":
		entry.Priority = models.PriorityMedium
	default:
		return models.KnowledgeBaseEntry{}, utils.E(utils.CodeInvalidArgument, op, "unknown priority", nil)
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.LastUpdated.IsZero() {
		entry.LastUpdated = time.Now().UTC()
	}

	if err := s.indexer.Index(ctx, entry); err != nil {
		return models.KnowledgeBaseEntry{}, utils.E(utils.CodeInternal, op, "failed to index entry", err)
	}

	s.log.WithFields(logrus.Fields{
		"entry_id": entry.ID,
		"category": entry.Category,
	}).Info("knowledge entry indexed")

	return entry, nil
}

func (s *knowledgeService) Search(ctx context.Context, query string, filters models.SearchFilters) ([]models.KnowledgeBaseEntry, error) {
	const op = "KnowledgeService.Search"

	if strings.TrimSpace(query) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "query is required", nil)
	}
	return s.retriever.Search(ctx, query, filters)
}
