package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"

	"github.com/sayantan007pal/Customer-Support-app-using-mindsdb/internal/knowledge"
	"github.com/sayantan007pal/Customer-Support-app-using-mindsdb/internal/models"
	"github.com/sayantan007pal/Customer-Support-app-using-mindsdb/internal/providers/ai"
	"github.com/sayantan007pal/Customer-Support-app-using-mindsdb/internal/store"
	"github.com/sayantan007pal/Customer-Support-app-using-mindsdb/internal/utils"
)

// chatSearchLimit caps knowledge retrieval inside the pipeline; ad-hoc
// search keeps the wider default.
const chatSearchLimit = 5

type ChatService interface {
	ProcessMessage(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error)
	History(ctx context.Context, conversationID string) ([]models.ChatMessage, error)
	Clear(ctx context.Context, conversationID string) (bool, error)
	Conversations(ctx context.Context, userID string) ([]store.Summary, error)
}

type chatService struct {
	classifier ai.Classifier
	generator  ai.Generator
	retriever  knowledge.Retriever
	policy     *EscalationPolicy
	priorities PriorityResolver
	convs      store.ConversationStore
	log        *logrus.Logger
}

func NewChatService(
	classifier ai.Classifier,
	generator ai.Generator,
	retriever knowledge.Retriever,
	policy *EscalationPolicy,
	priorities PriorityResolver,
	convs store.ConversationStore,
	log *logrus.Logger,
) ChatService {
	return &chatService{
		classifier: classifier,
		generator:  generator,
		retriever:  retriever,
		policy:     policy,
		priorities: priorities,
		convs:      convs,
		log:        log,
	}
}

// ProcessMessage runs the whole pipeline for one inbound message. Steps are
// strictly sequential; any collaborator or store failure aborts the call
// with a single generic wrap around the original cause. Nothing is retried
// and no partial result is returned.
func (s *chatService) ProcessMessage(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	const op = "ChatService.ProcessMessage"
	start := time.Now()

	if strings.TrimSpace(req.Message) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "message is required", nil)
	}

	conversationID := req.ConversationID
	if conversationID == "" {
		conversationID = NewConversationID()
	}

	cls, err := s.classifier.Classify(ctx, req.Message)
	if err != nil {
		return nil, processFailure(op, err)
	}

	filters := models.SearchFilters{
		Limit:              chatSearchLimit,
		RelevanceThreshold: models.DefaultRelevanceThreshold,
	}
	// "general" is the catch-all bucket; filtering on it would only hide
	// relevant entries from other categories
	if cls.Category != models.CategoryGeneral {
		filters.Category = cls.Category
	}

	entries, err := s.retriever.Search(ctx, req.Message, filters)
	if err != nil {
		return nil, processFailure(op, err)
	}

	gen, err := s.generator.Generate(ctx, req.Message, entries, cls)
	if err != nil {
		return nil, processFailure(op, err)
	}

	escalated := s.policy.ShouldEscalate(req.Message, cls, gen)
	actions := s.policy.SuggestedActions(cls, gen, escalated)
	priority := s.priorities.Resolve(cls.Category, escalated)

	resp := &models.ChatResponse{
		Message:            gen.Response,
		Confidence:         gen.Confidence,
		Sources:            entries,
		SuggestedActions:   actions,
		RequiresEscalation: escalated,
		ConversationID:     conversationID,
		Metadata: models.ResponseMetadata{
			ProcessingTimeMS: time.Since(start).Milliseconds(),
			Category:         cls.Category,
			Priority:         priority,
		},
	}

	titles := make([]string, 0, len(entries))
	for _, e := range entries {
		titles = append(titles, e.Title)
	}
	confidence := gen.Confidence

	userMsg := models.ChatMessage{
		ID:        NewMessageID(),
		Content:   req.Message,
		Role:      models.RoleUser,
		Timestamp: time.Now().UTC(),
	}
	assistantMsg := models.ChatMessage{
		ID:        NewMessageID(),
		Content:   gen.Response,
		Role:      models.RoleAssistant,
		Timestamp: time.Now().UTC(),
		Metadata: &models.MessageMetadata{
			Confidence: &confidence,
			Sources:    titles,
			Category:   cls.Category,
			Priority:   priority,
			Escalated:  escalated,
		},
	}

	// user message first, then the assistant reply
	if err := s.convs.Append(ctx, conversationID, req.UserID, userMsg); err != nil {
		return nil, processFailure(op, err)
	}
	if err := s.convs.Append(ctx, conversationID, req.UserID, assistantMsg); err != nil {
		return nil, processFailure(op, err)
	}

	s.log.WithFields(logrus.Fields{
		"conversation_id": conversationID,
		"category":        cls.Category,
		"priority":        priority,
		"escalated":       escalated,
		"sources":         len(entries),
		"latency_ms":      resp.Metadata.ProcessingTimeMS,
	}).Info("message processed")

	return resp, nil
}

func (s *chatService) History(ctx context.Context, conversationID string) ([]models.ChatMessage, error) {
	const op = "ChatService.History"
	msgs, err := s.convs.History(ctx, conversationID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load history", err)
	}
	return msgs, nil
}

func (s *chatService) Clear(ctx context.Context, conversationID string) (bool, error) {
	const op = "ChatService.Clear"
	existed, err := s.convs.Clear(ctx, conversationID)
	if err != nil {
		return false, utils.E(utils.CodeInternal, op, "failed to clear conversation", err)
	}
	return existed, nil
}

func (s *chatService) Conversations(ctx context.Context, userID string) ([]store.Summary, error) {
	const op = "ChatService.Conversations"
	sums, err := s.convs.List(ctx, store.Filter{UserID: userID})
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list conversations", err)
	}
	return sums, nil
}

// processFailure wraps any pipeline failure once: callers see only
// "failed to process message"; the cause stays in the error chain for logs.
func processFailure(op string, err error) error {
	return utils.E(utils.CodeInternal, op, "failed to process message", err)
}

// NewConversationID builds a time-prefixed id so ids sort roughly by
// creation time while staying globally unique.
func NewConversationID() string {
	return fmt.Sprintf("conv_%d_%s", time.Now().UnixMilli(), strings.SplitN(uuid.NewString(), "-", 2)[0])
}

// NewMessageID returns a ULID: unique and generation-time-ordered.
func NewMessageID() string {
	return ulid.Make().String()
}
