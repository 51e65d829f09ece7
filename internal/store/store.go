package store

import (
	"context"
	"time"

	"github.com/sayantan007pal/Customer-Support-app-using-mindsdb/internal/models"
)

// Filter narrows List results. Zero value matches everything. UserID scoping
// is deliberate: listing is per owner, not per message role.
type Filter struct {
	UserID string
}

// Summary is a per-conversation aggregate used by listing and statistics.
type Summary struct {
	ConversationID string    `json:"conversation_id"`
	UserID         string    `json:"user_id,omitempty"`
	MessageCount   int       `json:"message_count"`
	LastMessageAt  time.Time `json:"last_message_at"`
	Escalated      bool      `json:"escalated"`
}

// ConversationStore owns per-conversation ordered message history. A
// conversation materializes on first Append and is destroyed only by Clear.
// History and List never fail for unknown ids; they return empty results.
type ConversationStore interface {
	Append(ctx context.Context, conversationID, userID string, msg models.ChatMessage) error
	History(ctx context.Context, conversationID string) ([]models.ChatMessage, error)
	Clear(ctx context.Context, conversationID string) (bool, error)
	List(ctx context.Context, f Filter) ([]Summary, error)
}
