package models

import "time"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// MessageMetadata is attached to assistant messages only. Confidence is a
// pointer so user messages (which carry no metadata) serialize without it.
type MessageMetadata struct {
	Confidence *float64 `json:"confidence,omitempty" bson:"confidence,omitempty"`
	Sources    []string `json:"sources,omitempty" bson:"sources,omitempty"`
	Category   string   `json:"category,omitempty" bson:"category,omitempty"`
	Priority   string   `json:"priority,omitempty" bson:"priority,omitempty"`
	Escalated  bool     `json:"escalated,omitempty" bson:"escalated,omitempty"`
}

// ChatMessage is immutable once appended to a conversation. IDs are ULIDs,
// so lexicographic order follows generation time.
type ChatMessage struct {
	ID        string           `json:"id" bson:"id"`
	Content   string           `json:"content" bson:"content"`
	Role      string           `json:"role" bson:"role"` // "user" | "assistant"
	Timestamp time.Time        `json:"timestamp" bson:"timestamp"`
	Metadata  *MessageMetadata `json:"metadata,omitempty" bson:"metadata,omitempty"`
}
