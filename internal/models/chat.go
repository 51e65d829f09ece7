package models

// ChatContext carries optional client-supplied context for a chat request.
type ChatContext struct {
	PreviousMessages []ChatMessage  `json:"previous_messages,omitempty"`
	UserPreferences  map[string]any `json:"user_preferences,omitempty"`
}

// ChatRequest is the inbound payload for a single user message.
type ChatRequest struct {
	Message        string       `json:"message" binding:"required"`
	ConversationID string       `json:"conversation_id,omitempty"`
	UserID         string       `json:"user_id,omitempty"`
	Context        *ChatContext `json:"context,omitempty"`
}

// ResponseMetadata describes how a response was produced.
type ResponseMetadata struct {
	ProcessingTimeMS int64  `json:"processing_time"`
	Category         string `json:"category"`
	Priority         string `json:"priority"`
}

// ChatResponse is the outward contract returned for every processed message.
type ChatResponse struct {
	Message            string               `json:"message"`
	Confidence         float64              `json:"confidence"`
	Sources            []KnowledgeBaseEntry `json:"sources"`
	SuggestedActions   []string             `json:"suggested_actions,omitempty"`
	RequiresEscalation bool                 `json:"requires_escalation"`
	ConversationID     string               `json:"conversation_id"`
	Metadata           ResponseMetadata     `json:"metadata"`
}

// ChatStats is an aggregate snapshot over the whole conversation store.
// Averages and rates are rounded to 2 decimals.
type ChatStats struct {
	TotalConversations             int     `json:"total_conversations"`
	TotalMessages                  int     `json:"total_messages"`
	AverageMessagesPerConversation float64 `json:"average_messages_per_conversation"`
	EscalationRate                 float64 `json:"escalation_rate"`
}
