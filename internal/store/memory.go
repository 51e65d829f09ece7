package store

import (
	"context"
	"sort"
	"sync"

	"github.com/sayantan007pal/Customer-Support-app-using-mindsdb/internal/models"
)

type conversation struct {
	userID   string
	messages []models.ChatMessage
}

// MemoryStore is the default process-lifetime ConversationStore. A single
// RWMutex guards the map; each Append is atomic, but two concurrent request
// pipelines targeting the same conversation id may still interleave their
// user/assistant pairs.
type MemoryStore struct {
	mu    sync.RWMutex
	convs map[string]*conversation
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{convs: make(map[string]*conversation)}
}

func (s *MemoryStore) Append(ctx context.Context, conversationID, userID string, msg models.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.convs[conversationID]
	if !ok {
		c = &conversation{userID: userID}
		s.convs[conversationID] = c
	}
	if c.userID == "" && userID != "" {
		c.userID = userID
	}
	c.messages = append(c.messages, msg)
	return nil
}

func (s *MemoryStore) History(ctx context.Context, conversationID string) ([]models.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.convs[conversationID]
	if !ok {
		return []models.ChatMessage{}, nil
	}
	cp := make([]models.ChatMessage, len(c.messages))
	copy(cp, c.messages)
	return cp, nil
}

func (s *MemoryStore) Clear(ctx context.Context, conversationID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.convs[conversationID]; !ok {
		return false, nil
	}
	delete(s.convs, conversationID)
	return true, nil
}

func (s *MemoryStore) List(ctx context.Context, f Filter) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Summary, 0, len(s.convs))
	for id, c := range s.convs {
		if f.UserID != "" && c.userID != f.UserID {
			continue
		}
		sum := Summary{
			ConversationID: id,
			UserID:         c.userID,
			MessageCount:   len(c.messages),
		}
		for _, m := range c.messages {
			if m.Timestamp.After(sum.LastMessageAt) {
				sum.LastMessageAt = m.Timestamp
			}
			if m.Metadata != nil && m.Metadata.Escalated {
				sum.Escalated = true
			}
		}
		out = append(out, sum)
	}

	// map iteration order is random; newest-first is what callers expect
	sort.Slice(out, func(i, j int) bool {
		return out[i].LastMessageAt.After(out[j].LastMessageAt)
	})
	return out, nil
}
