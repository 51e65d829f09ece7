package services

import (
	"context"
	"math"

	"github.com/sayantan007pal/Customer-Support-app-using-mindsdb/internal/models"
	"github.com/sayantan007pal/Customer-Support-app-using-mindsdb/internal/store"
	"github.com/sayantan007pal/Customer-Support-app-using-mindsdb/internal/utils"
)

type StatsService interface {
	Stats(ctx context.Context) (models.ChatStats, error)
}

type statsService struct {
	convs store.ConversationStore
}

func NewStatsService(convs store.ConversationStore) StatsService {
	return &statsService{convs: convs}
}

// Stats scans the whole store on every call. Call volume is low relative to
// chat traffic, so correctness wins over caching. A conversation counts as
// escalated when any of its messages carries the escalated metadata flag.
func (s *statsService) Stats(ctx context.Context) (models.ChatStats, error) {
	const op = "StatsService.Stats"

	sums, err := s.convs.List(ctx, store.Filter{})
	if err != nil {
		return models.ChatStats{}, utils.E(utils.CodeInternal, op, "failed to compute stats", err)
	}

	stats := models.ChatStats{TotalConversations: len(sums)}
	escalated := 0
	for _, c := range sums {
		stats.TotalMessages += c.MessageCount
		if c.Escalated {
			escalated++
		}
	}
	if stats.TotalConversations > 0 {
		stats.AverageMessagesPerConversation = round2(float64(stats.TotalMessages) / float64(stats.TotalConversations))
		stats.EscalationRate = round2(float64(escalated) / float64(stats.TotalConversations))
	}
	return stats, nil
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
