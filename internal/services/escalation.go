package services

import "github.com/sayantan007pal/Customer-Support-app-using-mindsdb/internal/models"

// PolicyConfig holds the escalation thresholds. Values are configuration,
// not pipeline constants.
type PolicyConfig struct {
	ClassificationConfidenceFloor float64
	GenerationConfidenceFloor     float64
}

func DefaultPolicyConfig() PolicyConfig {
	return PolicyConfig{
		ClassificationConfidenceFloor: 0.5,
		GenerationConfidenceFloor:     0.5,
	}
}

const handoffAction = "Contact support to speak with a human agent"

var categoryActions = map[string][]string{
	models.CategoryBilling: {
		"Review your recent invoices in the billing portal",
		"Update your payment method",
	},
	models.CategoryTechnical: {
		"Follow the troubleshooting steps above",
		"Check the service status page",
	},
	models.CategoryShipping: {
		"Track your order from the orders page",
	},
	models.CategoryReturns: {
		"Start a return from your order history",
	},
}

// EscalationPolicy decides whether a human must take over and which
// follow-up actions to suggest.
type EscalationPolicy struct {
	cfg PolicyConfig
}

func NewEscalationPolicy(cfg PolicyConfig) *EscalationPolicy {
	return &EscalationPolicy{cfg: cfg}
}

// ShouldEscalate is true when the generator signals escalation itself, or
// when both the classifier and the generator are below their confidence
// floors.
func (p *EscalationPolicy) ShouldEscalate(message string, cls models.QueryClassification, gen models.ResponseGeneration) bool {
	if gen.RequiresEscalation {
		return true
	}
	return cls.Confidence < p.cfg.ClassificationConfidenceFloor &&
		gen.Confidence < p.cfg.GenerationConfidenceFloor
}

// SuggestedActions always returns at least one actionable hint; an escalated
// outcome always includes the human-handoff action.
func (p *EscalationPolicy) SuggestedActions(cls models.QueryClassification, gen models.ResponseGeneration, escalated bool) []string {
	actions := append([]string(nil), categoryActions[cls.Category]...)

	if gen.Confidence < p.cfg.GenerationConfidenceFloor {
		actions = append(actions, "Try rephrasing your question with more detail")
	}
	if escalated {
		actions = append(actions, handoffAction)
	}
	if len(actions) == 0 {
		actions = append(actions, "Browse the help center for related articles")
	}
	return actions
}
