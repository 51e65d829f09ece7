package services

import "github.com/sayantan007pal/Customer-Support-app-using-mindsdb/internal/models"

// DefaultPriorityTable maps classification categories to priorities.
// Categories outside the table resolve to low.
func DefaultPriorityTable() map[string]string {
	return map[string]string{
		models.CategoryBilling:   models.PriorityHigh,
		"refund":                 models.PriorityHigh,
		"complaint":              models.PriorityHigh,
		models.CategoryTechnical: models.PriorityMedium,
		models.CategoryShipping:  models.PriorityMedium,
		models.CategoryReturns:   models.PriorityMedium,
	}
}

// PriorityResolver derives a message priority from the classification
// category and the escalation outcome. Pure and deterministic: no inputs
// beyond the two arguments, no side effects.
type PriorityResolver struct {
	table map[string]string
}

func NewPriorityResolver(table map[string]string) PriorityResolver {
	if table == nil {
		table = DefaultPriorityTable()
	}
	cp := make(map[string]string, len(table))
	for k, v := range table {
		cp[k] = v
	}
	return PriorityResolver{table: cp}
}

func (r PriorityResolver) Resolve(category string, escalated bool) string {
	if escalated {
		return models.PriorityHigh
	}
	if p, ok := r.table[category]; ok {
		return p
	}
	return models.PriorityLow
}
