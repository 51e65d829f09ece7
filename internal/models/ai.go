package models

// Entity is a single entity extracted during query classification.
type Entity struct {
	Type       string  `json:"type"`
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence"`
}

// QueryClassification is the classifier's verdict on a raw user message.
type QueryClassification struct {
	Category   string   `json:"category"`
	Intent     string   `json:"intent"`
	Confidence float64  `json:"confidence"`
	Entities   []Entity `json:"entities,omitempty"`
}

// ResponseGeneration is the generator's output for a user message given the
// retrieved knowledge-base context.
type ResponseGeneration struct {
	Response           string  `json:"response"`
	Confidence         float64 `json:"confidence"`
	Reasoning          string  `json:"reasoning,omitempty"`
	RequiresEscalation bool    `json:"requires_escalation"`
}
