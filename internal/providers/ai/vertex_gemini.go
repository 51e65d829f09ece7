package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	vertexgenai "cloud.google.com/go/vertexai/genai"
	"google.golang.org/api/option"

	"github.com/sayantan007pal/Customer-Support-app-using-mindsdb/internal/models"
)

// VertexGemini implements Classifier and Generator on top of a Gemini model.
// Both operations ask the model for a strict JSON object and parse it
// leniently (code fences stripped, confidence clamped to [0,1]).
type VertexGemini struct {
	client *vertexgenai.Client
	model  *vertexgenai.GenerativeModel
}

func NewVertexGemini(ctx context.Context, projectID, location, modelName string) (*VertexGemini, error) {
	var opts []option.ClientOption
	if creds := os.Getenv("GOOGLE_CREDENTIALS_FILE"); creds != "" {
		opts = append(opts, option.WithCredentialsFile(creds))
	}

	c, err := vertexgenai.NewClient(ctx, projectID, location, opts...)
	if err != nil {
		return nil, err
	}

	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}

	m := c.GenerativeModel(modelName)
	return &VertexGemini{client: c, model: m}, nil
}

func (v *VertexGemini) Close() error { return v.client.Close() }

const classifyPromptFmt = `You are a customer-support query classifier.
Classify the user message into one category: billing, technical, general, shipping, returns, refund, complaint.
Respond with ONLY a JSON object shaped exactly like:
{"category":"...","intent":"...","confidence":0.0,"entities":[{"type":"...","value":"...","confidence":0.0}]}

User message: %s`

func (v *VertexGemini) Classify(ctx context.Context, message string) (models.QueryClassification, error) {
	raw, err := v.generateText(ctx, fmt.Sprintf(classifyPromptFmt, message))
	if err != nil {
		return models.QueryClassification{}, err
	}

	var out models.QueryClassification
	if err := json.Unmarshal(extractJSON(raw), &out); err != nil {
		return models.QueryClassification{}, fmt.Errorf("parse classification: %w", err)
	}

	out.Category = strings.ToLower(strings.TrimSpace(out.Category))
	if out.Category == "" {
		out.Category = models.CategoryGeneral
	}
	out.Confidence = clamp01(out.Confidence)
	for i := range out.Entities {
		out.Entities[i].Confidence = clamp01(out.Entities[i].Confidence)
	}
	return out, nil
}

const generatePromptFmt = `You are a customer-support assistant. Answer the user using ONLY the knowledge-base context below.
If the context does not cover the question, say so and set requires_escalation to true.
Respond with ONLY a JSON object shaped exactly like:
{"response":"...","confidence":0.0,"reasoning":"...","requires_escalation":false}

Query category: %s
Query intent: %s

Knowledge-base context:
%s

User message: %s`

func (v *VertexGemini) Generate(ctx context.Context, message string, entries []models.KnowledgeBaseEntry, classification models.QueryClassification) (models.ResponseGeneration, error) {
	var kb strings.Builder
	if len(entries) == 0 {
		kb.WriteString("(no matching entries)")
	}
	for i, e := range entries {
		fmt.Fprintf(&kb, "[%d] %s\n%s\n\n", i+1, e.Title, e.Content)
	}

	prompt := fmt.Sprintf(generatePromptFmt, classification.Category, classification.Intent, kb.String(), message)
	raw, err := v.generateText(ctx, prompt)
	if err != nil {
		return models.ResponseGeneration{}, err
	}

	var out models.ResponseGeneration
	if err := json.Unmarshal(extractJSON(raw), &out); err != nil {
		return models.ResponseGeneration{}, fmt.Errorf("parse generation: %w", err)
	}
	out.Confidence = clamp01(out.Confidence)
	return out, nil
}

func (v *VertexGemini) generateText(ctx context.Context, prompt string) (string, error) {
	resp, err := v.model.GenerateContent(ctx, vertexgenai.Text(prompt))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(vertexgenai.Text); ok {
				b.WriteString(string(t))
			}
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("model returned no text")
	}
	return b.String(), nil
}

// extractJSON tolerates code fences and leading prose around the object.
func extractJSON(s string) []byte {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	if i := strings.Index(s, "{"); i >= 0 {
		if j := strings.LastIndex(s, "}"); j > i {
			s = s[i : j+1]
		}
	}
	return []byte(strings.TrimSpace(s))
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
