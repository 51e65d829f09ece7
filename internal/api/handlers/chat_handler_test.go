package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/sayantan007pal/Customer-Support-app-using-mindsdb/internal/models"
	"github.com/sayantan007pal/Customer-Support-app-using-mindsdb/internal/store"
	"github.com/sayantan007pal/Customer-Support-app-using-mindsdb/internal/utils"
)

type fakeChatService struct {
	resp    *models.ChatResponse
	err     error
	history []models.ChatMessage
}

func (f *fakeChatService) ProcessMessage(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func (f *fakeChatService) History(ctx context.Context, conversationID string) ([]models.ChatMessage, error) {
	if f.history == nil {
		return []models.ChatMessage{}, nil
	}
	return f.history, nil
}

func (f *fakeChatService) Clear(ctx context.Context, conversationID string) (bool, error) {
	return conversationID == "known", nil
}

func (f *fakeChatService) Conversations(ctx context.Context, userID string) ([]store.Summary, error) {
	return []store.Summary{}, nil
}

func newTestRouter(svc *fakeChatService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	chat := NewChatHandler(svc)
	conv := NewConversationHandler(svc)

	r.POST("/api/chat", chat.Send)
	r.GET("/api/chat/history/:conversation_id", conv.History)
	r.DELETE("/api/chat/history/:conversation_id", conv.Clear)
	return r
}

func TestChatHandler_Send(t *testing.T) {
	svc := &fakeChatService{resp: &models.ChatResponse{
		Message:        "hello back",
		Confidence:     0.9,
		Sources:        []models.KnowledgeBaseEntry{},
		ConversationID: "conv_1",
		Metadata:       models.ResponseMetadata{Category: "general", Priority: "low"},
	}}
	r := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"hello"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var got models.ChatResponse
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Message != "hello back" || got.ConversationID != "conv_1" {
		t.Errorf("unexpected response: %+v", got)
	}
	if got.Sources == nil {
		t.Error("sources must serialize as an empty list, not null")
	}
}

func TestChatHandler_Send_MissingMessage(t *testing.T) {
	r := newTestRouter(&fakeChatService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var apiErr APIError
	if err := json.Unmarshal(w.Body.Bytes(), &apiErr); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if apiErr.Code != utils.CodeInvalidArgument {
		t.Errorf("code = %q, want INVALID_ARGUMENT", apiErr.Code)
	}
}

func TestChatHandler_Send_PipelineFailure(t *testing.T) {
	svc := &fakeChatService{err: utils.E(utils.CodeInternal, "ChatService.ProcessMessage", "failed to process message", nil)}
	r := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}

	var apiErr APIError
	if err := json.Unmarshal(w.Body.Bytes(), &apiErr); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// collaborator detail never leaks to the client
	if apiErr.Message != "failed to process message" {
		t.Errorf("message = %q", apiErr.Message)
	}
}

func TestConversationHandler_HistoryUnknownID(t *testing.T) {
	r := newTestRouter(&fakeChatService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/chat/history/nope", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for unknown ids", w.Code)
	}

	var body struct {
		ConversationID string               `json:"conversation_id"`
		Messages       []models.ChatMessage `json:"messages"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Messages == nil || len(body.Messages) != 0 {
		t.Errorf("expected empty message list, got %v", body.Messages)
	}
}

func TestConversationHandler_Clear(t *testing.T) {
	r := newTestRouter(&fakeChatService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/chat/history/known", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("clear existing: status = %d", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/api/chat/history/unknown", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("clear unknown: status = %d, want 404", w.Code)
	}
}
