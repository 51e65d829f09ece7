package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/sayantan007pal/Customer-Support-app-using-mindsdb/internal/models"
	"github.com/sayantan007pal/Customer-Support-app-using-mindsdb/internal/services"
	"github.com/sayantan007pal/Customer-Support-app-using-mindsdb/internal/utils"
)

type WSHandler struct {
	chat     services.ChatService
	log      *logrus.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(chat services.ChatService, log *logrus.Logger) *WSHandler {
	return &WSHandler{
		chat: chat,
		log:  log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origin in prod
		},
	}
}

type wsConn struct {
	c  *websocket.Conn
	mu sync.Mutex
}

func (w *wsConn) writeJSON(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.c.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return w.c.WriteJSON(v)
}

type wsErrorMsg struct {
	Type    string     `json:"type"`
	Code    utils.Code `json:"code"`
	Message string     `json:"message"`
}

type wsResponseMsg struct {
	Type string `json:"type"`
	*models.ChatResponse
}

// ChatWS runs the same pipeline as POST /api/chat over a websocket: each
// inbound frame is one ChatRequest, each outbound frame one ChatResponse.
func (h *WSHandler) ChatWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// upgrade already wrote response in most cases
		return
	}
	defer conn.Close()

	wc := &wsConn{c: conn}
	ctx := c.Request.Context()

	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	// keepalive pings
	done := make(chan struct{})
	defer close(done)
	go func() {
		t := time.NewTicker(30 * time.Second)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				wc.mu.Lock()
				_ = conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second))
				wc.mu.Unlock()
			}
		}
	}()

	for {
		_, data, rerr := conn.ReadMessage()
		if rerr != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))

		var req models.ChatRequest
		if err := json.Unmarshal(data, &req); err != nil {
			_ = wc.writeJSON(wsErrorMsg{Type: "error", Code: utils.CodeInvalidArgument, Message: "invalid json"})
			continue
		}

		resp, err := h.chat.ProcessMessage(ctx, req)
		if err != nil {
			var ae *utils.AppError
			msg := wsErrorMsg{Type: "error", Code: utils.CodeInternal, Message: "failed to process message"}
			if errors.As(err, &ae) {
				msg.Code = ae.Code
				msg.Message = ae.Message
			}
			h.log.WithError(err).Warn("ws chat message failed")
			_ = wc.writeJSON(msg)
			continue
		}

		if err := wc.writeJSON(wsResponseMsg{Type: "response", ChatResponse: resp}); err != nil {
			return
		}
	}
}
