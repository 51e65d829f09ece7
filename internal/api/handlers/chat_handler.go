package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sayantan007pal/Customer-Support-app-using-mindsdb/internal/models"
	"github.com/sayantan007pal/Customer-Support-app-using-mindsdb/internal/services"
	"github.com/sayantan007pal/Customer-Support-app-using-mindsdb/internal/utils"
)

type ChatHandler struct {
	svc services.ChatService
}

func NewChatHandler(svc services.ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

func (h *ChatHandler) Send(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ChatHandler.Send", "message is required", err))
		return
	}

	resp, err := h.svc.ProcessMessage(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
