package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sayantan007pal/Customer-Support-app-using-mindsdb/internal/services"
	"github.com/sayantan007pal/Customer-Support-app-using-mindsdb/internal/utils"
)

type ConversationHandler struct {
	svc services.ChatService
}

func NewConversationHandler(svc services.ChatService) *ConversationHandler {
	return &ConversationHandler{svc: svc}
}

// History returns the full ordered history. Unknown ids are not an error;
// they respond with an empty list.
func (h *ConversationHandler) History(c *gin.Context) {
	conversationID := c.Param("conversation_id")

	msgs, err := h.svc.History(c.Request.Context(), conversationID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"conversation_id": conversationID,
		"messages":        msgs,
	})
}

func (h *ConversationHandler) Clear(c *gin.Context) {
	conversationID := c.Param("conversation_id")

	existed, err := h.svc.Clear(c.Request.Context(), conversationID)
	if err != nil {
		writeError(c, err)
		return
	}
	if !existed {
		writeError(c, utils.E(utils.CodeNotFound, "ConversationHandler.Clear", "conversation not found", nil))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"conversation_id": conversationID,
		"cleared":         true,
	})
}

func (h *ConversationHandler) List(c *gin.Context) {
	userID := c.Query("user_id")

	sums, err := h.svc.Conversations(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"conversations": sums,
	})
}
