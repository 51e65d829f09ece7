package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sayantan007pal/Customer-Support-app-using-mindsdb/internal/api/handlers"
	"github.com/sayantan007pal/Customer-Support-app-using-mindsdb/internal/api/middleware"
)

type Deps struct {
	Chat         *handlers.ChatHandler
	Conversation *handlers.ConversationHandler
	Stats        *handlers.StatsHandler
	Knowledge    *handlers.KnowledgeHandler
	WS           *handlers.WSHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	api := r.Group("/api")

	// Public chat surface (the widget talks here)
	api.POST("/chat", d.Chat.Send)
	api.GET("/chat/history/:conversation_id", d.Conversation.History)
	api.GET("/chat/conversations", d.Conversation.List)

	// WebSocket
	r.GET("/ws/chat", d.WS.ChatWS)

	// Admin operations (JWT)
	admin := api.Group("/")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())

	admin.DELETE("/chat/history/:conversation_id", d.Conversation.Clear)
	admin.GET("/chat/stats", d.Stats.Get)
	admin.POST("/knowledge", d.Knowledge.Ingest)
	admin.GET("/knowledge/search", d.Knowledge.Search)
}
