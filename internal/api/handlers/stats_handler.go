package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sayantan007pal/Customer-Support-app-using-mindsdb/internal/services"
)

type StatsHandler struct {
	svc services.StatsService
}

func NewStatsHandler(svc services.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

func (h *StatsHandler) Get(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
