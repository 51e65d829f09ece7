package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sayantan007pal/Customer-Support-app-using-mindsdb/internal/models"
	"github.com/sayantan007pal/Customer-Support-app-using-mindsdb/internal/services"
	"github.com/sayantan007pal/Customer-Support-app-using-mindsdb/internal/utils"
)

type KnowledgeHandler struct {
	svc services.KnowledgeService
}

func NewKnowledgeHandler(svc services.KnowledgeService) *KnowledgeHandler {
	return &KnowledgeHandler{svc: svc}
}

type IngestRequest struct {
	Title       string   `json:"title" binding:"required"`
	Content     string   `json:"content" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	Priority    string   `json:"priority"`
	ProductType string   `json:"product_type"`
	Tags        []string `json:"tags"`
}

func (h *KnowledgeHandler) Ingest(c *gin.Context) {
	var req IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "KnowledgeHandler.Ingest", "invalid request body", err))
		return
	}

	entry, err := h.svc.Ingest(c.Request.Context(), models.KnowledgeBaseEntry{
		Title:       req.Title,
		Content:     req.Content,
		Category:    req.Category,
		Priority:    req.Priority,
		ProductType: req.ProductType,
		Tags:        req.Tags,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func (h *KnowledgeHandler) Search(c *gin.Context) {
	query := c.Query("q")

	filters := models.SearchFilters{
		Category:    c.Query("category"),
		Priority:    c.Query("priority"),
		ProductType: c.Query("product_type"),
	}
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 50 {
			filters.Limit = n
		}
	}
	if s := c.Query("threshold"); s != "" {
		if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 && f <= 1 {
			filters.RelevanceThreshold = f
		}
	}

	entries, err := h.svc.Search(c.Request.Context(), query, filters)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":   query,
		"results": entries,
	})
}
