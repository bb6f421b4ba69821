package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nyeinlwin/clubsched/pkg/core/model"
	"github.com/nyeinlwin/clubsched/pkg/core/services"
	"github.com/nyeinlwin/clubsched/pkg/store"
)

type LinkHandler struct {
	store  store.Store
	logger *zap.Logger
}

func NewLinkHandler(s store.Store, logger *zap.Logger) *LinkHandler {
	return &LinkHandler{store: s, logger: logger}
}

// GET /api/links?search=...&category=...
func (h *LinkHandler) List(c *gin.Context) {
	batches, err := store.LoadBatches(c.Request.Context(), h.store)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	links := services.CollectLinks(batches)
	links = services.FilterLinks(links, c.Query("search"), c.Query("category"))
	c.JSON(http.StatusOK, links)
}

// POST /api/batches/:id/weeks/:idx/links
// body: {"title":"...","url":"...","category":"..."}
func (h *LinkHandler) Add(c *gin.Context) {
	weekIdx, ok := weekIndex(c)
	if !ok {
		return
	}
	var req model.Link
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if err := services.AddLink(c.Request.Context(), h.store, h.logger, c.Param("id"), weekIdx, req); err != nil {
		weekError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// PUT /api/batches/:id/weeks/:idx/masterlinks
// body: {"slot":"zoomLink","url":"..."}
func (h *LinkHandler) SetMaster(c *gin.Context) {
	weekIdx, ok := weekIndex(c)
	if !ok {
		return
	}
	var req struct {
		Slot string `json:"slot"`
		URL  string `json:"url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if err := services.SetMasterLink(c.Request.Context(), h.store, h.logger, c.Param("id"), weekIdx, req.Slot, req.URL); err != nil {
		weekError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DELETE /api/links
// body: {"batchId":"...","weekIdx":N,"key":"...","master":true}
func (h *LinkHandler) Delete(c *gin.Context) {
	var req struct {
		BatchID string `json:"batchId"`
		WeekIdx int    `json:"weekIdx"`
		Key     string `json:"key"`
		Master  bool   `json:"master"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if err := services.DeleteLink(c.Request.Context(), h.store, h.logger, req.BatchID, req.WeekIdx, req.Key, req.Master); err != nil {
		weekError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
