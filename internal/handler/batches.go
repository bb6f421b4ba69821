package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nyeinlwin/clubsched/internal/config"
	"github.com/nyeinlwin/clubsched/pkg/core/model"
	"github.com/nyeinlwin/clubsched/pkg/core/services"
	"github.com/nyeinlwin/clubsched/pkg/store"
)

type BatchHandler struct {
	store  store.Store
	logger *zap.Logger
	cfg    *config.Config
}

func NewBatchHandler(s store.Store, logger *zap.Logger, cfg *config.Config) *BatchHandler {
	return &BatchHandler{store: s, logger: logger, cfg: cfg}
}

// GET /api/batches
func (h *BatchHandler) List(c *gin.Context) {
	batches, err := store.LoadBatches(c.Request.Context(), h.store)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if batches == nil {
		batches = []*model.Batch{}
	}
	c.JSON(http.StatusOK, batches)
}

// POST /api/batches  body: {"name":"..."}
func (h *BatchHandler) Create(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	dates, err := services.SessionDates(h.cfg.SessionRRule, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	batch, err := services.CreateBatch(c.Request.Context(), h.store, h.logger, req.Name, dates)
	if err != nil {
		if errors.Is(err, services.ErrBatchExists) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, batch)
}

// DELETE /api/batches/:id
func (h *BatchHandler) Delete(c *gin.Context) {
	err := services.DeleteBatch(c.Request.Context(), h.store, h.logger, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLastBatch):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrBatchNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// PUT /api/batches/:id/weeks/:idx/topic  body: {"topic":"..."}
func (h *BatchHandler) SetTopic(c *gin.Context) {
	weekIdx, ok := weekIndex(c)
	if !ok {
		return
	}
	var req struct {
		Topic string `json:"topic"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if err := services.SetTopic(c.Request.Context(), h.store, h.logger, c.Param("id"), weekIdx, req.Topic); err != nil {
		weekError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// PUT /api/batches/:id/weeks/:idx/audience  body: {"count":N}
func (h *BatchHandler) SetAudience(c *gin.Context) {
	weekIdx, ok := weekIndex(c)
	if !ok {
		return
	}
	var req struct {
		Count int `json:"count"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if err := services.SetAudienceCount(c.Request.Context(), h.store, h.logger, c.Param("id"), weekIdx, req.Count); err != nil {
		weekError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// POST /api/batches/:id/weeks/:idx/reset
func (h *BatchHandler) ResetWeek(c *gin.Context) {
	weekIdx, ok := weekIndex(c)
	if !ok {
		return
	}
	if err := services.ResetWeek(c.Request.Context(), h.store, h.logger, c.Param("id"), weekIdx); err != nil {
		weekError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GET /api/batches/:id/weeks/:idx/report
func (h *BatchHandler) Report(c *gin.Context) {
	weekIdx, ok := weekIndex(c)
	if !ok {
		return
	}

	roster, err := store.LoadMembers(c.Request.Context(), h.store)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	batches, err := store.LoadBatches(c.Request.Context(), h.store)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	batch := services.FindBatch(batches, c.Param("id"))
	if batch == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "batch not found"})
		return
	}

	report, err := services.RenderWeekReport(roster, batch, weekIdx)
	if err != nil {
		weekError(c, err)
		return
	}
	attendance := services.WeekAttendance(roster, batch.Weeks[weekIdx])
	c.JSON(http.StatusOK, gin.H{"report": report, "attendance": attendance})
}

func weekIndex(c *gin.Context) (int, bool) {
	idx, err := strconv.Atoi(c.Param("idx"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid week index"})
		return 0, false
	}
	return idx, true
}

func weekError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrBatchNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrWeekOutOfRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
