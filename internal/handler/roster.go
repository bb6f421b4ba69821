package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nyeinlwin/clubsched/pkg/core/model"
	"github.com/nyeinlwin/clubsched/pkg/core/services"
	"github.com/nyeinlwin/clubsched/pkg/store"
)

type RosterHandler struct {
	store  store.Store
	logger *zap.Logger
}

func NewRosterHandler(s store.Store, logger *zap.Logger) *RosterHandler {
	return &RosterHandler{store: s, logger: logger}
}

// GET /api/members?all=1
func (h *RosterHandler) List(c *gin.Context) {
	includeArchived := c.Query("all") != ""
	members, err := services.ListMembers(c.Request.Context(), h.store, includeArchived)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if members == nil {
		members = []model.Member{}
	}
	c.JSON(http.StatusOK, members)
}

// POST /api/members  body: {"name":"..."}
func (h *RosterHandler) Add(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	member, err := services.AddMember(c.Request.Context(), h.store, h.logger, req.Name)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateName) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, member)
}

// POST /api/members/:id/archive
func (h *RosterHandler) Archive(c *gin.Context) {
	h.setArchived(c, true)
}

// POST /api/members/:id/restore
func (h *RosterHandler) Restore(c *gin.Context) {
	h.setArchived(c, false)
}

func (h *RosterHandler) setArchived(c *gin.Context, archived bool) {
	var err error
	if archived {
		err = services.ArchiveMember(c.Request.Context(), h.store, h.logger, c.Param("id"))
	} else {
		err = services.RestoreMember(c.Request.Context(), h.store, h.logger, c.Param("id"))
	}
	if err != nil {
		if errors.Is(err, services.ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DELETE /api/members/:id
func (h *RosterHandler) Delete(c *gin.Context) {
	if err := services.DeleteMember(c.Request.Context(), h.store, h.logger, c.Param("id")); err != nil {
		if errors.Is(err, services.ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
