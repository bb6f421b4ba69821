package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nyeinlwin/clubsched/pkg/core/engine"
	"github.com/nyeinlwin/clubsched/pkg/core/model"
	"github.com/nyeinlwin/clubsched/pkg/core/services"
	"github.com/nyeinlwin/clubsched/pkg/store"
)

type AssignmentHandler struct {
	store  store.Store
	logger *zap.Logger
}

func NewAssignmentHandler(s store.Store, logger *zap.Logger) *AssignmentHandler {
	return &AssignmentHandler{store: s, logger: logger}
}

// GET /api/batches/:id/weeks/:idx
// Returns the week, its healed sheet, eligible candidates per role, and
// the per-member summaries the view disables options with.
func (h *AssignmentHandler) Week(c *gin.Context) {
	weekIdx, ok := weekIndex(c)
	if !ok {
		return
	}
	options, err := services.LoadWeekOptions(c.Request.Context(), h.store, h.logger, c.Param("id"), weekIdx)
	if err != nil {
		weekError(c, err)
		return
	}
	c.JSON(http.StatusOK, options)
}

// POST /api/batches/:id/weeks/:idx/assignments
// body: {"op":"assign|teamAdd|teamRemove|leaveAdd|leaveRemove|reset",
//        "role":"host", "memberId":"..."}
func (h *AssignmentHandler) Apply(c *gin.Context) {
	weekIdx, ok := weekIndex(c)
	if !ok {
		return
	}

	var req struct {
		Op       string `json:"op"`
		Role     string `json:"role"`
		MemberID string `json:"memberId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	edit, err := parseEdit(req.Op, req.Role, req.MemberID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := services.ApplyAssignment(c.Request.Context(), h.store, h.logger, c.Param("id"), weekIdx, edit)
	if err != nil {
		if errors.Is(err, engine.ErrIneligible) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, engine.ErrRoleNotScheduled) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		weekError(c, err)
		return
	}

	cascades := result.Cascades
	if cascades == nil {
		cascades = []engine.Cascade{}
	}
	c.JSON(http.StatusOK, gin.H{"roles": result.Sheet, "cascades": cascades})
}

func parseEdit(op, roleKey, memberID string) (engine.Edit, error) {
	var role model.Role
	if roleKey != "" {
		r, ok := model.ParseRole(roleKey)
		if !ok {
			return engine.Edit{}, errors.New("unknown role " + roleKey)
		}
		role = r
	}

	switch op {
	case "assign":
		return engine.Assign(role, memberID), nil
	case "teamAdd":
		return engine.TeamAdd(role, memberID), nil
	case "teamRemove":
		return engine.TeamRemove(role, memberID), nil
	case "leaveAdd":
		return engine.LeaveAdd(memberID), nil
	case "leaveRemove":
		return engine.LeaveRemove(memberID), nil
	case "reset":
		return engine.Reset(), nil
	}
	return engine.Edit{}, errors.New("unknown op " + op)
}
