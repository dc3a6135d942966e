package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"evolve-coach/internal/service"
)

// GoalHandler exposes goal and action endpoints.
type GoalHandler struct {
	logger *zap.Logger
	goals  *service.GoalService
}

func NewGoalHandler(logger *zap.Logger, goals *service.GoalService) *GoalHandler {
	return &GoalHandler{logger: logger, goals: goals}
}

// Create handles POST /api/goals.
func (h *GoalHandler) Create(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing claims"})
		return
	}

	var req struct {
		RawGoal  string `json:"raw_goal" binding:"required"`
		Category string `json:"category"`
		Priority int    `json:"priority"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	created, err := h.goals.CreateGoal(c.Request.Context(), claims.UserID, service.CreateGoalInput{
		RawGoal:  req.RawGoal,
		Category: req.Category,
		Priority: req.Priority,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmptyGoal) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "empty goal"})
			return
		}
		h.logger.Error("create goal failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create goal"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// List handles GET /api/goals.
func (h *GoalHandler) List(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing claims"})
		return
	}

	goals, err := h.goals.ListActiveGoals(c.Request.Context(), claims.UserID)
	if err != nil {
		h.logger.Error("list goals failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list goals"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"goals": goals})
}

// Get handles GET /api/goals/:id.
func (h *GoalHandler) Get(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing claims"})
		return
	}

	goal, actions, err := h.goals.GetGoal(c.Request.Context(), c.Param("id"), claims.UserID)
	if err != nil {
		h.respondGoalError(c, err, "load goal failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"goal": goal, "actions": actions})
}

// Update handles PUT /api/goals/:id.
func (h *GoalHandler) Update(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing claims"})
		return
	}

	var req struct {
		RawGoal    string `json:"raw_goal"`
		Category   string `json:"category"`
		Priority   int    `json:"priority"`
		Status     string `json:"status"`
		TargetDate string `json:"target_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	goal, err := h.goals.UpdateGoal(c.Request.Context(), c.Param("id"), claims.UserID, service.UpdateGoalInput{
		RawGoal:    req.RawGoal,
		Category:   req.Category,
		Priority:   req.Priority,
		Status:     req.Status,
		TargetDate: req.TargetDate,
	})
	if err != nil {
		h.respondGoalError(c, err, "update goal failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// TodayActions handles GET /api/goals/actions/today.
func (h *GoalHandler) TodayActions(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing claims"})
		return
	}

	actions, err := h.goals.TodayActions(c.Request.Context(), claims.UserID)
	if err != nil {
		h.logger.Error("today actions failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load actions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"actions": actions})
}

// CompleteAction handles POST /api/goals/actions/:actionId/complete.
func (h *GoalHandler) CompleteAction(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing claims"})
		return
	}

	var req struct {
		Reflection     string `json:"reflection"`
		EmotionalState int    `json:"emotional_state"`
	}
	// Optional body.
	_ = c.ShouldBindJSON(&req)

	completed, err := h.goals.CompleteAction(c.Request.Context(), c.Param("actionId"), claims.UserID, req.Reflection, req.EmotionalState)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrActionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "action item not found"})
		case errors.Is(err, service.ErrGoalNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "goal not found"})
		case errors.Is(err, service.ErrGoalForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "not your goal"})
		default:
			h.logger.Error("complete action failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not complete action"})
		}
		return
	}

	c.JSON(http.StatusOK, completed)
}

func (h *GoalHandler) respondGoalError(c *gin.Context, err error, logMsg string) {
	switch {
	case errors.Is(err, service.ErrGoalNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "goal not found"})
	case errors.Is(err, service.ErrGoalForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "not your goal"})
	default:
		h.logger.Error(logMsg, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
