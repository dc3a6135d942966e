package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"evolve-coach/internal/service"
)

// CoachingHandler exposes the conversation loop over HTTP.
type CoachingHandler struct {
	logger   *zap.Logger
	coaching *service.CoachingService
	insights *service.InsightService
}

func NewCoachingHandler(logger *zap.Logger, coaching *service.CoachingService, insights *service.InsightService) *CoachingHandler {
	return &CoachingHandler{
		logger:   logger,
		coaching: coaching,
		insights: insights,
	}
}

// StartSession handles POST /api/coaching/session/start.
func (h *CoachingHandler) StartSession(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing claims"})
		return
	}

	var req struct {
		SessionType string `json:"session_type"`
		Message     string `json:"message"`
	}
	// Body is optional; without a message the session opens with the welcome.
	_ = c.ShouldBindJSON(&req)

	session, reply, err := h.coaching.StartSession(c.Request.Context(), claims.UserID, req.SessionType, req.Message)
	if err != nil {
		if errors.Is(err, service.ErrTooManyTurns) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many turns"})
			return
		}
		h.logger.Error("start session failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start session"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"session": session, "reply": reply})
}

// Continue handles POST /api/coaching/session/:id/continue.
func (h *CoachingHandler) Continue(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing claims"})
		return
	}

	var req struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	reply, err := h.coaching.ContinueSession(c.Request.Context(), c.Param("id"), claims.UserID, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		case errors.Is(err, service.ErrSessionForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "not your session"})
		case errors.Is(err, service.ErrEmptyMessage):
			c.JSON(http.StatusBadRequest, gin.H{"error": "empty message"})
		case errors.Is(err, service.ErrTooManyTurns):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
		default:
			h.logger.Error("continue session failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not process message"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

// History handles GET /api/coaching/session/:id/history.
func (h *CoachingHandler) History(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing claims"})
		return
	}

	history, err := h.coaching.History(c.Request.Context(), c.Param("id"), claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		case errors.Is(err, service.ErrSessionForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "not your session"})
		default:
			h.logger.Error("load history failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load history"})
		}
		return
	}

	c.JSON(http.StatusOK, history)
}

// RelatedInsights handles GET /api/coaching/insights/related?q=...
func (h *CoachingHandler) RelatedInsights(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing claims"})
		return
	}
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query"})
		return
	}

	insights, err := h.insights.Related(c.Request.Context(), claims.UserID, query)
	if err != nil {
		h.logger.Error("related insights failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not search insights"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"insights": insights})
}
