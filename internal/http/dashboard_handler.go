package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"evolve-coach/internal/service"
)

// DashboardHandler exposes the aggregated progress views.
type DashboardHandler struct {
	logger    *zap.Logger
	dashboard *service.DashboardService
}

func NewDashboardHandler(logger *zap.Logger, dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{logger: logger, dashboard: dashboard}
}

// Data handles GET /api/dashboard/data.
func (h *DashboardHandler) Data(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing claims"})
		return
	}

	data, err := h.dashboard.Dashboard(c.Request.Context(), claims.UserID)
	if err != nil {
		h.logger.Error("dashboard failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not build dashboard"})
		return
	}
	c.JSON(http.StatusOK, data)
}

// WeeklyReport handles GET /api/dashboard/weekly-report.
func (h *DashboardHandler) WeeklyReport(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing claims"})
		return
	}

	report, err := h.dashboard.WeeklyReport(c.Request.Context(), claims.UserID)
	if err != nil {
		h.logger.Error("weekly report failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not build report"})
		return
	}
	c.JSON(http.StatusOK, report)
}
