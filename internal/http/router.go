package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter configures the gin engine with middlewares and routes.
func NewRouter(
	logger *zap.Logger,
	userH *UserHandler,
	coachingH *CoachingHandler,
	goalH *GoalHandler,
	dashboardH *DashboardHandler,
	wsH *WSHandler,
	authMiddleware gin.HandlerFunc,
) *gin.Engine {
	r := gin.New()

	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := api.Group("/auth")
	auth.POST("/register", userH.Register)
	auth.POST("/login", userH.Login)
	auth.POST("/refresh", userH.Refresh)
	auth.POST("/logout", userH.Logout)

	users := api.Group("/users", authMiddleware)
	users.GET("/me", userH.Me)

	coaching := api.Group("/coaching")
	coaching.GET("/ws", wsH.Serve)
	coachingAuth := coaching.Group("", authMiddleware)
	coachingAuth.POST("/session/start", coachingH.StartSession)
	coachingAuth.POST("/session/:id/continue", coachingH.Continue)
	coachingAuth.GET("/session/:id/history", coachingH.History)
	coachingAuth.GET("/insights/related", coachingH.RelatedInsights)

	goals := api.Group("/goals", authMiddleware)
	goals.POST("", goalH.Create)
	goals.GET("", goalH.List)
	goals.GET("/actions/today", goalH.TodayActions)
	goals.POST("/actions/:actionId/complete", goalH.CompleteAction)
	goals.GET("/:id", goalH.Get)
	goals.PUT("/:id", goalH.Update)

	dashboard := api.Group("/dashboard", authMiddleware)
	dashboard.GET("/data", dashboardH.Data)
	dashboard.GET("/weekly-report", dashboardH.WeeklyReport)

	return r
}

// zapLoggerMiddleware logs each request with zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware forces Content-Type: application/json on responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
