package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"evolve-coach/internal/service"
)

// WSHandler runs a coaching session over a websocket: the client sends one
// JSON frame per turn and receives the coach reply as the next frame.
type WSHandler struct {
	logger   *zap.Logger
	jwtServ  *service.JWTService
	coaching *service.CoachingService
	upgrader websocket.Upgrader
}

func NewWSHandler(logger *zap.Logger, jwtServ *service.JWTService, coaching *service.CoachingService) *WSHandler {
	return &WSHandler{
		logger:   logger,
		jwtServ:  jwtServ,
		coaching: coaching,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

type wsTurnRequest struct {
	SessionID string `json:"session_id"`
	Content   string `json:"content"`
}

type wsTurnResponse struct {
	Reply any    `json:"reply,omitempty"`
	Error string `json:"error,omitempty"`
}

// Serve handles GET /api/coaching/ws?token=...
// The token travels as a query parameter because browsers cannot set an
// Authorization header on websocket handshakes.
func (h *WSHandler) Serve(c *gin.Context) {
	claims, err := h.jwtServ.ParseAccessToken(c.Query("token"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	for {
		var req wsTurnRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("websocket read failed", zap.Error(err))
			}
			return
		}

		reply, err := h.coaching.ContinueSession(c.Request.Context(), req.SessionID, claims.UserID, req.Content)
		if err != nil {
			if writeErr := conn.WriteJSON(wsTurnResponse{Error: err.Error()}); writeErr != nil {
				return
			}
			continue
		}
		if err := conn.WriteJSON(wsTurnResponse{Reply: reply}); err != nil {
			return
		}
	}
}
