package ws

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"

	"session-service/internal/session"
)

// SessionWebSocketHandler streams session snapshots to subscribers.
type SessionWebSocketHandler struct {
	hub         *Hub
	coordinator *session.Coordinator
}

// NewSessionWebSocketHandler constructs a SessionWebSocketHandler.
func NewSessionWebSocketHandler(hub *Hub, coordinator *session.Coordinator) *SessionWebSocketHandler {
	return &SessionWebSocketHandler{hub: hub, coordinator: coordinator}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handle upgrades the connection, registers the client and sends the
// current snapshot so new subscribers do not wait for the next change.
func (h *SessionWebSocketHandler) Handle(c *gin.Context) {
	ctx, span := otel.Tracer("session-service/ws").Start(c.Request.Context(), "ws.handshake")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	info := ConnInfo{
		ConnID:      newConnID(),
		IP:          c.ClientIP(),
		RequestID:   c.GetHeader("X-Request-Id"),
		TraceID:     span.SpanContext().TraceID().String(),
		ConnectedAt: time.Now(),
	}
	h.hub.AddClient(conn, info)

	if payload, err := json.Marshal(h.coordinator.Snapshot()); err == nil {
		_ = conn.WriteMessage(websocket.TextMessage, payload)
	}

	// Keep connection alive and clean on close
	go func() {
		defer func() {
			h.hub.RemoveClient(conn)
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
