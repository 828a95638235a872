package handlers

import (
	"encoding/json"
	"net/http"

	"studio-backend/internal/middleware"
	"studio-backend/internal/services"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketHandler serves the Command Center live feed
type WebSocketHandler struct {
	hub    *services.WSHub
	tokens middleware.TokenValidator
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(hub *services.WSHub, tokens middleware.TokenValidator) *WebSocketHandler {
	return &WebSocketHandler{
		hub:    hub,
		tokens: tokens,
	}
}

// HandleWebSocket handles GET /ws
func (h *WebSocketHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	adminID, err := middleware.ValidateWebSocketToken(r.URL.Query().Get("token"), h.tokens)
	if err != nil {
		respondError(w, "invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade WebSocket connection")
		return
	}

	connID := uuid.New().String()
	h.hub.Register(connID, adminID, conn)
	defer h.hub.Unregister(connID)

	if err := h.hub.SendTo(connID, services.WSMessage{
		Type:    services.EventConnected,
		Message: "Live feed connected",
	}); err != nil {
		log.Error().Err(err).Str("conn_id", connID).Msg("Failed to send connected message")
		return
	}

	for {
		_, messageBytes, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error().Err(err).Str("conn_id", connID).Msg("WebSocket error")
			}
			break
		}

		var msg services.WSMessage
		if err := json.Unmarshal(messageBytes, &msg); err != nil {
			h.sendError(connID, "Invalid message format")
			continue
		}

		switch msg.Type {
		case "ping":
			if err := h.hub.SendTo(connID, services.WSMessage{Type: "pong"}); err != nil {
				return
			}
		default:
			h.sendError(connID, "Unknown message type")
		}
	}
}

func (h *WebSocketHandler) sendError(connID, message string) {
	if err := h.hub.SendTo(connID, services.WSMessage{Type: "error", Message: message}); err != nil {
		log.Error().Err(err).Str("conn_id", connID).Msg("Failed to send error message")
	}
}
