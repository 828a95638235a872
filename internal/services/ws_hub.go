package services

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Live feed event types
const (
	EventInquiryCreated = "inquiry_created"
	EventPhotoCreated   = "photo_created"
	EventPhotoUpdated   = "photo_updated"
	EventPhotoDeleted   = "photo_deleted"
	EventConnected      = "connected"
)

// Publisher receives domain events for the Command Center feed
type Publisher interface {
	Publish(eventType string, data interface{})
}

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type      string      `json:"type"`
	Timestamp int64       `json:"timestamp"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
}

type wsClient struct {
	adminID string
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (c *wsClient) write(data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// WSHub manages the Command Center WebSocket connections
type WSHub struct {
	mu          sync.RWMutex
	connections map[string]*wsClient
}

// NewWSHub creates a new WebSocket hub
func NewWSHub() *WSHub {
	return &WSHub{
		connections: make(map[string]*wsClient),
	}
}

// Register registers a new WebSocket connection under connID
func (h *WSHub) Register(connID, adminID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if existing, exists := h.connections[connID]; exists {
		existing.conn.Close()
	}
	h.connections[connID] = &wsClient{adminID: adminID, conn: conn}

	log.Info().Str("conn_id", connID).Str("admin_id", adminID).Msg("WebSocket connection registered")
}

// Unregister removes and closes a connection
func (h *WSHub) Unregister(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if c, exists := h.connections[connID]; exists {
		c.conn.Close()
		delete(h.connections, connID)
		log.Info().Str("conn_id", connID).Msg("WebSocket connection unregistered")
	}
}

// Count returns the number of open connections
func (h *WSHub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// SendTo sends a message to one connection
func (h *WSHub) SendTo(connID string, message WSMessage) error {
	h.mu.RLock()
	c, exists := h.connections[connID]
	h.mu.RUnlock()

	if !exists {
		return fmt.Errorf("connection %s is not registered", connID)
	}

	data, err := json.Marshal(stamp(message))
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	if err := c.write(data); err != nil {
		h.Unregister(connID)
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// Publish broadcasts an event to every connected console
func (h *WSHub) Publish(eventType string, data interface{}) {
	payload, err := json.Marshal(stamp(WSMessage{Type: eventType, Data: data}))
	if err != nil {
		log.Error().Err(err).Str("type", eventType).Msg("Failed to marshal event")
		return
	}

	h.mu.RLock()
	targets := make(map[string]*wsClient, len(h.connections))
	for id, c := range h.connections {
		targets[id] = c
	}
	h.mu.RUnlock()

	for id, c := range targets {
		if err := c.write(payload); err != nil {
			log.Error().Err(err).Str("conn_id", id).Str("type", eventType).Msg("Failed to deliver event")
			h.Unregister(id)
		}
	}
}

// Close drops every connection
func (h *WSHub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, c := range h.connections {
		c.conn.Close()
		delete(h.connections, id)
	}
}

func stamp(m WSMessage) WSMessage {
	if m.Timestamp == 0 {
		m.Timestamp = time.Now().UnixMilli()
	}
	return m
}

type noopPublisher struct{}

func (noopPublisher) Publish(string, interface{}) {}

func publisherOrNoop(p Publisher) Publisher {
	if p == nil {
		return noopPublisher{}
	}
	return p
}
