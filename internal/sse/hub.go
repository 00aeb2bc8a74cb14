package sse

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// EventType defines the SSE event name.
type EventType string

const (
	EventOrderShippingChanged EventType = "order.shipping_status_changed"
	EventBookingUpdated       EventType = "booking.updated"
	EventBookingDeleted       EventType = "booking.deleted"
	EventReviewStatusChanged  EventType = "review.status_changed"
	EventPaymentReconciled    EventType = "payment.reconciled"
)

// Event is the payload broadcast to connected dashboards.
type Event struct {
	Event     EventType `json:"event"`
	Resource  string    `json:"resource"`
	ID        int64     `json:"id"`
	DisplayID string    `json:"displayId,omitempty"`
	Status    string    `json:"status,omitempty"`
	ActorID   string    `json:"actorId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Client represents a connected dashboard.
type Client struct {
	ID     string
	UserID string
	Events chan []byte
}

// Hub manages SSE client connections and broadcasts.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

// NewHub creates a new SSE hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
	}
}

// Register adds a new client and returns it for streaming.
func (h *Hub) Register(clientID, userID string) *Client {
	h.mu.Lock()
	defer h.mu.Unlock()

	c := &Client{
		ID:     clientID,
		UserID: userID,
		Events: make(chan []byte, 64),
	}
	h.clients[clientID] = c
	log.Info().Str("client_id", clientID).Str("user_id", userID).Int("total_clients", len(h.clients)).Msg("SSE client connected")
	return c
}

// Unregister removes a client and closes its channel.
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if c, ok := h.clients[clientID]; ok {
		close(c.Events)
		delete(h.clients, clientID)
		log.Info().Str("client_id", clientID).Int("total_clients", len(h.clients)).Msg("SSE client disconnected")
	}
}

// Broadcast sends an event to all connected clients.
// Non-blocking: drops the message for a client whose buffer is full.
func (h *Hub) Broadcast(event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal SSE event")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, c := range h.clients {
		select {
		case c.Events <- data:
		default:
			log.Warn().Str("client_id", c.ID).Str("event", string(event.Event)).Msg("SSE client buffer full, dropping event")
		}
	}
}

// CloseAll disconnects every client so open streams return during shutdown.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, c := range h.clients {
		close(c.Events)
		delete(h.clients, id)
	}
	log.Info().Msg("SSE clients closed")
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
