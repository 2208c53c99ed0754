package websocket

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dukerupert/seedstudio/internal/model"
)

// Message is broadcast to every client: either a record change, so other
// tabs can refresh, or a user notification.
type Message struct {
	Type         string              `json:"type"`
	Entity       string              `json:"entity,omitempty"`
	Action       string              `json:"action,omitempty"`
	ID           string              `json:"id,omitempty"`
	Extra        map[string]any      `json:"extra,omitempty"`
	Notification *model.Notification `json:"notification,omitempty"`
}

// NewMessage creates a Message with the Type field derived from entity and action.
func NewMessage(entity, action, id string, extra map[string]any) Message {
	return Message{
		Type:   fmt.Sprintf("%s_%s", entity, action),
		Entity: entity,
		Action: action,
		ID:     id,
		Extra:  extra,
	}
}

// NewNotification wraps n for broadcast.
func NewNotification(n model.Notification) Message {
	return Message{Type: "notification", Notification: &n}
}

// Notifications sent shortly before a tab connects are replayed to it, so a
// low-stock alert raised while the page reloads is not lost.
const (
	replayLimit  = 8
	replayWindow = 2 * time.Minute
)

type sentNotification struct {
	data []byte
	at   time.Time
}

// Hub maintains the set of active WebSocket clients and broadcasts messages.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	recent  []sentNotification
	now     func() time.Time
	logger  *slog.Logger
}

// NewHub creates a new Hub.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients: make(map[*Client]struct{}),
		now:     time.Now,
		logger:  logger,
	}
}

// Register adds a client to the hub and queues the notifications sent within
// the replay window.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}

	cutoff := h.now().Add(-replayWindow)
	for _, n := range h.recent {
		if n.at.Before(cutoff) {
			continue
		}
		select {
		case c.send <- n.data:
		default:
		}
	}
}

// Unregister removes a client from the hub and closes its send channel.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// Broadcast sends a message to all connected clients.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("marshal broadcast", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	h.fanOut(data)
}

// fanOut requires h.mu held.
func (h *Hub) fanOut(data []byte) {
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			// Client buffer full, drop the message
		}
	}
}

// Notify broadcasts a user notification and keeps it for replay. It never
// blocks.
func (h *Hub) Notify(n model.Notification) {
	data, err := json.Marshal(NewNotification(n))
	if err != nil {
		h.logger.Error("marshal notification", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.recent = append(h.recent, sentNotification{data: data, at: h.now()})
	if len(h.recent) > replayLimit {
		h.recent = h.recent[len(h.recent)-replayLimit:]
	}
	h.fanOut(data)
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
