package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/vedran77/contacts/internal/logging"
)

// Hub tracks live connections per user. A user may hold several
// connections; events for a contact go only to its owner's connections.
type Hub struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]map[*Client]struct{}
	log     logging.Logger
}

func NewHub(log logging.Logger) *Hub {
	return &Hub{
		clients: make(map[uuid.UUID]map[*Client]struct{}),
		log:     log,
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	set, ok := h.clients[c.userID]
	if !ok {
		set = make(map[*Client]struct{})
		h.clients[c.userID] = set
	}
	set[c] = struct{}{}
	n := len(set)
	h.mu.Unlock()

	h.log.Debug(context.Background(), "ws client connected", "user_id", c.userID, "connections", n)
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if set, ok := h.clients[c.userID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.userID)
		}
	}
	h.mu.Unlock()

	c.close()
	h.log.Debug(context.Background(), "ws client disconnected", "user_id", c.userID)
}

// Connections returns the number of live connections held by userID.
func (h *Hub) Connections(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// SendToUser delivers an event to every connection of userID. A client whose
// buffer is full is dropped.
func (h *Hub) SendToUser(userID uuid.UUID, event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.log.Error(context.Background(), "ws marshal failed", "type", event.Type, "error", err)
		return
	}

	h.mu.RLock()
	targets := make([]*Client, 0, len(h.clients[userID]))
	for c := range h.clients[userID] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if !c.enqueue(data) {
			h.log.Warn(context.Background(), "ws client too slow, dropping", "user_id", userID)
			h.Unregister(c)
		}
	}
}
