package websocket

import (
	"encoding/json"
	"log"
	"sync"
)

// Hub tracks live connections by participant id and implements game.Notifier.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.ID] = c
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	if current, ok := h.clients[c.ID]; ok && current == c {
		delete(h.clients, c.ID)
	}
	h.mu.Unlock()
	c.close()
}

// Count returns the number of live connections.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Notify serializes msg and queues it for participantID. It never blocks; a
// message for a gone or saturated connection is dropped.
func (h *Hub) Notify(participantID string, msg any) {
	h.mu.RLock()
	c := h.clients[participantID]
	h.mu.RUnlock()
	if c == nil {
		return
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		log.Printf("[Hub] Failed to encode message for %s: %v", participantID, err)
		return
	}
	c.enqueue(payload)
}
