package services

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/habeshabingo/rounds-backend/game"
)

// Hub owns the connected websocket clients and fans engine events out to
// them. It implements game.Broadcaster.
type Hub struct {
	mu      sync.RWMutex
	clients map[uint]*Client
	engine  *game.Engine
}

func NewHub() *Hub {
	return &Hub{clients: make(map[uint]*Client)}
}

// SetEngine wires the engine after construction; the engine needs the hub
// as its broadcaster first.
func (h *Hub) SetEngine(e *game.Engine) {
	h.engine = e
}

func (h *Hub) addClient(c *Client) {
	h.mu.Lock()
	if old, ok := h.clients[c.userID]; ok {
		old.Close() // safe closure
	}
	h.clients[c.userID] = c
	h.mu.Unlock()

	go c.writePump()
	go c.readPump()

	log.Printf("[Hub] user %d connected (total=%d)", c.userID, h.clientCount())
}

// removeClient drops a client only if it still owns its map slot. A
// reconnect replaces the slot first, so the old connection's teardown
// must not take the new one with it.
func (h *Hub) removeClient(c *Client) {
	h.mu.Lock()
	if cur, ok := h.clients[c.userID]; ok && cur == c {
		delete(h.clients, c.userID)
	}
	h.mu.Unlock()
	c.Close()
}

func (h *Hub) clientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast marshals the event once and sends it to every client,
// dropping on full send buffers rather than blocking.
func (h *Hub) Broadcast(event interface{}) {
	b, err := json.Marshal(event)
	if err != nil {
		log.Printf("[Hub] broadcast marshal error: %v", err)
		return
	}

	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		select {
		case c.send <- b:
		default:
			log.Printf("[Hub] dropping msg to user %d", c.userID)
		}
	}
}

// Unicast sends an event to one user only.
func (h *Hub) Unicast(userID uint, event interface{}) {
	h.mu.RLock()
	client, ok := h.clients[userID]
	h.mu.RUnlock()

	if !ok {
		log.Printf("[Hub] cannot reach user %d: client not found", userID)
		return
	}

	b, err := json.Marshal(event)
	if err != nil {
		log.Printf("[Hub] unicast marshal error: %v", err)
		return
	}

	select {
	case client.send <- b:
	default:
		log.Printf("[Hub] dropping unicast to user %d", userID)
	}
}
