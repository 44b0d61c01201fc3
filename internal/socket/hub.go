package socket

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// Room name builders. Rooms are plain case-sensitive strings; a client is
// addressable through its user room, one room per held role, and any
// business rooms it joined explicitly.
func UserRoom(userID string) string    { return "user:" + userID }
func RoleRoom(role string) string      { return "role:" + role }
func BusinessRoom(bizID string) string { return "business:" + bizID }

// Envelope is the wire format for every server-to-client message
type Envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data,omitempty"`
}

// Hub maps room names to the set of connected clients in them. Emitting to
// a room is an iteration over that set with an independent non-blocking
// delivery attempt per client; a client with a full send buffer misses the
// message instead of blocking the emitter.
type Hub struct {
	mu     sync.RWMutex
	rooms  map[string]map[*Client]struct{}
	logger *zap.Logger
}

// NewHub creates an empty Hub
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		rooms:  make(map[string]map[*Client]struct{}),
		logger: logger,
	}
}

// Join adds a client to a room
func (h *Hub) Join(room string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.rooms[room]
	if !ok {
		clients = make(map[*Client]struct{})
		h.rooms[room] = clients
	}
	clients[c] = struct{}{}
	c.rooms[room] = struct{}{}

	h.logger.Debug("client joined room",
		zap.String("room", room),
		zap.String("user", c.User.Username))
}

// Leave removes a client from a room
func (h *Hub) Leave(room string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveLocked(room, c)
}

func (h *Hub) leaveLocked(room string, c *Client) {
	if clients, ok := h.rooms[room]; ok {
		delete(clients, c)
		if len(clients) == 0 {
			delete(h.rooms, room)
		}
	}
	delete(c.rooms, room)
}

// Remove tears down all of a client's room memberships atomically. Called
// once on disconnect.
func (h *Hub) Remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for room := range c.rooms {
		h.leaveLocked(room, c)
	}
}

// Emit delivers an event to every client currently in the room. Delivery is
// at-most-once and best-effort: an empty room drops the event silently.
func (h *Hub) Emit(room, event string, data interface{}) {
	payload, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		h.logger.Warn("failed to marshal event", zap.String("event", event), zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.rooms[room] {
		select {
		case c.send <- payload:
		default:
			// Slow consumer: drop the message, never block the emitter
			h.logger.Warn("dropping message for slow client",
				zap.String("room", room),
				zap.String("user", c.User.Username))
		}
	}
}

// Broadcast delivers an event to every connected client exactly once
func (h *Hub) Broadcast(event string, data interface{}) {
	payload, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		h.logger.Warn("failed to marshal event", zap.String("event", event), zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	seen := make(map[*Client]struct{})
	for _, clients := range h.rooms {
		for c := range clients {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			select {
			case c.send <- payload:
			default:
			}
		}
	}
}

// RoomSize reports how many clients are currently in a room
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}
