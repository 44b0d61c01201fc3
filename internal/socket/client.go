package socket

import (
	"encoding/json"
	"time"

	"github.com/altamedia/contentdesk/backend/internal/models"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 25 * time.Second
	maxMessageSize = 4096
	sendBuffer     = 64
)

// Client is one authenticated websocket connection. A user may hold several
// clients at once (multiple tabs/devices); each joins the same rooms
// independently.
type Client struct {
	User models.AuthUser

	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	logger *zap.Logger

	// rooms this client belongs to, guarded by hub.mu
	rooms map[string]struct{}
}

func newClient(hub *Hub, conn *websocket.Conn, user models.AuthUser, logger *zap.Logger) *Client {
	return &Client{
		User:   user,
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		logger: logger,
		rooms:  make(map[string]struct{}),
	}
}

// clientMessage is what clients may send upstream: room management and ping
type clientMessage struct {
	Event string `json:"event"`
	Data  string `json:"data,omitempty"`
}

// readPump consumes client messages until the connection dies, then tears
// down all room memberships.
func (c *Client) readPump() {
	defer func() {
		c.hub.Remove(c)
		close(c.send)
		c.conn.Close()
		c.logger.Info("user disconnected", zap.String("user", c.User.Username))
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("unexpected close", zap.String("user", c.User.Username), zap.Error(err))
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}

		switch msg.Event {
		case "join:business":
			if msg.Data != "" {
				c.hub.Join(BusinessRoom(msg.Data), c)
			}
		case "leave:business":
			if msg.Data != "" {
				c.hub.Leave(BusinessRoom(msg.Data), c)
			}
		case "ping":
			c.enqueue(Envelope{Event: "pong"})
		}
	}
}

// writePump writes queued messages and keepalive pings to the connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) enqueue(env Envelope) {
	payload, err := json.Marshal(env)
	if err != nil {
		return
	}
	select {
	case c.send <- payload:
	default:
	}
}
