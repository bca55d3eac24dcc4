package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait = 10 * time.Second
	pongWait  = 60 * time.Second
	// pingPeriod must stay below pongWait
	pingPeriod = (pongWait * 9) / 10

	// Inbound frames are subscription requests only
	maxMessageSize = 1024
	sendBuffer     = 64
)

// SubscribeRequest is the only frame a dashboard sends. An empty Types
// list restores the default of receiving every event.
//
//	{"subscribe": ["state.updated"]}
type SubscribeRequest struct {
	Subscribe []string `json:"subscribe"`
}

// Client is one connected dashboard
type Client struct {
	id   string
	conn *websocket.Conn
	hub  *Hub
	send chan []byte

	mu     sync.RWMutex
	topics map[string]bool
	closed bool

	closeOnce sync.Once
}

// NewClient wraps an upgraded connection
func NewClient(conn *websocket.Conn, hub *Hub) *Client {
	return &Client{
		id:   uuid.NewString(),
		conn: conn,
		hub:  hub,
		send: make(chan []byte, sendBuffer),
	}
}

// ID returns the client's unique identifier
func (c *Client) ID() string {
	return c.id
}

// Wants reports whether the client subscribed to eventType
func (c *Client) Wants(eventType string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.topics) == 0 || c.topics[eventType]
}

// Subscribe replaces the client's event filter
func (c *Client) Subscribe(types []string) {
	topics := make(map[string]bool, len(types))
	for _, t := range types {
		topics[t] = true
	}

	c.mu.Lock()
	c.topics = topics
	c.mu.Unlock()
}

// Send queues data without blocking. A full buffer means the dashboard
// stopped reading and is treated as closed.
func (c *Client) Send(data []byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return ErrClientClosed
	}

	select {
	case c.send <- data:
		return nil
	default:
		return ErrClientClosed
	}
}

// Close is idempotent
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		close(c.send)
		c.mu.Unlock()

		err = c.conn.Close()
	})
	return err
}

// Serve runs the connection until the peer goes away. It blocks, and
// unregisters the client on return.
func (c *Client) Serve() {
	go c.writeLoop()
	c.readLoop()
}

func (c *Client) readLoop() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn().Err(err).Str("client_id", c.id).Msg("WebSocket unexpected close")
			}
			return
		}
		c.handleFrame(data)
	}
}

func (c *Client) handleFrame(data []byte) {
	var req SubscribeRequest
	if err := json.Unmarshal(data, &req); err != nil {
		log.Debug().Err(err).Str("client_id", c.id).Msg("Ignoring malformed WebSocket frame")
		return
	}
	c.Subscribe(req.Subscribe)

	log.Debug().
		Str("client_id", c.id).
		Strs("topics", req.Subscribe).
		Msg("WebSocket subscription updated")
}

func (c *Client) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Warn().Err(err).Str("client_id", c.id).Msg("WebSocket write error")
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
