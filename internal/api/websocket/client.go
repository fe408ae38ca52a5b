package websocket

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 512

	sendBufferSize = 256
)

// Client is one WebSocket connection subscribed to a team's updates
type Client struct {
	ID   string
	Send chan ServerMessage

	conn *websocket.Conn
	hub  *Hub

	teamMu sync.RWMutex
	teamID string

	sendMu sync.Mutex
	closed bool
}

// NewClient creates a client following teamID; an empty id follows every team
func NewClient(id string, conn *websocket.Conn, hub *Hub, teamID string) *Client {
	return &Client{
		ID:     id,
		Send:   make(chan ServerMessage, sendBufferSize),
		conn:   conn,
		hub:    hub,
		teamID: teamID,
	}
}

// Subscribed reports whether the client follows teamID
func (c *Client) Subscribed(teamID string) bool {
	c.teamMu.RLock()
	defer c.teamMu.RUnlock()
	return c.teamID == "" || c.teamID == teamID
}

// TeamID returns the team the client follows
func (c *Client) TeamID() string {
	c.teamMu.RLock()
	defer c.teamMu.RUnlock()
	return c.teamID
}

func (c *Client) follow(teamID string) {
	c.teamMu.Lock()
	defer c.teamMu.Unlock()
	c.teamID = teamID
}

// TrySend queues a message without blocking; false means the buffer is full
// or the client was dropped by the hub
func (c *Client) TrySend(msg ServerMessage) bool {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	if c.closed {
		return false
	}
	select {
	case c.Send <- msg:
		return true
	default:
		return false
	}
}

// close ends the outgoing queue once; WritePump then sends a close frame
func (c *Client) close() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.Send)
	}
}

// ReadPump handles client messages until the connection closes
func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if ctx.Err() != nil {
			return
		}

		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Printf("client %s unexpected close: %v", c.ID, err)
			}
			return
		}
		c.handle(msg)
	}
}

// WritePump writes queued messages and pings to the connection
func (c *Client) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case msg, ok := <-c.Send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				c.hub.logger.Printf("client %s write error: %v", c.ID, err)
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

func (c *Client) handle(msg ClientMessage) {
	switch msg.Type {
	case MessageTypeSubscribe:
		c.follow(msg.TeamID)
		c.TrySend(ServerMessage{Type: MessageTypeSubscribe, TeamID: msg.TeamID, Timestamp: time.Now()})
	case MessageTypeHeartbeat:
		c.TrySend(ServerMessage{Type: MessageTypeHeartbeat, TeamID: c.TeamID(), Timestamp: time.Now()})
	default:
		c.TrySend(ServerMessage{
			Type:      MessageTypeError,
			Payload:   ErrorMessage{Code: "unknown_message_type", Message: "unknown message type: " + msg.Type},
			Timestamp: time.Now(),
		})
	}
}
