package websocket

import (
	"context"
	"log"
	"sync"
)

// Hub maintains the set of active clients and broadcasts messages to them
type Hub struct {
	clients   map[*Client]bool
	clientsMu sync.RWMutex

	broadcast  chan ServerMessage
	register   chan *Client
	unregister chan *Client

	totalConnections int64
	totalMessages    int64
	metricsMu        sync.Mutex

	done   chan struct{}
	logger *log.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(log.Writer(), "[ws] ", log.LstdFlags)
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan ServerMessage, 1000),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run starts the hub's main loop
func (h *Hub) Run(ctx context.Context) {
	h.logger.Println("✓ Hub started")

	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case c := <-h.register:
			h.registerClient(c)

		case c := <-h.unregister:
			h.unregisterClient(c)

		case msg := <-h.broadcast:
			h.broadcastMessage(msg)
		}
	}
}

// Register adds a client to the hub
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
	}
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Broadcast queues a message for every subscribed client. The message is
// dropped when the queue is full.
func (h *Hub) Broadcast(msg ServerMessage) {
	select {
	case h.broadcast <- msg:
	default:
		h.logger.Println("⚠️  Broadcast buffer full, dropping message")
	}
}

func (h *Hub) registerClient(c *Client) {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	h.clients[c] = true

	h.metricsMu.Lock()
	h.totalConnections++
	h.metricsMu.Unlock()

	h.logger.Printf("client %s connected (total: %d)", c.ID, len(h.clients))
}

func (h *Hub) unregisterClient(c *Client) {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		c.close()
		h.logger.Printf("client %s disconnected (total: %d)", c.ID, len(h.clients))
	}
}

func (h *Hub) broadcastMessage(msg ServerMessage) {
	h.clientsMu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.clientsMu.RUnlock()

	sent := 0
	for _, c := range clients {
		if !c.Subscribed(msg.TeamID) {
			continue
		}
		if c.TrySend(msg) {
			sent++
			continue
		}
		h.logger.Printf("⚠️  client %s buffer full, disconnecting", c.ID)
		go h.Unregister(c)
	}

	if sent > 0 {
		h.metricsMu.Lock()
		h.totalMessages++
		h.metricsMu.Unlock()
	}
}

// GetMetrics returns hub metrics
func (h *Hub) GetMetrics() map[string]interface{} {
	active := h.ClientCount()

	h.metricsMu.Lock()
	defer h.metricsMu.Unlock()

	return map[string]interface{}{
		"active_clients":     active,
		"total_connections":  h.totalConnections,
		"total_messages":     h.totalMessages,
		"broadcast_capacity": cap(h.broadcast),
		"broadcast_usage":    len(h.broadcast),
	}
}

// ClientCount returns the number of active clients
func (h *Hub) ClientCount() int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients)
}

func (h *Hub) shutdown() {
	close(h.done)

	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	h.logger.Printf("Shutting down hub (%d active clients)", len(h.clients))
	for c := range h.clients {
		c.close()
		delete(h.clients, c)
	}
}
