package websocket

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Server pushes schedule updates to WebSocket clients
type Server struct {
	hub    *Hub
	ctx    context.Context
	logger *log.Logger
}

// NewServer creates a WebSocket server and starts its hub. Client
// connections are closed when ctx is cancelled.
func NewServer(ctx context.Context, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(log.Writer(), "[ws] ", log.LstdFlags)
	}

	hub := NewHub(logger)
	go hub.Run(ctx)

	return &Server{
		hub:    hub,
		ctx:    ctx,
		logger: logger,
	}
}

// Hub returns the server's hub
func (s *Server) Hub() *Hub {
	return s.hub
}

// Handler serves /ws/schedule and /ws/health
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws/schedule", s.HandleSchedule)
	mux.HandleFunc("/ws/health", s.HandleHealth)
	return mux
}

// HandleSchedule upgrades a connection and follows the team given by ?team=
func (s *Server) HandleSchedule(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Printf("⚠️  WebSocket upgrade error: %v", err)
		return
	}

	c := NewClient(uuid.New().String(), conn, s.hub, r.URL.Query().Get("team"))
	s.hub.Register(c)

	go c.WritePump(s.ctx)
	go c.ReadPump(s.ctx)
}

// HandleHealth returns the hub metrics
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	health := s.hub.GetMetrics()
	health["status"] = "healthy"

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(health)
}

// PublishScheduleUpdate broadcasts a schedule update to the team's followers
func (s *Server) PublishScheduleUpdate(ctx context.Context, teamID string, update interface{}) error {
	s.hub.Broadcast(ServerMessage{
		Type:      MessageTypeScheduleUpdate,
		TeamID:    teamID,
		Payload:   update,
		Timestamp: time.Now(),
	})
	return nil
}
