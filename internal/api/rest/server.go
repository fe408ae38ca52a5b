package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// Mount registers additional routes (HTML pages, WebSocket) on the router
type Mount func(router *mux.Router)

// Server represents the REST API server
type Server struct {
	port    string
	server  *http.Server
	handler *Handler
}

// NewServer creates a new REST API server
func NewServer(port string, handler *Handler, mounts ...Mount) *Server {
	router := NewRouter(handler, mounts...)

	return &Server{
		port:    port,
		handler: handler,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%s", port),
			Handler:           CORSMiddleware(router),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// NewRouter builds the route table
func NewRouter(handler *Handler, mounts ...Mount) *mux.Router {
	router := mux.NewRouter()

	router.Use(RecoveryMiddleware)
	router.Use(LoggingMiddleware)

	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/teams", handler.GetTeams).Methods("GET")
	api.HandleFunc("/teams/search", handler.SearchTeams).Methods("GET")
	api.HandleFunc("/teams/{teamID}", handler.GetTeam).Methods("GET")
	api.HandleFunc("/teams/{teamID}/roster", handler.GetTeamRoster).Methods("GET")
	api.HandleFunc("/teams/{teamID}/schedule", handler.GetTeamSchedule).Methods("GET")
	api.HandleFunc("/teams/{teamID}/season-stats", handler.GetTeamSeasonStats).Methods("GET")
	api.HandleFunc("/season-stats/views", handler.GetStatViews).Methods("GET")

	for _, mount := range mounts {
		mount(router)
	}

	return router
}

// Start starts the REST API server
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
