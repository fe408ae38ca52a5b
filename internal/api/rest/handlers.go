package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/fortuna/dugout/internal/schedule"
	"github.com/fortuna/dugout/internal/service"
	"github.com/fortuna/dugout/internal/stats"
	"github.com/fortuna/dugout/internal/statsapi"
)

// TeamAPI is the service the handlers read from
type TeamAPI interface {
	ListTeams(ctx context.Context) (*service.TeamDirectory, error)
	SearchTeams(ctx context.Context, params statsapi.SearchParams) (*service.TeamDirectory, error)
	GetTeam(ctx context.Context, teamID string) (*service.TeamSummary, error)
	GetRoster(ctx context.Context, teamID string) (*service.RosterView, error)
	GetSchedule(ctx context.Context, teamID string, order schedule.Order) (*service.ScheduleView, error)
	GetSeasonStats(ctx context.Context, teamID string, view stats.View) (*service.SeasonStatsView, error)
}

// HealthFunc reports whether a dependency is reachable
type HealthFunc func(ctx context.Context) error

// StatusFunc reports the state of a background component
type StatusFunc func() map[string]interface{}

// Handler contains dependencies for HTTP handlers
type Handler struct {
	teams        TeamAPI
	defaultOrder schedule.Order
	checks       map[string]HealthFunc
	statuses     map[string]StatusFunc
}

// NewHandler creates a new handler. Schedules are listed in defaultOrder
// unless a request asks otherwise.
func NewHandler(teams TeamAPI, defaultOrder schedule.Order) *Handler {
	return &Handler{
		teams:        teams,
		defaultOrder: defaultOrder,
		checks:       make(map[string]HealthFunc),
		statuses:     make(map[string]StatusFunc),
	}
}

// AddHealthCheck includes a dependency in /health
func (h *Handler) AddHealthCheck(name string, check HealthFunc) {
	h.checks[name] = check
}

// AddStatus includes a background component's status in /health
func (h *Handler) AddStatus(name string, status StatusFunc) {
	h.statuses[name] = status
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	deps := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(r.Context()); err != nil {
			deps[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		deps[name] = "ok"
	}

	body := map[string]interface{}{
		"status":  "healthy",
		"service": "dugout",
	}
	if status != http.StatusOK {
		body["status"] = "degraded"
	}
	if len(deps) > 0 {
		body["dependencies"] = deps
	}
	for name, fn := range h.statuses {
		body[name] = fn()
	}
	respondJSON(w, status, body)
}

// GetTeams returns every team grouped by season year
func (h *Handler) GetTeams(w http.ResponseWriter, r *http.Request) {
	dir, err := h.teams.ListTeams(r.Context())
	if err != nil {
		respondUpstreamError(w, "Failed to fetch teams", err)
		return
	}

	respondJSON(w, http.StatusOK, dir)
}

// SearchTeams filters teams by sport, city, state, season and year
func (h *Handler) SearchTeams(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := statsapi.SearchParams{
		Sport:  q.Get("sport"),
		City:   strings.TrimSpace(q.Get("city")),
		State:  strings.TrimSpace(q.Get("state")),
		Season: q.Get("season"),
	}
	if params.Sport == "" {
		params.Sport = "baseball"
	}
	if yearStr := q.Get("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid year", err)
			return
		}
		params.Year = year
	}

	dir, err := h.teams.SearchTeams(r.Context(), params)
	if err != nil {
		respondUpstreamError(w, "Failed to search teams", err)
		return
	}

	respondJSON(w, http.StatusOK, dir)
}

// GetTeam returns a specific team by ID
func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	team, err := h.teams.GetTeam(r.Context(), mux.Vars(r)["teamID"])
	if err != nil {
		respondUpstreamError(w, "Failed to fetch team", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"team": team})
}

// GetTeamRoster returns a team's players
func (h *Handler) GetTeamRoster(w http.ResponseWriter, r *http.Request) {
	roster, err := h.teams.GetRoster(r.Context(), mux.Vars(r)["teamID"])
	if err != nil {
		respondUpstreamError(w, "Failed to fetch team roster", err)
		return
	}

	respondJSON(w, http.StatusOK, roster)
}

// GetTeamSchedule returns a team's schedule grouped by month and day with
// result labels
func (h *Handler) GetTeamSchedule(w http.ResponseWriter, r *http.Request) {
	order := h.defaultOrder
	if o := r.URL.Query().Get("order"); o != "" {
		order = schedule.ParseOrder(o)
	}

	view, err := h.teams.GetSchedule(r.Context(), mux.Vars(r)["teamID"], order)
	if err != nil {
		respondUpstreamError(w, "Failed to fetch team schedule", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"team":   view.Team,
		"order":  view.Order.String(),
		"months": view.Months,
	})
}

// GetTeamSeasonStats returns the derived season-stats table for
// ?category= and ?type=
func (h *Handler) GetTeamSeasonStats(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view := stats.NewView(q.Get("category"), q.Get("type"))

	result, err := h.teams.GetSeasonStats(r.Context(), mux.Vars(r)["teamID"], view)
	if err != nil {
		respondUpstreamError(w, "Failed to fetch season stats", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetStatViews lists the supported category/type combinations
func (h *Handler) GetStatViews(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"default": stats.DefaultView,
		"views":   stats.Views(),
	})
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	respondJSON(w, status, response)
}

// respondUpstreamError maps stats service failures: unknown ids are 404,
// everything else 502.
func respondUpstreamError(w http.ResponseWriter, message string, err error) {
	status := http.StatusBadGateway
	if errors.Is(err, statsapi.ErrNotFound) {
		status = http.StatusNotFound
	}
	respondError(w, status, message, err)
}
