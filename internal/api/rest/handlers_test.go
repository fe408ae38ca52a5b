package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fortuna/dugout/internal/api/rest"
	"github.com/fortuna/dugout/internal/schedule"
	"github.com/fortuna/dugout/internal/service"
	"github.com/fortuna/dugout/internal/stats"
	"github.com/fortuna/dugout/internal/statsapi"
)

// MockTeamAPI records the arguments it was called with
type MockTeamAPI struct {
	err        error
	lastSearch statsapi.SearchParams
	lastOrder  schedule.Order
	lastView   stats.View
	lastTeamID string
}

func (m *MockTeamAPI) ListTeams(ctx context.Context) (*service.TeamDirectory, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &service.TeamDirectory{
		Total: 1,
		Seasons: []service.SeasonGroup{{
			Label: "Fall 2025",
			Teams: []service.TeamSummary{{Team: statsapi.Team{ID: "t1", Name: "Tigers"}}},
		}},
	}, nil
}

func (m *MockTeamAPI) SearchTeams(ctx context.Context, params statsapi.SearchParams) (*service.TeamDirectory, error) {
	m.lastSearch = params
	return &service.TeamDirectory{}, m.err
}

func (m *MockTeamAPI) GetTeam(ctx context.Context, teamID string) (*service.TeamSummary, error) {
	m.lastTeamID = teamID
	if m.err != nil {
		return nil, m.err
	}
	return &service.TeamSummary{Team: statsapi.Team{ID: teamID, Name: "Tigers"}}, nil
}

func (m *MockTeamAPI) GetRoster(ctx context.Context, teamID string) (*service.RosterView, error) {
	m.lastTeamID = teamID
	if m.err != nil {
		return nil, m.err
	}
	return &service.RosterView{Players: []service.RosterEntry{}}, nil
}

func (m *MockTeamAPI) GetSchedule(ctx context.Context, teamID string, order schedule.Order) (*service.ScheduleView, error) {
	m.lastTeamID = teamID
	m.lastOrder = order
	if m.err != nil {
		return nil, m.err
	}
	return &service.ScheduleView{Order: order, Months: []schedule.MonthGroup{}}, nil
}

func (m *MockTeamAPI) GetSeasonStats(ctx context.Context, teamID string, view stats.View) (*service.SeasonStatsView, error) {
	m.lastTeamID = teamID
	m.lastView = view
	if m.err != nil {
		return nil, m.err
	}
	return &service.SeasonStatsView{Table: stats.Derive(view, nil, nil)}, nil
}

func serve(t *testing.T, api rest.TeamAPI, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	router := rest.NewRouter(rest.NewHandler(api, schedule.Ascending))
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return body
}

func TestGetTeams(t *testing.T) {
	rec := serve(t, &MockTeamAPI{}, "GET", "/api/v1/teams")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	body := decode(t, rec)
	if body["total"] != float64(1) {
		t.Errorf("total = %v, want 1", body["total"])
	}
}

func TestSearchTeamsParams(t *testing.T) {
	api := &MockTeamAPI{}
	rec := serve(t, api, "GET", "/api/v1/teams/search?city=+Austin+&state=TX&season=fall&year=2025")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	want := statsapi.SearchParams{Sport: "baseball", City: "Austin", State: "TX", Season: "fall", Year: 2025}
	if api.lastSearch != want {
		t.Errorf("search params = %+v, want %+v", api.lastSearch, want)
	}

	rec = serve(t, api, "GET", "/api/v1/teams/search?year=abc")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status for bad year = %d, want 400", rec.Code)
	}
}

func TestScheduleOrder(t *testing.T) {
	tests := []struct {
		query string
		want  schedule.Order
	}{
		{"", schedule.Ascending},
		{"?order=desc", schedule.Descending},
		{"?order=asc", schedule.Ascending},
		{"?order=bogus", schedule.Ascending},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			api := &MockTeamAPI{}
			rec := serve(t, api, "GET", "/api/v1/teams/t1/schedule"+tt.query)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			if api.lastOrder != tt.want {
				t.Errorf("order = %v, want %v", api.lastOrder, tt.want)
			}
			if got := decode(t, rec)["order"]; got != tt.want.String() {
				t.Errorf("order in body = %v, want %v", got, tt.want.String())
			}
		})
	}
}

func TestSeasonStatsView(t *testing.T) {
	api := &MockTeamAPI{}
	rec := serve(t, api, "GET", "/api/v1/teams/t1/season-stats?category=Pitching&type=advanced")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	want := stats.View{Category: stats.Pitching, Subtype: stats.Advanced}
	if api.lastView != want {
		t.Errorf("view = %v, want %v", api.lastView, want)
	}
	if api.lastTeamID != "t1" {
		t.Errorf("team id = %q, want t1", api.lastTeamID)
	}

	serve(t, api, "GET", "/api/v1/teams/t1/season-stats")
	if api.lastView != stats.DefaultView {
		t.Errorf("default view = %v, want %v", api.lastView, stats.DefaultView)
	}
}

func TestUpstreamErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", &statsapi.APIError{StatusCode: 404, Status: "404 Not Found"}, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("fetching team: %w", &statsapi.APIError{StatusCode: 404}), http.StatusNotFound},
		{"server error", &statsapi.APIError{StatusCode: 500, Status: "500 Internal Server Error"}, http.StatusBadGateway},
		{"transport", errors.New("connection refused"), http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, &MockTeamAPI{err: tt.err}, "GET", "/api/v1/teams/t1")
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
			if decode(t, rec)["error"] != "Failed to fetch team" {
				t.Error("expected an error message in the body")
			}
		})
	}
}

func TestHealthCheck(t *testing.T) {
	handler := rest.NewHandler(&MockTeamAPI{}, schedule.Ascending)
	handler.AddHealthCheck("cache", func(ctx context.Context) error { return nil })
	router := rest.NewRouter(handler)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	handler.AddHealthCheck("archive", func(ctx context.Context) error { return errors.New("down") })
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
	if decode(t, rec)["status"] != "degraded" {
		t.Error("expected degraded status")
	}
}

func TestHealthCheckIncludesStatuses(t *testing.T) {
	handler := rest.NewHandler(&MockTeamAPI{}, schedule.Ascending)
	handler.AddStatus("watcher", func() map[string]interface{} {
		return map[string]interface{}{"interval": "1m0s", "last_error": "results down"}
	})

	rec := httptest.NewRecorder()
	rest.NewRouter(handler).ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	watcher, ok := decode(t, rec)["watcher"].(map[string]interface{})
	if !ok {
		t.Fatal("expected a watcher section")
	}
	if watcher["last_error"] != "results down" {
		t.Errorf("last_error = %v, want results down", watcher["last_error"])
	}
}

func TestRequestIDAndCORS(t *testing.T) {
	handler := rest.CORSMiddleware(rest.NewRouter(rest.NewHandler(&MockTeamAPI{}, schedule.Ascending)))

	req := httptest.NewRequest("GET", "/api/v1/teams", nil)
	req.Header.Set("Origin", "https://example.org")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Header().Get(rest.RequestIDHeader) == "" {
		t.Error("expected a request id header")
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	h := rest.RecoveryMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}
