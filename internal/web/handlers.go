package web

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/gorilla/mux"

	"github.com/fortuna/dugout/internal/schedule"
	"github.com/fortuna/dugout/internal/service"
	"github.com/fortuna/dugout/internal/stats"
	"github.com/fortuna/dugout/internal/statsapi"
)

// TeamReader is the service the pages are rendered from
type TeamReader interface {
	ListTeams(ctx context.Context) (*service.TeamDirectory, error)
	SearchTeams(ctx context.Context, params statsapi.SearchParams) (*service.TeamDirectory, error)
	GetRoster(ctx context.Context, teamID string) (*service.RosterView, error)
	GetSchedule(ctx context.Context, teamID string, order schedule.Order) (*service.ScheduleView, error)
	GetSeasonStats(ctx context.Context, teamID string, view stats.View) (*service.SeasonStatsView, error)
}

// Pages serves the HTML views
type Pages struct {
	teams        TeamReader
	defaultOrder schedule.Order
	logger       *log.Logger
}

// NewPages creates the HTML page handlers
func NewPages(teams TeamReader, defaultOrder schedule.Order, logger *log.Logger) *Pages {
	if logger == nil {
		logger = log.New(log.Writer(), "[web] ", log.LstdFlags)
	}
	return &Pages{
		teams:        teams,
		defaultOrder: defaultOrder,
		logger:       logger,
	}
}

// Register adds the page routes to router
func (p *Pages) Register(router *mux.Router) {
	router.Handle("/", http.RedirectHandler("/teams", http.StatusFound)).Methods("GET")
	router.HandleFunc("/teams", p.Teams).Methods("GET")
	router.HandleFunc("/teams/{teamID}", p.redirectToSchedule).Methods("GET")
	router.HandleFunc("/teams/{teamID}/"+TabSchedule, p.Schedule).Methods("GET")
	router.HandleFunc("/teams/{teamID}/"+TabSeasonStats, p.SeasonStats).Methods("GET")
	router.HandleFunc("/teams/{teamID}/"+TabTeamInfo, p.TeamInfo).Methods("GET")
}

// Teams lists every team, or the matches of a search when the query has
// filters
func (p *Pages) Teams(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := statsapi.SearchParams{
		City:   strings.TrimSpace(q.Get("city")),
		State:  strings.TrimSpace(q.Get("state")),
		Season: q.Get("season"),
	}
	if year, err := strconv.Atoi(q.Get("year")); err == nil {
		params.Year = year
	}

	var (
		dir *service.TeamDirectory
		err error
	)
	if params == (statsapi.SearchParams{}) {
		dir, err = p.teams.ListTeams(r.Context())
	} else {
		search := params
		search.Sport = "baseball"
		dir, err = p.teams.SearchTeams(r.Context(), search)
	}
	if err != nil {
		p.fail(w, r, err)
		return
	}

	p.render(w, r, TeamsPage(dir, params))
}

func (p *Pages) redirectToSchedule(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, teamURL(mux.Vars(r)["teamID"], TabSchedule), http.StatusFound)
}

// Schedule shows a team's schedule
func (p *Pages) Schedule(w http.ResponseWriter, r *http.Request) {
	order := p.defaultOrder
	if o := r.URL.Query().Get("order"); o != "" {
		order = schedule.ParseOrder(o)
	}

	view, err := p.teams.GetSchedule(r.Context(), mux.Vars(r)["teamID"], order)
	if err != nil {
		p.fail(w, r, err)
		return
	}

	p.render(w, r, SchedulePage(view))
}

// SeasonStats shows a team's season-stats table
func (p *Pages) SeasonStats(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view := stats.NewView(q.Get("category"), q.Get("type"))

	result, err := p.teams.GetSeasonStats(r.Context(), mux.Vars(r)["teamID"], view)
	if err != nil {
		p.fail(w, r, err)
		return
	}

	p.render(w, r, SeasonStatsPage(result))
}

// TeamInfo shows a team's details and roster
func (p *Pages) TeamInfo(w http.ResponseWriter, r *http.Request) {
	roster, err := p.teams.GetRoster(r.Context(), mux.Vars(r)["teamID"])
	if err != nil {
		p.fail(w, r, err)
		return
	}

	p.render(w, r, TeamInfoPage(roster))
}

func (p *Pages) render(w http.ResponseWriter, r *http.Request, c templ.Component, opts ...func(*templ.ComponentHandler)) {
	templ.Handler(c, opts...).ServeHTTP(w, r)
}

func (p *Pages) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusBadGateway
	message := "The stats service is unavailable. Try again shortly."
	if errors.Is(err, statsapi.ErrNotFound) {
		status = http.StatusNotFound
		message = "That team could not be found."
	}

	p.logger.Printf("⚠️  %s %s: %v", r.Method, r.URL.Path, err)
	p.render(w, r, ErrorPage(message), templ.WithStatus(status))
}
