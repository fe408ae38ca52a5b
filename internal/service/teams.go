package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fortuna/dugout/internal/schedule"
	"github.com/fortuna/dugout/internal/seasons"
	"github.com/fortuna/dugout/internal/stats"
	"github.com/fortuna/dugout/internal/statsapi"
)

// StatsAPI is the subset of the stats service client the service layer uses
type StatsAPI interface {
	GetTeams(ctx context.Context) ([]statsapi.Team, error)
	GetTeam(ctx context.Context, teamID string) (*statsapi.Team, error)
	GetSchedule(ctx context.Context, teamID string) ([]statsapi.Schedule, error)
	GetGameSummaries(ctx context.Context, teamID string) ([]statsapi.GameSummary, error)
	GetPlayers(ctx context.Context, teamID string) ([]statsapi.TeamPlayer, error)
	GetSeasonStats(ctx context.Context, teamID string) (*statsapi.SeasonStatsResponse, error)
	SearchTeams(ctx context.Context, params statsapi.SearchParams) ([]statsapi.Team, error)
	AvatarURL(teamID string) string
}

// TeamService loads snapshots from the stats service and runs them through
// the season grouping, schedule correlation and stats derivation.
type TeamService struct {
	api        StatsAPI
	correlator *schedule.Correlator
	now        func() time.Time
	logger     *log.Logger
}

// NewTeamService creates a new team service
func NewTeamService(api StatsAPI, correlator *schedule.Correlator, logger *log.Logger) *TeamService {
	if correlator == nil {
		correlator = schedule.NewCorrelator()
	}
	if logger == nil {
		logger = log.New(log.Writer(), "[service] ", log.LstdFlags)
	}
	return &TeamService{
		api:        api,
		correlator: correlator,
		now:        time.Now,
		logger:     logger,
	}
}

// SetClock replaces the clock used to default missing season years
func (s *TeamService) SetClock(now func() time.Time) {
	s.now = now
}

// Correlator returns the correlator schedule views are built with
func (s *TeamService) Correlator() *schedule.Correlator {
	return s.correlator
}

// ListTeams fetches all teams and groups them by season
func (s *TeamService) ListTeams(ctx context.Context) (*TeamDirectory, error) {
	teams, err := s.api.GetTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing teams: %w", err)
	}
	return s.directory(teams), nil
}

// SearchTeams runs a search and groups the matches by season
func (s *TeamService) SearchTeams(ctx context.Context, params statsapi.SearchParams) (*TeamDirectory, error) {
	teams, err := s.api.SearchTeams(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("searching teams: %w", err)
	}
	return s.directory(teams), nil
}

func (s *TeamService) directory(teams []statsapi.Team) *TeamDirectory {
	grouping := seasons.Group(teams, s.now())

	dir := &TeamDirectory{
		Total:   len(teams),
		Seasons: make([]SeasonGroup, 0, len(grouping.Order)),
	}
	for _, label := range grouping.Order {
		group := SeasonGroup{Label: label}
		for _, team := range grouping.Buckets[label] {
			group.Teams = append(group.Teams, s.summarize(team))
		}
		dir.Seasons = append(dir.Seasons, group)
	}
	return dir
}

// GetTeam fetches a single team
func (s *TeamService) GetTeam(ctx context.Context, teamID string) (*TeamSummary, error) {
	team, err := s.api.GetTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("fetching team: %w", err)
	}
	summary := s.summarize(*team)
	return &summary, nil
}

// GetRoster fetches a team and its players. A failed roster fetch yields
// an empty roster.
func (s *TeamService) GetRoster(ctx context.Context, teamID string) (*RosterView, error) {
	var (
		team    *statsapi.Team
		players []statsapi.TeamPlayer
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		team, err = s.api.GetTeam(gctx, teamID)
		if err != nil {
			return fmt.Errorf("fetching team: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		players = s.playersOrEmpty(gctx, teamID)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	view := &RosterView{
		Team:    s.summarize(*team),
		Players: make([]RosterEntry, 0, len(players)),
	}
	for _, p := range players {
		view.Players = append(view.Players, RosterEntry{
			TeamPlayer: p,
			Name:       p.FullName(),
			Initials:   seasons.PlayerInitials(p.FirstName, p.LastName),
			Handedness: seasons.FormatHandedness(p.Bats),
		})
	}
	return view, nil
}

// GetSchedule fetches a team with its schedule and results and correlates
// them. Failed schedule or result fetches are treated as empty and mark the
// view incomplete.
func (s *TeamService) GetSchedule(ctx context.Context, teamID string, order schedule.Order) (*ScheduleView, error) {
	var (
		team      *statsapi.Team
		entries   []statsapi.Schedule
		summaries []statsapi.GameSummary

		scheduleMissing, resultsMissing bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		team, err = s.api.GetTeam(gctx, teamID)
		if err != nil {
			return fmt.Errorf("fetching team: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		entries, err = s.api.GetSchedule(gctx, teamID)
		if err != nil {
			s.logger.Printf("⚠️  schedule for %s unavailable, showing none: %v", teamID, err)
			entries = nil
			scheduleMissing = true
		}
		return nil
	})
	g.Go(func() error {
		var err error
		summaries, err = s.api.GetGameSummaries(gctx, teamID)
		if err != nil {
			s.logger.Printf("⚠️  game summaries for %s unavailable, showing times only: %v", teamID, err)
			summaries = nil
			resultsMissing = true
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &ScheduleView{
		Team:       s.summarize(*team),
		Order:      order,
		Months:     s.correlator.Correlate(*team, entries, summaries, order),
		Incomplete: scheduleMissing || resultsMissing,
	}, nil
}

// GetSeasonStats fetches a team, its roster and season stats and derives
// the requested table. Failed roster or stats fetches yield an empty table.
func (s *TeamService) GetSeasonStats(ctx context.Context, teamID string, view stats.View) (*SeasonStatsView, error) {
	var (
		team    *statsapi.Team
		players []statsapi.TeamPlayer
		season  *statsapi.SeasonStatsResponse
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		team, err = s.api.GetTeam(gctx, teamID)
		if err != nil {
			return fmt.Errorf("fetching team: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		players = s.playersOrEmpty(gctx, teamID)
		return nil
	})
	g.Go(func() error {
		var err error
		season, err = s.api.GetSeasonStats(gctx, teamID)
		if err != nil {
			s.logger.Printf("⚠️  season stats for %s unavailable: %v", teamID, err)
			season = nil
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &SeasonStatsView{
		Team:  s.summarize(*team),
		Table: stats.Derive(view, players, season),
	}, nil
}

func (s *TeamService) playersOrEmpty(ctx context.Context, teamID string) []statsapi.TeamPlayer {
	players, err := s.api.GetPlayers(ctx, teamID)
	if err != nil {
		s.logger.Printf("⚠️  roster for %s unavailable: %v", teamID, err)
		return nil
	}
	return players
}

func (s *TeamService) summarize(team statsapi.Team) TeamSummary {
	return TeamSummary{
		Team:        team,
		SeasonLabel: seasons.TeamLabel(team, s.now()),
		Record:      seasons.FormatRecord(team.Record),
		Initials:    seasons.Initials(team.Name),
		AvatarURL:   s.api.AvatarURL(team.ID),
	}
}
