package service

import (
	"github.com/fortuna/dugout/internal/schedule"
	"github.com/fortuna/dugout/internal/stats"
	"github.com/fortuna/dugout/internal/statsapi"
)

// TeamSummary is a team with its display fields resolved
type TeamSummary struct {
	statsapi.Team
	SeasonLabel string `json:"season_label"`
	Record      string `json:"record_display"`
	Initials    string `json:"initials"`
	AvatarURL   string `json:"avatar_url"`
}

// SeasonGroup is one "Season Year" section of the team directory
type SeasonGroup struct {
	Label string        `json:"label"`
	Teams []TeamSummary `json:"teams"`
}

// TeamDirectory lists teams grouped by season, most recent first
type TeamDirectory struct {
	Total   int           `json:"total"`
	Seasons []SeasonGroup `json:"seasons"`
}

// RosterEntry is a roster player with display fields
type RosterEntry struct {
	statsapi.TeamPlayer
	Name       string `json:"name"`
	Initials   string `json:"initials"`
	Handedness string `json:"handedness,omitempty"`
}

// RosterView is a team with its players
type RosterView struct {
	Team    TeamSummary   `json:"team"`
	Players []RosterEntry `json:"players"`
}

// ScheduleView is a team's correlated schedule. Incomplete is set when the
// schedule or the results could not be fetched and the rows only reflect
// what was available.
type ScheduleView struct {
	Team       TeamSummary           `json:"team"`
	Order      schedule.Order        `json:"-"`
	Months     []schedule.MonthGroup `json:"months"`
	Incomplete bool                  `json:"incomplete,omitempty"`
}

// SeasonStatsView is a team's derived season-stats table
type SeasonStatsView struct {
	Team  TeamSummary `json:"team"`
	Table stats.Table `json:"table"`
}
