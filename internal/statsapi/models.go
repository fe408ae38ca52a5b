package statsapi

import (
	"encoding/json"
	"strings"
)

// SeasonName is one of the four seasons a team can play in
type SeasonName string

const (
	SeasonSpring SeasonName = "spring"
	SeasonSummer SeasonName = "summer"
	SeasonFall   SeasonName = "fall"
	SeasonWinter SeasonName = "winter"
)

// TeamRecord is a team's win/loss/tie record
type TeamRecord struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Ties   int `json:"ties"`
}

// Team as returned by /api/Teams
type Team struct {
	ID                      string      `json:"id"`
	Name                    string      `json:"name"`
	PublicID                string      `json:"public_id,omitempty"`
	Sport                   string      `json:"sport"`
	City                    string      `json:"city,omitempty"`
	State                   string      `json:"state,omitempty"`
	Country                 string      `json:"country,omitempty"`
	CreatedAt               string      `json:"created_at,omitempty"`
	UpdatedAt               string      `json:"updated_at,omitempty"`
	SeasonName              SeasonName  `json:"season_name,omitempty"`
	SeasonYear              int         `json:"season_year,omitempty"`
	AgeGroup                string      `json:"age_group,omitempty"`
	StatAccessLevel         string      `json:"stat_access_level,omitempty"`
	ScorekeepingAccessLevel string      `json:"scorekeeping_access_level,omitempty"`
	StreamingAccessLevel    string      `json:"streaming_access_level,omitempty"`
	Record                  *TeamRecord `json:"record,omitempty"`
	AvatarURL               string      `json:"avatar_url,omitempty"`
	Staff                   []string    `json:"staff,omitempty"`
}

// Handedness is the nested "bats" record of a roster player
type Handedness struct {
	PlayerID     string `json:"player_id"`
	BattingSide  string `json:"batting_side,omitempty"`
	ThrowingHand string `json:"throwing_hand,omitempty"`
}

// TeamPlayer is a roster entry from /api/Teams/{id}/players
type TeamPlayer struct {
	ID        string      `json:"id"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Number    string      `json:"number,omitempty"`
	Status    string      `json:"status,omitempty"`
	TeamID    string      `json:"team_id,omitempty"`
	UserID    string      `json:"user_id,omitempty"`
	PersonID  string      `json:"person_id,omitempty"`
	Bats      *Handedness `json:"bats,omitempty"`
}

// FullName joins first and last name, trimmed
func (p TeamPlayer) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// PlayerStatGroups holds a player's counting stats by group.
// Pitching is only present on newer season-stats payloads.
type PlayerStatGroups struct {
	Offense  CountingStats `json:"offense,omitempty"`
	Defense  CountingStats `json:"defense,omitempty"`
	General  CountingStats `json:"general,omitempty"`
	Pitching CountingStats `json:"pitching,omitempty"`
}

// PlayerSeasonStats is one entry of the season-stats players map
type PlayerSeasonStats struct {
	Stats PlayerStatGroups `json:"stats"`
}

// SeasonStatsData is the stats_data body of the season-stats envelope
type SeasonStatsData struct {
	Stats   json.RawMessage              `json:"stats,omitempty"`
	Players map[string]PlayerSeasonStats `json:"players,omitempty"`
}

// SeasonStatsResponse is returned by /api/Teams/{id}/season-stats
type SeasonStatsResponse struct {
	ID        string           `json:"id,omitempty"`
	TeamID    string           `json:"team_id,omitempty"`
	StatsData *SeasonStatsData `json:"stats_data,omitempty"`
}

// Player returns the stat groups for a player id, if any
func (r *SeasonStatsResponse) Player(playerID string) (PlayerStatGroups, bool) {
	if r == nil || r.StatsData == nil || r.StatsData.Players == nil {
		return PlayerStatGroups{}, false
	}
	stats, ok := r.StatsData.Players[playerID]
	return stats.Stats, ok
}

// Coordinates of a venue
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Location is where a scheduled event takes place
type Location struct {
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	Address     []string     `json:"address,omitempty"`
	Name        string       `json:"name,omitempty"`
}

// EventTime wraps the service's {"datetime": "..."} objects
type EventTime struct {
	Datetime string `json:"datetime"`
}

// Event is the timing and venue of a scheduled game
type Event struct {
	Start    EventTime `json:"start"`
	End      EventTime `json:"end"`
	Location *Location `json:"location,omitempty"`
}

// PregameData names the opponent before a result exists
type PregameData struct {
	OpponentID   string `json:"opponent_id,omitempty"`
	OpponentName string `json:"opponent_name,omitempty"`
}

// Schedule is one entry from /api/Teams/{id}/schedule
type Schedule struct {
	ID          string       `json:"id"`
	Event       Event        `json:"event"`
	PregameData *PregameData `json:"pregame_data,omitempty"`
}

// GameSummary is a result record from /api/Teams/{id}/game-summaries.
// Older payloads carry home/away scores and share the schedule id; newer ones
// carry owning/opponent scores plus home_away and point back with event_id.
type GameSummary struct {
	ID                string `json:"id,omitempty"`
	EventID           string `json:"event_id,omitempty"`
	HomeTeamScore     Number `json:"home_team_score"`
	AwayTeamScore     Number `json:"away_team_score"`
	OwningTeamScore   Number `json:"owning_team_score"`
	OpponentTeamScore Number `json:"opponent_team_score"`
	HomeAway          string `json:"home_away,omitempty"`
	GameStatus        string `json:"game_status,omitempty"`
}

// SearchParams filters /api/Search
type SearchParams struct {
	Sport  string `json:"sport,omitempty"`
	City   string `json:"city,omitempty"`
	State  string `json:"state,omitempty"`
	Season string `json:"season,omitempty"`
	Year   int    `json:"year,omitempty"`
}
