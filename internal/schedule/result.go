package schedule

import (
	"strconv"
	"strings"

	"github.com/fortuna/dugout/internal/statsapi"
)

// Outcome classifies a row for styling
type Outcome string

const (
	OutcomeWin       Outcome = "win"
	OutcomeLoss      Outcome = "loss"
	OutcomeTie       Outcome = "tie"
	OutcomeScheduled Outcome = "scheduled"
	OutcomeTBD       Outcome = "tbd"
)

// Score is the team's and the opponent's final score
type Score struct {
	Team     float64 `json:"team"`
	Opponent float64 `json:"opponent"`
}

// InferHome guesses whether the team hosts an entry: home when no venue name
// is known, otherwise home iff the venue name contains the team's city.
// This is a heuristic; venue names often omit the city.
func InferHome(team statsapi.Team, entry statsapi.Schedule) bool {
	if entry.Event.Location == nil || entry.Event.Location.Name == "" {
		return true
	}
	return strings.Contains(entry.Event.Location.Name, team.City)
}

// ResolveScore extracts the team's score and the opponent's from a summary.
// ok is false when the summary holds no usable final score.
func ResolveScore(summary *statsapi.GameSummary, home bool) (Score, bool) {
	if summary == nil {
		return Score{}, false
	}

	if summary.OpponentTeamScore.Valid {
		if team, ok := owningScore(summary); ok {
			return Score{Team: team, Opponent: summary.OpponentTeamScore.Value}, true
		}
	}

	if summary.HomeTeamScore.Valid && summary.AwayTeamScore.Valid {
		if home {
			return Score{Team: summary.HomeTeamScore.Value, Opponent: summary.AwayTeamScore.Value}, true
		}
		return Score{Team: summary.AwayTeamScore.Value, Opponent: summary.HomeTeamScore.Value}, true
	}

	return Score{}, false
}

// owningScore prefers the explicit owning score, then the home/away field
// named by home_away.
func owningScore(summary *statsapi.GameSummary) (float64, bool) {
	if summary.OwningTeamScore.Valid {
		return summary.OwningTeamScore.Value, true
	}
	switch strings.ToLower(strings.TrimSpace(summary.HomeAway)) {
	case "home":
		if summary.HomeTeamScore.Valid {
			return summary.HomeTeamScore.Value, true
		}
	case "away":
		if summary.AwayTeamScore.Valid {
			return summary.AwayTeamScore.Value, true
		}
	}
	return 0, false
}

// ScoreLabel renders "W 5-3", "L 3-5" or "T 3-3"
func ScoreLabel(score Score) (string, Outcome) {
	text := formatScore(score.Team) + "-" + formatScore(score.Opponent)
	switch {
	case score.Team > score.Opponent:
		return "W " + text, OutcomeWin
	case score.Team < score.Opponent:
		return "L " + text, OutcomeLoss
	default:
		return "T " + text, OutcomeTie
	}
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// OpponentDisplay renders "vs. Name" at home and "@ Name" away
func OpponentDisplay(entry statsapi.Schedule, home bool) string {
	name := "TBD"
	if entry.PregameData != nil && entry.PregameData.OpponentName != "" {
		name = entry.PregameData.OpponentName
	}
	if home {
		return "vs. " + name
	}
	return "@ " + name
}

// VenueDisplay is the venue name, else the joined address, else "Location TBD"
func VenueDisplay(entry statsapi.Schedule) string {
	loc := entry.Event.Location
	if loc == nil {
		return "Location TBD"
	}
	if loc.Name != "" {
		return loc.Name
	}
	if address := strings.Join(loc.Address, ", "); address != "" {
		return address
	}
	return "Location TBD"
}
