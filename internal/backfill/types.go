package backfill

import "github.com/fortuna/dugout/internal/statsapi"

// JobType enumerates the supported backfill job variants.
type JobType string

const (
	// JobTypeTeams archives the listed team ids
	JobTypeTeams JobType = "teams"
	// JobTypeSearch archives every team a search returns
	JobTypeSearch JobType = "search"
	// JobTypeAll archives every team the service lists
	JobTypeAll JobType = "all"
)

// Resources fetched for every team, in order
const (
	ResourceTeam          = "team"
	ResourceSchedule      = "schedule"
	ResourceGameSummaries = "game-summaries"
	ResourcePlayers       = "players"
	ResourceSeasonStats   = "season-stats"
)

var teamResources = []string{
	ResourceTeam,
	ResourceSchedule,
	ResourceGameSummaries,
	ResourcePlayers,
	ResourceSeasonStats,
}

// JobSpec describes the work to be performed by the runner.
type JobSpec struct {
	Type    JobType
	TeamIDs []string
	Search  statsapi.SearchParams
	DryRun  bool
}

// Summary counts what a run archived
type Summary struct {
	Teams     int `json:"teams"`
	Resources int `json:"resources"`
	Failures  int `json:"failures"`
}

// Reporter receives lifecycle callbacks from the runner.
type Reporter interface {
	OnJobStart(spec JobSpec, teams int)
	OnTeamStart(teamID string, index int, total int)
	OnResourceArchived(teamID, resource string)
	OnResourceFailed(teamID, resource string, err error)
	OnJobComplete(summary Summary)
	OnJobError(err error)
}
