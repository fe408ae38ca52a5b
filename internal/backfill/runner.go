package backfill

import (
	"context"
	"errors"
	"fmt"

	"github.com/fortuna/dugout/internal/statsapi"
)

// Fetcher is the stats client the runner drives. Every successful fetch is
// archived by the client itself.
type Fetcher interface {
	GetTeams(ctx context.Context) ([]statsapi.Team, error)
	SearchTeams(ctx context.Context, params statsapi.SearchParams) ([]statsapi.Team, error)
	GetTeam(ctx context.Context, teamID string) (*statsapi.Team, error)
	GetSchedule(ctx context.Context, teamID string) ([]statsapi.Schedule, error)
	GetGameSummaries(ctx context.Context, teamID string) ([]statsapi.GameSummary, error)
	GetPlayers(ctx context.Context, teamID string) ([]statsapi.TeamPlayer, error)
	GetSeasonStats(ctx context.Context, teamID string) (*statsapi.SeasonStatsResponse, error)
}

// Runner fills the snapshot archive so pages keep working through stats
// service outages.
type Runner struct {
	api Fetcher
}

// NewRunner constructs a runner around an archiving stats client.
func NewRunner(api Fetcher) *Runner {
	return &Runner{api: api}
}

// Run executes the job spec, reporting progress via the Reporter if provided.
// A failed resource is reported and counted; the run carries on with the
// rest. A team the service doesn't know is skipped.
func (r *Runner) Run(ctx context.Context, spec JobSpec, reporter Reporter) (Summary, error) {
	if reporter == nil {
		reporter = nopReporter{}
	}

	teamIDs, err := r.resolveTeams(ctx, spec)
	if err != nil {
		reporter.OnJobError(err)
		return Summary{}, err
	}

	reporter.OnJobStart(spec, len(teamIDs))

	var summary Summary
	if spec.DryRun {
		summary.Teams = len(teamIDs)
		reporter.OnJobComplete(summary)
		return summary, nil
	}

	total := len(teamIDs)
	for idx, teamID := range teamIDs {
		if err := ctx.Err(); err != nil {
			reporter.OnJobError(err)
			return summary, err
		}

		reporter.OnTeamStart(teamID, idx, total)
		summary.Teams++

		for _, resource := range teamResources {
			if err := r.fetch(ctx, teamID, resource); err != nil {
				summary.Failures++
				reporter.OnResourceFailed(teamID, resource, err)
				if resource == ResourceTeam && errors.Is(err, statsapi.ErrNotFound) {
					break
				}
				continue
			}
			summary.Resources++
			reporter.OnResourceArchived(teamID, resource)
		}
	}

	reporter.OnJobComplete(summary)
	return summary, nil
}

func (r *Runner) resolveTeams(ctx context.Context, spec JobSpec) ([]string, error) {
	var (
		teams []statsapi.Team
		err   error
	)

	switch spec.Type {
	case JobTypeTeams:
		if len(spec.TeamIDs) == 0 {
			return nil, fmt.Errorf("no team IDs provided for job type '%s'", spec.Type)
		}
		return dedupe(spec.TeamIDs), nil
	case JobTypeSearch:
		teams, err = r.api.SearchTeams(ctx, spec.Search)
	case JobTypeAll:
		teams, err = r.api.GetTeams(ctx)
	default:
		return nil, fmt.Errorf("unknown job type '%s'", spec.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("listing teams: %w", err)
	}

	ids := make([]string, 0, len(teams))
	for _, t := range teams {
		ids = append(ids, t.ID)
	}
	return dedupe(ids), nil
}

func (r *Runner) fetch(ctx context.Context, teamID, resource string) error {
	var err error
	switch resource {
	case ResourceTeam:
		_, err = r.api.GetTeam(ctx, teamID)
	case ResourceSchedule:
		_, err = r.api.GetSchedule(ctx, teamID)
	case ResourceGameSummaries:
		_, err = r.api.GetGameSummaries(ctx, teamID)
	case ResourcePlayers:
		_, err = r.api.GetPlayers(ctx, teamID)
	case ResourceSeasonStats:
		_, err = r.api.GetSeasonStats(ctx, teamID)
	default:
		err = fmt.Errorf("unknown resource %q", resource)
	}
	return err
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

type nopReporter struct{}

func (nopReporter) OnJobStart(JobSpec, int) {}
func (nopReporter) OnTeamStart(string, int, int) {}
func (nopReporter) OnResourceArchived(string, string) {}
func (nopReporter) OnResourceFailed(string, string, error) {}
func (nopReporter) OnJobComplete(Summary) {}
func (nopReporter) OnJobError(error) {}
