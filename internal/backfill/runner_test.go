package backfill_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/fortuna/dugout/internal/backfill"
	"github.com/fortuna/dugout/internal/statsapi"
)

// MockFetcher records every fetch and fails the ones listed in failures
type MockFetcher struct {
	teams    []statsapi.Team
	fetched  []string
	failures map[string]error
	searched *statsapi.SearchParams
}

func (m *MockFetcher) record(teamID, resource string) error {
	key := teamID + "/" + resource
	if err, ok := m.failures[key]; ok {
		return err
	}
	m.fetched = append(m.fetched, key)
	return nil
}

func (m *MockFetcher) GetTeams(ctx context.Context) ([]statsapi.Team, error) {
	return m.teams, nil
}

func (m *MockFetcher) SearchTeams(ctx context.Context, params statsapi.SearchParams) ([]statsapi.Team, error) {
	m.searched = &params
	return m.teams[:1], nil
}

func (m *MockFetcher) GetTeam(ctx context.Context, teamID string) (*statsapi.Team, error) {
	return &statsapi.Team{ID: teamID}, m.record(teamID, backfill.ResourceTeam)
}

func (m *MockFetcher) GetSchedule(ctx context.Context, teamID string) ([]statsapi.Schedule, error) {
	return nil, m.record(teamID, backfill.ResourceSchedule)
}

func (m *MockFetcher) GetGameSummaries(ctx context.Context, teamID string) ([]statsapi.GameSummary, error) {
	return nil, m.record(teamID, backfill.ResourceGameSummaries)
}

func (m *MockFetcher) GetPlayers(ctx context.Context, teamID string) ([]statsapi.TeamPlayer, error) {
	return nil, m.record(teamID, backfill.ResourcePlayers)
}

func (m *MockFetcher) GetSeasonStats(ctx context.Context, teamID string) (*statsapi.SeasonStatsResponse, error) {
	return nil, m.record(teamID, backfill.ResourceSeasonStats)
}

// recordingReporter keeps the failed resources
type recordingReporter struct {
	started  int
	failed   []string
	complete *backfill.Summary
}

func (r *recordingReporter) OnJobStart(spec backfill.JobSpec, teams int) { r.started = teams }
func (r *recordingReporter) OnTeamStart(teamID string, index, total int) {}
func (r *recordingReporter) OnResourceArchived(teamID, resource string) {}
func (r *recordingReporter) OnResourceFailed(teamID, resource string, err error) {
	r.failed = append(r.failed, teamID+"/"+resource)
}
func (r *recordingReporter) OnJobComplete(summary backfill.Summary) { r.complete = &summary }
func (r *recordingReporter) OnJobError(err error) {}

func TestRunTeams(t *testing.T) {
	api := &MockFetcher{}
	reporter := &recordingReporter{}

	summary, err := backfill.NewRunner(api).Run(context.Background(), backfill.JobSpec{
		Type:    backfill.JobTypeTeams,
		TeamIDs: []string{"t1", "t1", ""},
	}, reporter)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []string{"t1/team", "t1/schedule", "t1/game-summaries", "t1/players", "t1/season-stats"}
	if !reflect.DeepEqual(api.fetched, want) {
		t.Errorf("fetched = %v, want %v", api.fetched, want)
	}
	if summary != (backfill.Summary{Teams: 1, Resources: 5}) {
		t.Errorf("summary = %+v, want 1 team, 5 resources", summary)
	}
	if reporter.complete == nil || *reporter.complete != summary {
		t.Error("expected OnJobComplete with the summary")
	}
}

func TestRunContinuesPastFailures(t *testing.T) {
	api := &MockFetcher{
		teams: []statsapi.Team{{ID: "t1"}, {ID: "t2"}},
		failures: map[string]error{
			"t1/team":     &statsapi.APIError{StatusCode: 404},
			"t2/schedule": errors.New("timeout"),
		},
	}
	reporter := &recordingReporter{}

	summary, err := backfill.NewRunner(api).Run(context.Background(), backfill.JobSpec{Type: backfill.JobTypeAll}, reporter)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if reporter.started != 2 {
		t.Errorf("started with %d teams, want 2", reporter.started)
	}
	if !reflect.DeepEqual(reporter.failed, []string{"t1/team", "t2/schedule"}) {
		t.Errorf("failed = %v", reporter.failed)
	}
	want := backfill.Summary{Teams: 2, Resources: 4, Failures: 2}
	if summary != want {
		t.Errorf("summary = %+v, want %+v", summary, want)
	}
}

func TestRunSearchAndDryRun(t *testing.T) {
	api := &MockFetcher{teams: []statsapi.Team{{ID: "t1"}, {ID: "t2"}}}
	params := statsapi.SearchParams{Sport: "baseball", City: "Austin"}

	summary, err := backfill.NewRunner(api).Run(context.Background(), backfill.JobSpec{
		Type:   backfill.JobTypeSearch,
		Search: params,
		DryRun: true,
	}, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if api.searched == nil || *api.searched != params {
		t.Errorf("search = %v, want %+v", api.searched, params)
	}
	if len(api.fetched) != 0 {
		t.Errorf("dry run fetched %v", api.fetched)
	}
	if summary.Teams != 1 {
		t.Errorf("teams = %d, want 1", summary.Teams)
	}
}

func TestRunInvalidSpecs(t *testing.T) {
	tests := []struct {
		name string
		spec backfill.JobSpec
	}{
		{"no ids", backfill.JobSpec{Type: backfill.JobTypeTeams}},
		{"unknown type", backfill.JobSpec{Type: "season"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := backfill.NewRunner(&MockFetcher{}).Run(context.Background(), tt.spec, nil); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := backfill.NewRunner(&MockFetcher{}).Run(ctx, backfill.JobSpec{
		Type:    backfill.JobTypeTeams,
		TeamIDs: []string{"t1"},
	}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
