package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fortuna/dugout/internal/backfill"
	"github.com/fortuna/dugout/internal/statsapi"
	"github.com/fortuna/dugout/internal/store"
	"github.com/fortuna/dugout/internal/store/repository"
)

func newArchiveCmd(opts *options) *cobra.Command {
	var (
		dsn    string
		all    bool
		dryRun bool
		search statsapi.SearchParams
	)

	cmd := &cobra.Command{
		Use:   "archive [team-id...]",
		Short: "Fill the snapshot archive from the stats service",
		Long: `Fetch teams, schedules, results, rosters and season stats and store them
in the snapshot archive. The service falls back to these snapshots when the
stats service is down.

Examples:
  dugout-cli archive t1 t2
  dugout-cli archive --all
  dugout-cli archive --city Austin --year 2025 --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := buildSpec(args, all, search)
			if err != nil {
				return err
			}
			spec.DryRun = dryRun

			if dsn == "" {
				return fmt.Errorf("no archive configured: set ARCHIVE_DSN or --dsn")
			}
			db, err := store.NewDatabase(dsn)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			defer db.Close()

			if err := db.RunMigrations(cmd.Context()); err != nil {
				return fmt.Errorf("run migrations: %w", err)
			}

			logger := log.New(cmd.ErrOrStderr(), "", log.LstdFlags)
			api := statsapi.New(strings.TrimRight(opts.apiURL, "/"),
				statsapi.WithTimeout(opts.timeout),
				statsapi.WithArchive(repository.NewSnapshotRepository(db)),
				statsapi.WithLogger(logger),
			)

			summary, err := archiveTeams(cmd.Context(), api, spec, &consoleReporter{logger: logger, dryRun: dryRun})
			if err != nil {
				return err
			}
			if opts.json() {
				return writeJSON(cmd.OutOrStdout(), summary)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Archived %d resources for %d teams (%d failed)\n",
				summary.Resources, summary.Teams, summary.Failures)
			return nil
		},
	}

	cmd.Flags().StringVar(&dsn, "dsn", getEnv("ARCHIVE_DSN", ""), "archive database DSN")
	cmd.Flags().BoolVar(&all, "all", false, "archive every team the service lists")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "list the teams without fetching")
	cmd.Flags().StringVar(&search.City, "city", "", "archive teams in this city")
	cmd.Flags().StringVar(&search.State, "state", "", "archive teams in this state")
	cmd.Flags().StringVar(&search.Season, "season", "", "archive teams of this season")
	cmd.Flags().IntVar(&search.Year, "year", 0, "archive teams of this season year")
	return cmd
}

func archiveTeams(ctx context.Context, api backfill.Fetcher, spec backfill.JobSpec, reporter backfill.Reporter) (backfill.Summary, error) {
	summary, err := backfill.NewRunner(api).Run(ctx, spec, reporter)
	if err != nil {
		return summary, fmt.Errorf("archive failed: %w", err)
	}
	return summary, nil
}

func buildSpec(teamIDs []string, all bool, search statsapi.SearchParams) (backfill.JobSpec, error) {
	filtered := search != (statsapi.SearchParams{})

	switch {
	case len(teamIDs) > 0 && (all || filtered):
		return backfill.JobSpec{}, fmt.Errorf("pass team ids, --all or search filters, not a mix")
	case len(teamIDs) > 0:
		return backfill.JobSpec{Type: backfill.JobTypeTeams, TeamIDs: teamIDs}, nil
	case all && filtered:
		return backfill.JobSpec{}, fmt.Errorf("--all cannot be combined with search filters")
	case all:
		return backfill.JobSpec{Type: backfill.JobTypeAll}, nil
	case filtered:
		search.Sport = "baseball"
		return backfill.JobSpec{Type: backfill.JobTypeSearch, Search: search}, nil
	default:
		return backfill.JobSpec{}, fmt.Errorf("specify team ids, --all, or search filters")
	}
}

type consoleReporter struct {
	logger *log.Logger
	dryRun bool
}

func (c *consoleReporter) OnJobStart(spec backfill.JobSpec, teams int) {
	c.logger.Printf("Starting %s job for %d teams (dry_run=%v)", spec.Type, teams, c.dryRun)
}

func (c *consoleReporter) OnTeamStart(teamID string, index int, total int) {
	c.logger.Printf("[%d/%d] %s", index+1, total, teamID)
}

func (c *consoleReporter) OnResourceArchived(teamID, resource string) {
	c.logger.Printf("  ✓ %s", resource)
}

func (c *consoleReporter) OnResourceFailed(teamID, resource string, err error) {
	c.logger.Printf("  ⚠️  %s: %v", resource, err)
}

func (c *consoleReporter) OnJobComplete(summary backfill.Summary) {
	c.logger.Println("Job complete")
}

func (c *consoleReporter) OnJobError(err error) {
	c.logger.Printf("Job error: %v", err)
}
