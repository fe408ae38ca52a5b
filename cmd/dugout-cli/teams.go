package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fortuna/dugout/internal/service"
	"github.com/fortuna/dugout/internal/statsapi"
)

func newTeamsCmd(opts *options) *cobra.Command {
	var params statsapi.SearchParams

	cmd := &cobra.Command{
		Use:   "teams",
		Short: "List teams grouped by season year",
		Long: `List teams grouped by season year, most recent first.
Any filter flag turns the listing into a search.

Examples:
  dugout-cli teams
  dugout-cli teams --city Austin --season fall --year 2025`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := opts.service(cmd)

			var (
				dir *service.TeamDirectory
				err error
			)
			if params == (statsapi.SearchParams{}) {
				dir, err = svc.ListTeams(cmd.Context())
			} else {
				search := params
				search.Sport = "baseball"
				dir, err = svc.SearchTeams(cmd.Context(), search)
			}
			if err != nil {
				return err
			}

			if opts.json() {
				return writeJSON(cmd.OutOrStdout(), dir)
			}
			return printDirectory(cmd, dir)
		},
	}

	cmd.Flags().StringVar(&params.City, "city", "", "filter by city")
	cmd.Flags().StringVar(&params.State, "state", "", "filter by state")
	cmd.Flags().StringVar(&params.Season, "season", "", "filter by season (spring, summer, fall, winter)")
	cmd.Flags().IntVar(&params.Year, "year", 0, "filter by season year")

	return cmd
}

func printDirectory(cmd *cobra.Command, dir *service.TeamDirectory) error {
	out := cmd.OutOrStdout()
	if dir.Total == 0 {
		fmt.Fprintln(out, "No teams found")
		return nil
	}

	for i, group := range dir.Seasons {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "%s (%d)\n", group.Label, len(group.Teams))

		w := newTable(out)
		fmt.Fprintln(w, "ID\tNAME\tRECORD\tLOCATION")
		for _, team := range group.Teams {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", team.ID, team.Name, team.Record, location(team.City, team.State))
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func location(city, state string) string {
	switch {
	case city != "" && state != "":
		return city + ", " + state
	case city != "":
		return city
	default:
		return state
	}
}
