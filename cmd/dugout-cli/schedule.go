package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fortuna/dugout/internal/schedule"
)

func newScheduleCmd(opts *options) *cobra.Command {
	var order string

	cmd := &cobra.Command{
		Use:   "schedule <team-id>",
		Short: "Show a team's schedule with results",
		Long: `Show a team's schedule grouped by month and day. Played games show
the result (W 5-3, L 2-6, T 4-4), upcoming games their start time.

Examples:
  dugout-cli schedule 8f2c...
  dugout-cli schedule 8f2c... --order desc -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := opts.service(cmd).GetSchedule(cmd.Context(), args[0], schedule.ParseOrder(order))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.json() {
				return writeJSON(out, view)
			}

			fmt.Fprintf(out, "%s  %s  %s\n", view.Team.Name, view.Team.SeasonLabel, view.Team.Record)
			if len(view.Months) == 0 {
				fmt.Fprintln(out, "No games scheduled")
				return nil
			}

			for _, month := range view.Months {
				fmt.Fprintf(out, "\n%s\n", month.Month)
				w := newTable(out)
				for _, day := range month.Days {
					date := schedule.TBD
					if day.DayOfMonth > 0 {
						date = fmt.Sprintf("%s %d", day.Weekday, day.DayOfMonth)
					}
					for _, row := range day.Rows {
						fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", date, row.Opponent, row.Venue, row.Label)
					}
				}
				if err := w.Flush(); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&order, "order", "asc", "month order: asc or desc")
	return cmd
}
