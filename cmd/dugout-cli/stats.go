package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fortuna/dugout/internal/stats"
)

func newStatsCmd(opts *options) *cobra.Command {
	var (
		category string
		subtype  string
		legend   bool
	)

	cmd := &cobra.Command{
		Use:   "stats <team-id>",
		Short: "Show a team's season stats table",
		Long: `Show a team's season stats for one view.

Views: batting standard|advanced, pitching standard|advanced,
fielding standard|catching.

Examples:
  dugout-cli stats 8f2c...
  dugout-cli stats 8f2c... --category pitching --type advanced --legend`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view := stats.NewView(category, subtype)
			if !view.Supported() {
				fmt.Fprintf(cmd.ErrOrStderr(), "⚠️  %s is not a known view, showing games played only\n", view)
			}

			result, err := opts.service(cmd).GetSeasonStats(cmd.Context(), args[0], view)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.json() {
				return writeJSON(out, result)
			}

			table := result.Table
			fmt.Fprintf(out, "%s  %s\n\n", result.Team.Name, table.View.Label())
			if len(table.Rows) == 0 {
				fmt.Fprintln(out, "No stats available")
			} else {
				w := newTable(out)
				fmt.Fprintln(w, strings.Join(table.Headers(), "\t"))
				for _, row := range table.Rows {
					cells := make([]string, 0, len(row.Cells)+1)
					cells = append(cells, row.Player)
					for _, c := range row.Cells {
						cells = append(cells, c.Text)
					}
					fmt.Fprintln(w, strings.Join(cells, "\t"))
				}
				if err := w.Flush(); err != nil {
					return err
				}
			}

			if legend {
				fmt.Fprintf(out, "\n%s\n", table.Legend.Title)
				w := newTable(out)
				for _, e := range table.Legend.Entries {
					fmt.Fprintf(w, "  %s\t%s\n", e.Abbrev, e.Meaning)
				}
				return w.Flush()
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", string(stats.DefaultView.Category), "stat category: batting, pitching, fielding")
	cmd.Flags().StringVar(&subtype, "type", string(stats.DefaultView.Subtype), "view within the category: standard, advanced, catching")
	cmd.Flags().BoolVar(&legend, "legend", false, "print the abbreviation legend")
	return cmd
}
