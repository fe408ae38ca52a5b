package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/fortuna/dugout/internal/schedule"
	"github.com/fortuna/dugout/internal/service"
	"github.com/fortuna/dugout/internal/statsapi"
)

// options are the persistent flags shared by every command
type options struct {
	apiURL   string
	output   string
	timeout  time.Duration
	timezone string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "dugout-cli",
		Short:         "Print team schedules and season stats from the stats service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.output {
			case "table", "json":
				return nil
			default:
				return fmt.Errorf("unknown output format %q (use table or json)", opts.output)
			}
		},
	}

	root.PersistentFlags().StringVar(&opts.apiURL, "api-url", getEnv("STATS_API_URL", statsapi.DefaultBaseURL), "stats service base URL")
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", "table", "output format: table, json")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", statsapi.DefaultTimeout, "request timeout")
	root.PersistentFlags().StringVar(&opts.timezone, "timezone", getEnv("TIMEZONE", schedule.DefaultTimezone), "timezone schedule times are shown in")

	root.AddCommand(newTeamsCmd(opts))
	root.AddCommand(newScheduleCmd(opts))
	root.AddCommand(newStatsCmd(opts))
	root.AddCommand(newArchiveCmd(opts))

	return root
}

// service builds the team service the commands read from. Client warnings
// go to stderr so they don't mix with json output.
func (o *options) service(cmd *cobra.Command) *service.TeamService {
	logger := log.New(cmd.ErrOrStderr(), "", 0)

	loc, err := time.LoadLocation(o.timezone)
	if err != nil {
		logger.Printf("⚠️  unknown timezone %q, using UTC", o.timezone)
		loc = time.UTC
	}

	api := statsapi.New(strings.TrimRight(o.apiURL, "/"),
		statsapi.WithTimeout(o.timeout),
		statsapi.WithLogger(logger),
	)
	return service.NewTeamService(api, schedule.NewCorrelator(schedule.WithLocation(loc)), logger)
}

func (o *options) json() bool {
	return o.output == "json"
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
