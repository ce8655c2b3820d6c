package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/tdurand/strobe/internal/trace"
)

// ReportOptions holds flags for the report command.
type ReportOptions struct {
	*RootOptions
	Database string
}

// NewReportCommand creates the report command, which summarizes the runs
// archived in a trace database.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize archived runs from a trace database",
		Long: `Summarize the runs archived in a trace database: one line per run
with its token, plan, worker count, and per-worker cycle counts.

Example:
  strobe report --db ./trace.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to the trace database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runReport(opts *ReportOptions, cmd *cobra.Command) error {
	setupLogging(opts.Verbose)

	if _, err := os.Stat(opts.Database); err != nil {
		return WrapExitError(ExitCommandError, "trace database not found", err)
	}

	st, err := trace.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open trace database", err)
	}
	defer st.Close()

	runs, err := st.Runs(cmd.Context())
	if err != nil {
		return WrapExitError(ExitFailure, "failed to list runs", err)
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs recorded")
		return nil
	}

	for _, run := range runs {
		counts, err := st.CycleCounts(cmd.Context(), run.Token)
		if err != nil {
			return WrapExitError(ExitFailure, "failed to count cycles", err)
		}

		workers := make([]int, 0, len(counts))
		for w := range counts {
			workers = append(workers, w)
		}
		sort.Ints(workers)

		fmt.Fprintf(out, "%s  started=%s  plan=%s  workers=%d  events=%d\n",
			run.Token, run.StartedAt.Format("2006-01-02T15:04:05"), planLabel(run.Plan), run.Workers, run.Events)
		for _, w := range workers {
			fmt.Fprintf(out, "  worker %d: %d cycles\n", w, counts[w])
		}
	}
	return nil
}

func planLabel(name string) string {
	if name == "" {
		return "-"
	}
	return name
}
