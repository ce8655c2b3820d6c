package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tdurand/strobe/internal/harness"
	"github.com/tdurand/strobe/internal/sim"
)

// OnceOptions holds flags for the once command.
type OnceOptions struct {
	*RootOptions
	Cycles   int
	Database string
}

// NewOnceCommand creates the once command: a single-worker, cycle-counted
// run with no barrier and no time budget.
func NewOnceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &OnceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "once",
		Short: "Run a fixed number of busy/idle cycles on a single worker",
		Long: `Run a fixed number of busy+idle cycles on the calling thread alone.

Useful for calibrating the busy kernel or producing a short, predictable
trace without the multi-worker machinery.

Example:
  strobe once --cycles 5 --db ./trace.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Cycles, "cycles", 10, "number of busy+idle cycles to run (>= 1)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "SQLite database to archive the marker trace into")

	return cmd
}

func runOnce(opts *OnceOptions, cmd *cobra.Command) error {
	setupLogging(opts.Verbose)

	if opts.Cycles < 1 {
		return NewExitError(ExitCommandError, fmt.Sprintf("cycles must be >= 1, got %d", opts.Cycles))
	}

	var rec *sim.Recorder
	if opts.Database != "" {
		rec = sim.NewRecorder()
	}
	inst := buildInstrument(opts.Verbose, rec)

	// Workers/Total only gate validation here; RunCycles drives a single
	// worker by cycle count.
	h, err := harness.New(
		harness.Config{Workers: 1, Total: time.Second},
		harness.WithInstrument(inst),
	)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	started := time.Now()
	summary, err := h.RunCycles(opts.Cycles)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	if rec != nil {
		if err := archiveRun(cmd.Context(), opts.Database, summary, "", started, rec.Events()); err != nil {
			return WrapExitError(ExitFailure, "failed to archive trace", err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "run %s complete: cycles=%d elapsed=%s\n",
		summary.Token, summary.Cycles[0], summary.Elapsed.Round(time.Millisecond))
	return nil
}
