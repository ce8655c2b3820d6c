package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/tdurand/strobe/internal/harness"
	"github.com/tdurand/strobe/internal/plan"
	"github.com/tdurand/strobe/internal/sim"
	"github.com/tdurand/strobe/internal/trace"
	"github.com/tdurand/strobe/internal/workload"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Threads  int
	Seconds  int
	PlanFile string
	Database string
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the barrier-synchronized active/idle workload",
		Long: `Run the multi-worker active/idle workload.

All workers, including the driving thread, rendezvous at a barrier before
the first phase, then alternate ~1s busy and ~1s idle phases until the
driving thread has observed the configured time budget.

Example:
  strobe run -p 4 -t 30
  strobe run --plan profiles/nightly.yaml --db ./trace.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorkload(opts, cmd)
		},
	}

	cmd.Flags().IntVarP(&opts.Threads, "threads", "p", 1, "number of workers, including the driving thread (>= 1)")
	cmd.Flags().IntVarP(&opts.Seconds, "seconds", "t", 10, "total run time in seconds (>= 1)")
	cmd.Flags().StringVar(&opts.PlanFile, "plan", "", "YAML run plan; explicit flags override its values")
	cmd.Flags().StringVar(&opts.Database, "db", "", "SQLite database to archive the marker trace into")

	return cmd
}

func runWorkload(opts *RunOptions, cmd *cobra.Command) error {
	setupLogging(opts.Verbose)

	threads := opts.Threads
	seconds := opts.Seconds
	planName := ""
	var wlOpts []workload.Option
	var cfg harness.Config

	if opts.PlanFile != "" {
		p, err := plan.Load(opts.PlanFile)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load plan", err)
		}
		// Explicit flags win over the plan's values.
		if cmd.Flags().Changed("threads") {
			p.Workers = opts.Threads
		}
		if cmd.Flags().Changed("seconds") {
			p.Seconds = opts.Seconds
		}
		threads = p.Workers
		seconds = p.Seconds
		planName = p.Name
		wlOpts = p.WorkloadOptions()
		cfg = p.HarnessConfig()
	} else {
		cfg = harness.Config{
			Workers: threads,
			Total:   time.Duration(seconds) * time.Second,
		}
	}

	if threads < 1 {
		return NewExitError(ExitCommandError, fmt.Sprintf("number of threads must be >= 1, got %d", threads))
	}
	if seconds < 1 {
		return NewExitError(ExitCommandError, fmt.Sprintf("total seconds must be >= 1, got %d", seconds))
	}

	var rec *sim.Recorder
	if opts.Database != "" {
		rec = sim.NewRecorder()
	}
	inst := buildInstrument(opts.Verbose, rec)

	hOpts := []harness.Option{harness.WithInstrument(inst)}
	if len(wlOpts) > 0 {
		hOpts = append(hOpts, harness.WithWorkloadFactory(func(worker int) workload.Workload {
			return workload.New(worker, wlOpts...)
		}))
	}

	h, err := harness.New(cfg, hOpts...)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	started := time.Now()
	summary, err := h.Run()
	if err != nil {
		return WrapExitError(ExitFailure, "run failed", err)
	}

	if rec != nil {
		if err := archiveRun(cmd.Context(), opts.Database, summary, planName, started, rec.Events()); err != nil {
			return WrapExitError(ExitFailure, "failed to archive trace", err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "run %s complete: workers=%d elapsed=%s cycles=%v\n",
		summary.Token, summary.Workers, summary.Elapsed.Round(time.Millisecond), summary.Cycles)
	return nil
}

// buildInstrument assembles the run's instrument: a Recorder when the trace
// is being archived, a marker logger when verbose, a Tee when both apply.
func buildInstrument(verbose bool, rec *sim.Recorder) sim.Instrument {
	var backends sim.Tee
	if rec != nil {
		backends = append(backends, rec)
	}
	if verbose {
		backends = append(backends, sim.NewLogger(slog.Default()))
	}
	switch len(backends) {
	case 0:
		return sim.Nop{}
	case 1:
		return backends[0]
	default:
		return backends
	}
}

// archiveRun persists the recorded marker stream after the run, keeping all
// archiving I/O outside the measured region.
func archiveRun(ctx context.Context, path string, summary *harness.Summary, planName string, started time.Time, events []sim.Event) error {
	st, err := trace.Open(path)
	if err != nil {
		return err
	}
	defer st.Close()
	return st.WriteRun(ctx, summary.Token, planName, summary.Workers, started, events)
}
