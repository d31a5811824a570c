package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/crosslight/crosslight/analysis"
)

// AnalyzeOptions holds flags for the analyze command.
type AnalyzeOptions struct {
	*RootOptions
	Database string
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AnalyzeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Summarize a recorded run",
		Long: `Read the SQLite event log of a previous run and print per-phase
duration statistics and button-press totals.

Example:
  crosslight analyze --db run.db`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return analyzeRun(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", os.Getenv("CROSSLIGHT_DB"),
		"path to the SQLite event log (required)")

	return cmd
}

func analyzeRun(cmd *cobra.Command, opts *AnalyzeOptions) error {
	if opts.Database == "" {
		return fmt.Errorf("--db is required")
	}

	a, err := analysis.Open(opts.Database)
	if err != nil {
		return err
	}
	defer a.Close()

	report, err := a.Run()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Phase durations (ticks):")
	if len(report.Phases) == 0 {
		fmt.Fprintln(out, "  no completed phases recorded")
	}
	for _, p := range report.Phases {
		fmt.Fprintf(out, "  %-4s n=%-4d mean=%-7.2f max=%-5.0f p95=%.0f\n",
			p.Phase, p.Occurrences, p.MeanTicks, p.MaxTicks, p.P95Ticks)
	}

	fmt.Fprintln(out, "Button presses:")
	fmt.Fprintf(out, "  vehicle accepted:    %d\n", report.Presses.VehicleAccepted)
	fmt.Fprintf(out, "  vehicle rejected:    %d\n", report.Presses.VehicleRejected)
	fmt.Fprintf(out, "  pedestrian requests: %d\n", report.Presses.PedestrianRequests)

	return nil
}
