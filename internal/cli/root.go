// Package cli wires the controller, drivers, recorder, and monitor into
// the crosslight command-line interface.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
}

// NewRootCommand creates the root command for the crosslight CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "crosslight",
		Short: "Adaptive traffic intersection controller",
		Long: `crosslight drives a two-road intersection with a pedestrian
crossing: green durations adapt to button-counted traffic, pedestrian
requests are latched and served between road phases.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Local overrides, e.g. CROSSLIGHT_DB. Missing file is fine.
			_ = godotenv.Load()

			level := slog.LevelInfo
			if opts.Verbose {
				level = slog.LevelDebug
			}
			handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			})
			slog.SetDefault(slog.New(handler))
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewAnalyzeCommand(opts))

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}
