package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/crosslight/crosslight"
	"github.com/crosslight/crosslight/driver/memdriver"
	"github.com/crosslight/crosslight/monitor"
	"github.com/crosslight/crosslight/recorder"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Config   string
	Database string
	Monitor  string
	Driver   string
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the intersection controller",
		Long: `Start the controller and run until interrupted.

The mem driver keeps all hardware in memory and logs signal and display
output; the gpio driver talks to real pins and is only available on
Linux.

Example:
  crosslight run --driver mem --monitor 127.0.0.1:8990
  crosslight run --driver gpio --config intersection.yaml --db run.db`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runController(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.Config, "config", "", "path to YAML configuration")
	cmd.Flags().StringVar(&opts.Database, "db", os.Getenv("CROSSLIGHT_DB"),
		"record events into this SQLite database")
	cmd.Flags().StringVar(&opts.Monitor, "monitor", os.Getenv("CROSSLIGHT_MONITOR"),
		"serve live state over HTTP on this address")
	cmd.Flags().StringVar(&opts.Driver, "driver", "mem", "hardware driver (mem|gpio)")

	return cmd
}

func runController(parent context.Context, opts *RunOptions) error {
	cfg := crosslight.DefaultConfig()
	if opts.Config != "" {
		loaded, err := crosslight.LoadConfig(opts.Config)
		if err != nil {
			return fmt.Errorf("cannot load configuration: %w", err)
		}
		cfg = loaded
	}

	hw, err := openHardware(opts.Driver)
	if err != nil {
		return err
	}

	ctrl, err := crosslight.New(cfg, hw)
	if err != nil {
		return err
	}
	ctrl.AddObserver(crosslight.NewLoggingObserver(slog.Default()))

	if opts.Database != "" {
		rec, err := recorder.New(opts.Database, ctrl.ID())
		if err != nil {
			return err
		}
		defer func() {
			if err := rec.Close(); err != nil {
				slog.Error("cannot close recorder", "err", err)
			}
		}()
		ctrl.AddObserver(rec)
		slog.Info("recording events", "db", opts.Database)
	}

	if opts.Monitor != "" {
		mon := monitor.New(opts.Monitor, ctrl.ID(), slog.Default())
		if _, err := mon.Start(); err != nil {
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := mon.Shutdown(ctx); err != nil {
				slog.Error("cannot stop monitor", "err", err)
			}
		}()
		ctrl.AddObserver(mon)
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("controller starting", "id", ctrl.ID(), "driver", opts.Driver)
	if err := ctrl.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	slog.Info("controller stopped")

	return nil
}

// openHardware builds the hardware set for the selected driver. The gpio
// branch lives in a platform-specific file.
func openHardware(driver string) (crosslight.Hardware, error) {
	switch driver {
	case "mem":
		hw, _ := memdriver.Hardware(slog.Default())
		return hw, nil
	case "gpio":
		return openGPIOHardware()
	default:
		return crosslight.Hardware{}, fmt.Errorf("unknown driver %q: must be mem or gpio", driver)
	}
}
