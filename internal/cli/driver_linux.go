//go:build linux

package cli

import (
	"log/slog"

	"github.com/crosslight/crosslight"
	"github.com/crosslight/crosslight/driver/gpiodriver"
	"github.com/crosslight/crosslight/driver/memdriver"
)

// openGPIOHardware claims the default pins. The character display of the
// reference build is not wired yet, so output goes to the log display.
func openGPIOHardware() (crosslight.Hardware, error) {
	return gpiodriver.Open(gpiodriver.DefaultPins(), memdriver.NewDisplay(slog.Default()))
}
