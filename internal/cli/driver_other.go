//go:build !linux

package cli

import (
	"github.com/crosslight/crosslight"
)

func openGPIOHardware() (crosslight.Hardware, error) {
	return crosslight.Hardware{}, crosslight.NewDriverError(
		"gpio", "gpio driver is only available on linux", nil)
}
