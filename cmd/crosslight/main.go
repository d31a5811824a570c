package main

import (
	"fmt"
	"os"

	"github.com/tebeka/atexit"

	"github.com/crosslight/crosslight/internal/cli"
)

// main exits through atexit so that registered flush handlers (the event
// recorder's, in particular) run even on error paths.
func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		atexit.Exit(1)
	}
	atexit.Exit(0)
}
