package config

import (
	"fmt"
	"os"
)

// Exitf reports a fatal startup error on stderr and terminates the process.
// Service mains use it for failures that happen before a run loop owns
// shutdown.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
