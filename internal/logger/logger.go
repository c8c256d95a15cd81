// Package logger provides verbose logging for the photoreport CLI.
// When verbose mode is enabled via the --verbose flag, debug messages
// describing the ingest, layout and render pipeline are printed to stderr.
// Warnings are always printed.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func logf(always bool, prefix, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if always || verbose {
		fmt.Fprintf(output, prefix+format+"\n", args...)
	}
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	logf(false, "[DEBUG] ", format, args...)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	logf(false, "[INFO] ", format, args...)
}

// Warn prints a warning. Skipped photos and failed re-exports are
// reported this way, so warnings ignore the verbose flag.
func Warn(format string, args ...any) {
	logf(true, "[WARN] ", format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	logf(false, "", "\n=== %s ===", name)
}

// Timed logs how long a step took once the returned func is called.
//
//	defer logger.Timed("render")()
func Timed(step string) func() {
	start := time.Now()
	return func() {
		Debug("%s took %s", step, time.Since(start).Round(time.Millisecond))
	}
}
