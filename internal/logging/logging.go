package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Output receives debug and trace lines. Stdout is reserved for sensor readings,
// so diagnostics go to stderr.
var Output io.Writer = os.Stderr

// Debug prints a debug message with the DEBUG prefix if verbosity level is greater than 0.
//
// Usage:
//
//	logging.Debug(verbosity, "Using sensor %s", serial)
func Debug(verbosity int, format string, args ...any) {
	if verbosity > 0 {
		message := fmt.Sprintf(format, args...)
		fmt.Fprintf(Output, "DEBUG: %s\n", message)
	}
}

// Trace prints a trace message with the TRACE prefix if verbosity level is greater than 1.
// Used for raw process output.
func Trace(verbosity int, format string, args ...any) {
	if verbosity > 1 {
		message := fmt.Sprintf(format, args...)
		fmt.Fprintf(Output, "TRACE: %s\n", message)
	}
}

// Command logs the argv about to be executed, quoting arguments that contain spaces.
func Command(verbosity int, name string, args []string) {
	if verbosity <= 0 {
		return
	}
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, name)
	for _, arg := range args {
		if arg == "" || strings.ContainsAny(arg, " \t") {
			arg = fmt.Sprintf("%q", arg)
		}
		parts = append(parts, arg)
	}
	Debug(verbosity, "Running: %s", strings.Join(parts, " "))
}
