// Package tty reports whether the standard streams are terminals.
package tty

import (
	"os"

	"github.com/mattn/go-isatty"
)

// Checked once at package initialization to avoid repeated syscalls.
var (
	stdoutInteractive bool
	stderrInteractive bool
)

func init() {
	stdoutInteractive = isTerminal(os.Stdout.Fd())
	stderrInteractive = isTerminal(os.Stderr.Fd())
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// IsInteractive returns whether stdout is connected to a terminal. Tables are
// drawn only when it is; pipes get plain columns.
func IsInteractive() bool {
	return stdoutInteractive
}

// IsStderrInteractive returns whether stderr is connected to a terminal.
func IsStderrInteractive() bool {
	return stderrInteractive
}
