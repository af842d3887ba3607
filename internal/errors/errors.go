package errors

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/dracalusb/dusb/internal/constants"
	"github.com/dracalusb/dusb/internal/signals"
)

// IsInterruptError reports whether err comes from a canceled run (Ctrl+C or SIGTERM).
func IsInterruptError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, context.Canceled) ||
		strings.Contains(err.Error(), "signal: killed") ||
		strings.Contains(err.Error(), "signal: interrupt")
}

// HandleInterruptError starts shutdown with exit code 130 if err is an interrupt.
func HandleInterruptError(err error) bool {
	if IsInterruptError(err) {
		signals.GetGlobalManager().Shutdown(130)
		return true
	}
	return false
}

// IsNotInstalled reports whether err means the utility could not be found.
func IsNotInstalled(err error) bool {
	return errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist)
}

// Explain adds a hint to errors the user can fix, and returns others unchanged.
func Explain(err error, binary string) error {
	if err == nil {
		return nil
	}
	if IsNotInstalled(err) {
		return fmt.Errorf("%w\n%s was not found. Install the Dracal command line tools or point %s at the executable", err, binary, constants.BinaryEnv)
	}
	return err
}
