// Package executor runs external processes on behalf of the sensor command builder.
//
// Every invocation of dracal-usb-get goes through the Executor interface so the
// builder can be exercised in tests with a MockExecutor instead of a real device.
//
// # Quick Start
//
//	ctx := context.Background()
//	config := executor.NewConfig(ctx, "dracal-usb-get", executor.WithArgs("-f", "-i", "0,1"))
//	result, err := executor.NewExecutor().Execute(config)
//	if err != nil {
//	    return result.FormatError("reading sensor")
//	}
//	fmt.Println(string(result.Stdout))
//
// # Output Modes
//
// OutputModeCapture (default) captures stdout and stderr separately. The builder
// needs stdout alone, since the utility prints diagnostics on stderr.
//
// OutputModeStream copies stdout to a writer (os.Stdout unless WithStdout is given)
// while still capturing it. Used for long logging runs that write to "-".
//
// # Testing
//
//	mock := executor.NewMockExecutor()
//	mock.WithMockResult(&executor.Result{Stdout: []byte("25.04, 40.02\r\n")}, nil)
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// OutputMode defines how command output is handled during execution.
type OutputMode int

const (
	// OutputModeCapture captures stdout and stderr into separate buffers.
	OutputModeCapture OutputMode = iota

	// OutputModeStream writes stdout to the configured writer as it arrives and
	// captures it as well. Stderr is captured only.
	OutputModeStream
)

// Result contains the outcome of a command execution.
type Result struct {
	// Stdout contains captured standard output.
	Stdout []byte

	// Stderr contains captured standard error output.
	Stderr []byte

	// ExitCode is the process exit code. -1 means the process could not be started
	// (for example the executable is not on PATH).
	ExitCode int

	// Error is the error returned by the process, nil on exit code 0.
	Error error
}

// Config contains all options for a single execution.
type Config struct {
	// Context for cancellation (required).
	Context context.Context

	// Command is the executable name or path (required).
	Command string

	// Args excludes the command name itself.
	Args []string

	OutputMode OutputMode

	// Stdout overrides the destination used by OutputModeStream.
	Stdout io.Writer

	// Stderr additionally receives standard error when set.
	Stderr io.Writer
}

// Option is a functional option for configuring command execution.
type Option func(*Config)

// WithArgs sets the command-line arguments.
func WithArgs(args ...string) Option {
	return func(c *Config) {
		c.Args = args
	}
}

// WithOutputMode sets how command output is handled.
func WithOutputMode(mode OutputMode) Option {
	return func(c *Config) {
		c.OutputMode = mode
	}
}

// WithStdout sets the writer used by OutputModeStream.
func WithStdout(stdout io.Writer) Option {
	return func(c *Config) {
		c.Stdout = stdout
	}
}

// WithStderr mirrors standard error to w in addition to capturing it.
func WithStderr(stderr io.Writer) Option {
	return func(c *Config) {
		c.Stderr = stderr
	}
}

// Executor defines the interface for executing commands.
// Production code uses DefaultExecutor, tests use MockExecutor.
type Executor interface {
	// Execute runs a command with the given configuration. The returned Result is
	// non-nil whenever the configuration itself is valid, even if the command failed.
	Execute(config *Config) (*Result, error)
}

// DefaultExecutor runs commands with os/exec. It is stateless.
type DefaultExecutor struct{}

// NewExecutor creates a new default executor instance.
func NewExecutor() Executor {
	return &DefaultExecutor{}
}

// Execute runs a command with the given configuration and blocks until it exits.
func (e *DefaultExecutor) Execute(config *Config) (*Result, error) {
	if config.Context == nil {
		return nil, fmt.Errorf("context is required")
	}
	if config.Command == "" {
		return nil, fmt.Errorf("command is required")
	}

	cmd := exec.CommandContext(config.Context, config.Command, config.Args...)

	var stdoutBuf, stderrBuf bytes.Buffer

	switch config.OutputMode {
	case OutputModeStream:
		out := config.Stdout
		if out == nil {
			out = os.Stdout
		}
		cmd.Stdout = io.MultiWriter(&stdoutBuf, out)
	default:
		cmd.Stdout = &stdoutBuf
	}

	if config.Stderr != nil {
		cmd.Stderr = io.MultiWriter(&stderrBuf, config.Stderr)
	} else {
		cmd.Stderr = &stderrBuf
	}

	result := &Result{}
	result.Error = cmd.Run()
	result.Stdout = stdoutBuf.Bytes()
	result.Stderr = stderrBuf.Bytes()
	result.ExitCode = exitCode(result.Error)

	return result, result.Error
}

// exitCode maps a Run error to a process exit code.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// NewConfig returns a capture-mode Config for command with options applied.
func NewConfig(ctx context.Context, command string, options ...Option) *Config {
	config := &Config{
		Context:    ctx,
		Command:    command,
		OutputMode: OutputModeCapture,
	}
	for _, opt := range options {
		opt(config)
	}
	return config
}

// FormatError creates a detailed error from the Result, wrapping the original error.
// Returns nil if the command succeeded.
func (r *Result) FormatError(commandDescription string) error {
	if r.Error == nil {
		return nil
	}

	var parts []string
	if commandDescription != "" {
		parts = append(parts, fmt.Sprintf("command failed: %s", commandDescription))
	}
	if r.ExitCode >= 0 {
		parts = append(parts, fmt.Sprintf("exit code: %d", r.ExitCode))
	}
	if stderr := strings.TrimSpace(string(r.Stderr)); stderr != "" {
		parts = append(parts, fmt.Sprintf("stderr:\n%s", stderr))
	}

	if len(parts) == 0 {
		return r.Error
	}
	return fmt.Errorf("%s: %w", strings.Join(parts, "\n"), r.Error)
}
