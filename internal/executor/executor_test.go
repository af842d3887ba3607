package executor

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"
	"time"
)

func run(ctx context.Context, command string, opts ...Option) (*Result, error) {
	return NewExecutor().Execute(NewConfig(ctx, command, opts...))
}

func TestExecuteCapture(t *testing.T) {
	ctx := context.Background()

	result, err := run(ctx, "sh",
		WithArgs("-c", "echo stdout && echo stderr >&2"),
	)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	stdout := strings.TrimSpace(string(result.Stdout))
	stderr := strings.TrimSpace(string(result.Stderr))

	if stdout != "stdout" {
		t.Errorf("expected stdout 'stdout', got '%s'", stdout)
	}
	if stderr != "stderr" {
		t.Errorf("expected stderr 'stderr', got '%s'", stderr)
	}
}

func TestExecuteKeepsLineEndings(t *testing.T) {
	ctx := context.Background()

	result, err := run(ctx, "printf", WithArgs(`25.04, 40.02\r\n`))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if string(result.Stdout) != "25.04, 40.02\r\n" {
		t.Errorf("expected raw output with CRLF, got %q", result.Stdout)
	}
}

func TestExecuteStream(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer

	result, err := run(ctx, "sh",
		WithArgs("-c", "echo line1 && echo line2"),
		WithOutputMode(OutputModeStream),
		WithStdout(&buf),
	)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if buf.String() != "line1\nline2\n" {
		t.Errorf("expected streamed output, got %q", buf.String())
	}
	if string(result.Stdout) != buf.String() {
		t.Errorf("expected captured stdout to match stream, got %q", result.Stdout)
	}
}

func TestExecuteMirrorsStderr(t *testing.T) {
	ctx := context.Background()
	var mirror bytes.Buffer

	result, err := run(ctx, "sh",
		WithArgs("-c", "echo 'retrying' >&2"),
		WithStderr(&mirror),
	)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if mirror.String() != "retrying\n" {
		t.Errorf("expected stderr mirrored, got %q", mirror.String())
	}
	if string(result.Stderr) != "retrying\n" {
		t.Errorf("expected stderr captured, got %q", result.Stderr)
	}
}

func TestNewConfig(t *testing.T) {
	var out bytes.Buffer
	config := NewConfig(context.Background(), "dracal-usb-get",
		WithArgs("-f"),
		WithOutputMode(OutputModeStream),
		WithStdout(&out),
	)

	if config.Command != "dracal-usb-get" || len(config.Args) != 1 || config.Args[0] != "-f" {
		t.Errorf("unexpected command %q %v", config.Command, config.Args)
	}
	if config.OutputMode != OutputModeStream || config.Stdout != &out {
		t.Error("expected stream mode to the given writer")
	}
	if NewConfig(context.Background(), "x").OutputMode != OutputModeCapture {
		t.Error("expected capture mode by default")
	}
}

func TestExecuteWithContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := run(ctx, "sleep", WithArgs("10"))
	if err == nil {
		t.Fatal("expected context deadline error, got nil")
	}

	if !errors.Is(err, context.DeadlineExceeded) && !strings.Contains(err.Error(), "signal: killed") {
		t.Errorf("expected context.DeadlineExceeded or signal: killed, got %v", err)
	}
}

func TestExecuteNonExistentCommand(t *testing.T) {
	ctx := context.Background()

	result, err := run(ctx, "dracal-usb-get-does-not-exist")
	if err == nil {
		t.Fatal("expected error for non-existent command, got nil")
	}

	if result.ExitCode != -1 {
		t.Errorf("expected exit code -1 for command not found, got %d", result.ExitCode)
	}
}

func TestExecuteWithExitCode(t *testing.T) {
	ctx := context.Background()

	result, err := run(ctx, "sh", WithArgs("-c", "exit 42"))
	if err == nil {
		t.Fatal("expected error for non-zero exit code, got nil")
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Errorf("expected ExitError, got %T", err)
	}

	if result.ExitCode != 42 {
		t.Errorf("expected exit code 42, got %d", result.ExitCode)
	}
}

func TestExecuteValidation(t *testing.T) {
	e := NewExecutor()

	if _, err := e.Execute(&Config{Command: "echo"}); err == nil {
		t.Error("expected error for missing context")
	}
	if _, err := e.Execute(&Config{Context: context.Background()}); err == nil {
		t.Error("expected error for missing command")
	}
}

func TestFormatError(t *testing.T) {
	ctx := context.Background()

	result, err := run(ctx, "sh", WithArgs("-c", "echo 'no sensor found' >&2 && exit 1"))
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	formatted := result.FormatError("reading sensor")
	if formatted == nil {
		t.Fatal("expected formatted error, got nil")
	}

	msg := formatted.Error()
	for _, want := range []string{"command failed: reading sensor", "exit code: 1", "no sensor found"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected error to contain %q, got %q", want, msg)
		}
	}

	var exitErr *exec.ExitError
	if !errors.As(formatted, &exitErr) {
		t.Errorf("expected formatted error to wrap ExitError")
	}

	ok := &Result{}
	if ok.FormatError("anything") != nil {
		t.Error("expected nil for successful result")
	}
}

func TestMockExecutor(t *testing.T) {
	mock := NewMockExecutor()
	mock.WithMockOutput("25.04, 40.02\r\n")

	result, err := mock.Execute(&Config{
		Context: context.Background(),
		Command: "dracal-usb-get",
		Args:    []string{"-f", "-i", "0,1"},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if string(result.Stdout) != "25.04, 40.02\r\n" {
		t.Errorf("unexpected stdout %q", result.Stdout)
	}

	if mock.CallCount() != 1 {
		t.Errorf("expected 1 call, got %d", mock.CallCount())
	}
	if !mock.VerifyCommandWithArgs("dracal-usb-get", "-f", "-i", "0,1") {
		t.Errorf("expected call to be recorded, got %s", mock.String())
	}
	if mock.VerifyCommandWithArgs("dracal-usb-get", "-f") {
		t.Error("expected partial args not to match")
	}

	mock.Reset()
	if mock.CallCount() != 0 || mock.LastCall() != nil {
		t.Error("expected Reset to clear calls")
	}
}

func TestMockExecutorStream(t *testing.T) {
	mock := NewMockExecutor().WithMockOutput("1.0\n2.0\n")
	var buf bytes.Buffer

	_, err := mock.Execute(&Config{
		Context:    context.Background(),
		Command:    "dracal-usb-get",
		OutputMode: OutputModeStream,
		Stdout:     &buf,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if buf.String() != "1.0\n2.0\n" {
		t.Errorf("expected mock to stream output, got %q", buf.String())
	}
}
