package errors

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"testing"
)

func TestIsInterruptError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "context canceled", err: context.Canceled, expected: true},
		{name: "wrapped context canceled", err: fmt.Errorf("reading sensor: %w", context.Canceled), expected: true},
		{name: "killed by signal", err: errors.New("signal: killed"), expected: true},
		{name: "interrupted", err: errors.New("signal: interrupt"), expected: true},
		{name: "exit status", err: errors.New("exit status 1"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsInterruptError(tt.err); got != tt.expected {
				t.Errorf("IsInterruptError(%v) = %v, want %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestExplain(t *testing.T) {
	if Explain(nil, "dracal-usb-get") != nil {
		t.Error("expected nil for nil error")
	}

	notFound := &exec.Error{Name: "dracal-usb-get", Err: exec.ErrNotFound}
	err := Explain(fmt.Errorf("command failed: %w", notFound), "dracal-usb-get")
	if !errors.Is(err, exec.ErrNotFound) {
		t.Errorf("expected wrapped ErrNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "DUSB_BINARY") {
		t.Errorf("expected hint about DUSB_BINARY, got %v", err)
	}

	other := errors.New("exit status 2")
	if Explain(other, "dracal-usb-get") != other {
		t.Error("expected unrelated errors to pass through")
	}
}
