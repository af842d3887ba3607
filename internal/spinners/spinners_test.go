package spinners

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func useBuffer(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	oldOutput, oldVerbose := Output, VerboseMode
	Output = buf
	t.Cleanup(func() {
		Output = oldOutput
		VerboseMode = oldVerbose
	})
	return buf
}

func TestVerboseTask(t *testing.T) {
	buf := useBuffer(t)
	VerboseMode = true

	err := RunTaskWithSpinnerContext(context.Background(), "Reading sensor", func() error { return nil })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := buf.String(); got != "Reading sensor...\nReading sensor completed\n" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestVerboseTaskError(t *testing.T) {
	buf := useBuffer(t)
	VerboseMode = true

	want := errors.New("exit status 1")
	err := RunTaskWithSpinnerContext(context.Background(), "Reading sensor", func() error { return want })
	if !errors.Is(err, want) {
		t.Fatalf("expected task error, got %v", err)
	}
	if !strings.Contains(buf.String(), "Error: exit status 1") {
		t.Errorf("expected error line, got %q", buf.String())
	}
}

func TestInfoAndWarning(t *testing.T) {
	buf := useBuffer(t)
	VerboseMode = true

	RunInfoSpinner("dry run")
	RunWarningSpinner("no readings")
	if buf.String() != "dry run\nno readings\n" {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestSpinnerModelUpdate(t *testing.T) {
	m := newSpinnerModel("Reading sensor", func() error { return nil })

	next, cmd := m.Update(errMsg{errors.New("boom")})
	if cmd == nil {
		t.Error("expected quit command")
	}
	failed := next.(spinnerModel)
	if !strings.Contains(failed.View(), "Reading sensor: Failed") {
		t.Errorf("unexpected view %q", failed.View())
	}

	next, _ = m.Update(successMsg{})
	if !strings.Contains(next.(spinnerModel).View(), "● Reading sensor") {
		t.Errorf("unexpected view %q", next.(spinnerModel).View())
	}

	next, _ = m.Update(quitMsg{})
	if !strings.Contains(next.(spinnerModel).View(), "interrupted") {
		t.Errorf("unexpected view %q", next.(spinnerModel).View())
	}

	next, _ = m.Update(tea.WindowSizeMsg{Width: 80})
	if !strings.Contains(next.(spinnerModel).View(), "Reading sensor") {
		t.Errorf("expected spinner view with message, got %q", next.(spinnerModel).View())
	}
}

type recordingSender struct {
	msgs chan tea.Msg
}

func (r *recordingSender) Send(msg tea.Msg) {
	r.msgs <- msg
}

func TestQuitOnCancelReturnsWhenDone(t *testing.T) {
	p := &recordingSender{msgs: make(chan tea.Msg, 1)}
	done := make(chan struct{})
	returned := make(chan struct{})

	go func() {
		quitOnCancel(context.Background(), done, p)
		close(returned)
	}()
	close(done)

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("expected watcher to return after the spinner finished")
	}
	if len(p.msgs) != 0 {
		t.Error("expected no quit message without cancellation")
	}
}

func TestQuitOnCancelSendsQuit(t *testing.T) {
	p := &recordingSender{msgs: make(chan tea.Msg, 1)}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	quitOnCancel(ctx, make(chan struct{}), p)

	select {
	case msg := <-p.msgs:
		if _, ok := msg.(quitMsg); !ok {
			t.Errorf("expected quitMsg, got %T", msg)
		}
	default:
		t.Error("expected quit message after cancellation")
	}
}
