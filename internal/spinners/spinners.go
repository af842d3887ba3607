// Package spinners shows progress on stderr while dracal-usb-get runs.
package spinners

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dracalusb/dusb/internal/signals"
	"github.com/dracalusb/dusb/internal/styles"
	"github.com/dracalusb/dusb/internal/tty"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// VerboseMode replaces the spinner with plain progress lines.
var VerboseMode bool

// Output receives progress lines and the spinner. Stdout stays free for readings.
var Output io.Writer = os.Stderr

type TaskFunc func() error

// SetVerboseMode sets the verbose mode for all spinners. Without a terminal on
// stderr verbose mode is always on.
func SetVerboseMode(verbose bool) {
	VerboseMode = verbose || !tty.IsStderrInteractive()
}

// RunTaskWithSpinnerContext runs task while showing message. Canceling ctx stops
// the spinner and returns ctx.Err() without waiting for the task.
func RunTaskWithSpinnerContext(ctx context.Context, message string, task TaskFunc) error {
	if VerboseMode {
		fmt.Fprintln(Output, message+"...")
		err := task()
		if err != nil {
			fmt.Fprintf(Output, "Error: %v\n", err)
		} else {
			fmt.Fprintln(Output, message+" completed")
		}
		return err
	}

	errCh := make(chan error, 1)
	wrapped := func() error {
		err := task()
		errCh <- err
		return err
	}

	p := tea.NewProgram(newSpinnerModel(message, wrapped), tea.WithOutput(Output), tea.WithContext(ctx))
	done := make(chan struct{})
	go quitOnCancel(ctx, done, p)

	_, err := p.Run()
	close(done)
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("failed to run spinner: %w", err)
	}

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

type sender interface {
	Send(msg tea.Msg)
}

// quitOnCancel stops p when ctx is canceled and returns once done is closed.
func quitOnCancel(ctx context.Context, done <-chan struct{}, p sender) {
	select {
	case <-ctx.Done():
		p.Send(quitMsg{})
	case <-done:
	}
}

// RunInfoSpinner prints an informational message.
func RunInfoSpinner(message string) {
	if VerboseMode {
		fmt.Fprintln(Output, message)
		return
	}
	fmt.Fprintln(Output, styles.InfoStyle.Render("● "+message))
}

// RunWarningSpinner prints a warning message.
func RunWarningSpinner(message string) {
	if VerboseMode {
		fmt.Fprintln(Output, message)
		return
	}
	fmt.Fprintln(Output, styles.WarningStyle.Render("● "+message))
}

type spinnerModel struct {
	spinner   spinner.Model
	message   string
	task      TaskFunc
	taskErr   error
	finished  bool
	interrupt bool
}

type errMsg struct{ err error }
type successMsg struct{}
type quitMsg struct{}

func newSpinnerModel(message string, task TaskFunc) spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = styles.Color(styles.ColorMagenta)
	return spinnerModel{spinner: s, message: message, task: task}
}

func (m spinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		if err := m.task(); err != nil {
			return errMsg{err}
		}
		return successMsg{}
	})
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			signals.GetGlobalManager().Shutdown(130)
			m.interrupt = true
			return m, tea.Quit
		}
	case errMsg:
		m.taskErr = msg.err
		m.finished = true
		return m, tea.Quit
	case successMsg:
		m.finished = true
		return m, tea.Quit
	case quitMsg:
		m.interrupt = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	switch {
	case m.interrupt:
		return styles.Color(styles.ColorDarkRed).Render("● interrupted") + "\n"
	case m.finished && m.taskErr != nil:
		return styles.Color(styles.ColorDarkRed).Render(fmt.Sprintf("● %s: Failed", m.message)) + "\n"
	case m.finished:
		return styles.SuccessStyle.Render("● "+m.message) + "\n"
	}
	return fmt.Sprintf("%s %s", m.spinner.View(), styles.Color(styles.ColorYellow).Render(m.message))
}
