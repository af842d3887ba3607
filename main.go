package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dracalusb/dusb/cmd"
	"github.com/dracalusb/dusb/internal/signals"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// customErrorHandler prints each line of a multi-line error separately so the
// stderr captured from dracal-usb-get keeps its layout.
func customErrorHandler(w io.Writer, styles fang.Styles, err error) {
	fmt.Fprintf(w, "%s\n", styles.ErrorHeader.String())

	errorText := err.Error()
	for line := range strings.SplitSeq(errorText, "\n") {
		if line == "" {
			fmt.Fprintf(w, "\n")
			continue
		}
		lineStyle := styles.ErrorText.UnsetTransform().UnsetWidth()
		fmt.Fprintf(w, "%s\n", lineStyle.Render(line))
	}

	if !strings.HasSuffix(errorText, "\n") {
		fmt.Fprintf(w, "\n")
	}
}

// setColorProfile applies DUSB_COLOR_PROFILE (truecolor, ansi256, ansi or ascii).
// Without it lipgloss detects the profile from the terminal.
func setColorProfile() {
	switch os.Getenv("DUSB_COLOR_PROFILE") {
	case "truecolor":
		lipgloss.SetColorProfile(termenv.TrueColor)
	case "ansi256":
		lipgloss.SetColorProfile(termenv.ANSI256)
	case "ansi":
		lipgloss.SetColorProfile(termenv.ANSI)
	case "ascii":
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

func main() {
	setColorProfile()

	sigManager := signals.GetGlobalManager()
	ctx := sigManager.Context()

	if err := fang.Execute(ctx, cmd.GetRootCommand(),
		fang.WithErrorHandler(customErrorHandler),
	); err != nil {
		if sigManager.IsShutdown() {
			os.Exit(sigManager.ExitCode())
		}
		os.Exit(1)
	}

	if sigManager.IsShutdown() {
		os.Exit(sigManager.ExitCode())
	}
	os.Exit(0)
}
