// Package styles holds the terminal palette shared by the dusb commands.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// ANSI color codes
const (
	ColorYellow  = "3"
	ColorMagenta = "5"
	ColorCyan    = "6"

	ColorBrightYellow = "11"

	ColorDarkRed     = "160"
	ColorMediumGreen = "40"
	ColorLightBlue   = "39"
)

var (
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorMediumGreen))
	WarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorYellow))
	InfoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorLightBlue))

	// CommandStyle renders a command line printed by --dry-run.
	CommandStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorCyan))
	// ValueStyle renders numeric readings; ErrorValueStyle renders fields the
	// utility reported as errors.
	ValueStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorMediumGreen))
	ErrorValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBrightYellow))
)

// Color returns a foreground style for an ANSI color code.
func Color(code string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(code))
}
