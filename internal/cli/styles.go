package cli

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Color palette shared by all command output.
const (
	ColorPrimary   = lipgloss.Color("#7C3AED")
	ColorMuted     = lipgloss.Color("#6B7280")
	ColorSuccess   = lipgloss.Color("#10B981")
	ColorError     = lipgloss.Color("#EF4444")
	ColorWarning   = lipgloss.Color("#F59E0B")
	ColorHighlight = lipgloss.Color("#3B82F6")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	successStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	warningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	cmdStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)
)

// useColor is decided once per command run.
var useColor = false

func setColor(enabled bool) { useColor = enabled }

// colorEnabled reports whether styled output should be written to f.
// NO_COLOR and --no-color always win.
func colorEnabled(f *os.File) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// paint renders s with style when color is enabled.
func paint(style lipgloss.Style, s string) string {
	if !useColor {
		return s
	}
	return style.Render(s)
}
