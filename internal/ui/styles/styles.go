// Package styles holds the shared color palette for terminal output.
// Colors are disabled when output is not a terminal or the terminal
// reports no color support, so piped output stays plain.
package styles

import (
	"image/color"
	"os"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/mattn/go-isatty"
)

var (
	Accent  color.Color = lipgloss.Color("212")
	Success color.Color = lipgloss.Color("82")
	Error   color.Color = lipgloss.Color("196")
	Muted   color.Color = lipgloss.Color("240")
)

// Init downgrades the palette based on the terminal's capabilities.
// Call once at startup, before rendering any styled output.
func Init() {
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		disable()
		return
	}
	profile := colorprofile.Detect(os.Stderr, os.Environ())
	if profile == colorprofile.NoTTY || profile == colorprofile.Ascii {
		disable()
	}
}

func disable() {
	Accent = lipgloss.NoColor{}
	Success = lipgloss.NoColor{}
	Error = lipgloss.NoColor{}
	Muted = lipgloss.NoColor{}
}

// Styles are functions so they pick up the palette chosen by Init.

func AccentStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Accent).Bold(true)
}

func SuccessStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Success)
}

func ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Error)
}

func MutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Muted)
}
