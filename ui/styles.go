package ui

import (
	"github.com/charmbracelet/lipgloss"
	te "github.com/muesli/termenv"
)

var (
	mintGreen = lipgloss.AdaptiveColor{Light: "#89F0CB", Dark: "#89F0CB"}
	darkGreen = lipgloss.AdaptiveColor{Light: "#1C8760", Dark: "#1C8760"}
	fuchsia   = lipgloss.AdaptiveColor{Light: "#EE6FF8", Dark: "#EE6FF8"}
	red       = lipgloss.AdaptiveColor{Light: "#ED567A", Dark: "#FF5C8A"}
	gray      = lipgloss.AdaptiveColor{Light: "#909090", Dark: "#626262"}
	midGray   = lipgloss.AdaptiveColor{Light: "#B2B2B2", Dark: "#4A4A4A"}

	logoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ECFD65")).
			Background(fuchsia).
			Bold(true).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Foreground(fuchsia).
			Bold(true)

	subtleStyle = lipgloss.NewStyle().
			Foreground(gray)

	errorTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#230A0A")).
			Background(red).
			Padding(0, 1)

	thaiStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#FAFAFA"}).
			Bold(true)

	phoneticStyle = lipgloss.NewStyle().
			Foreground(darkGreen).
			Italic(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(fuchsia).
			Bold(true)

	correctStyle = lipgloss.NewStyle().
			Foreground(mintGreen).
			Bold(true)

	wrongStyle = lipgloss.NewStyle().
			Foreground(red).
			Bold(true)

	badgeStyle = lipgloss.NewStyle().
			Foreground(darkGreen)

	slotEmptyStyle = lipgloss.NewStyle().
			Foreground(midGray)

	slotFilledStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#FAFAFA"}).
			Bold(true)

	dotActiveStyle = lipgloss.NewStyle().Foreground(fuchsia)
	dotDoneStyle   = lipgloss.NewStyle().Foreground(mintGreen)
	dotStyle       = lipgloss.NewStyle().Foreground(midGray)
)

// hasDarkBackground is read once at startup; AdaptiveColor consults the
// same detection on every render otherwise.
var hasDarkBackground = te.HasDarkBackground()
