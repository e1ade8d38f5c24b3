package tui

import "github.com/charmbracelet/lipgloss"

// Palette shared by every view.
const (
	ColorHeader    = lipgloss.Color("86")
	ColorLabel     = lipgloss.Color("245")
	ColorValue     = lipgloss.Color("255")
	ColorMuted     = lipgloss.Color("240")
	ColorOK        = lipgloss.Color("42")
	ColorWarning   = lipgloss.Color("214")
	ColorError     = lipgloss.Color("196")
	ColorBorder    = lipgloss.Color("63")
	ColorHighlight = lipgloss.Color("212")

	// ColorOffset and ColorRemaining match the chart slices of solar.ChartFor.
	ColorOffset    = lipgloss.Color("#ff9999")
	ColorRemaining = lipgloss.Color("#66b3ff")
)

// Status icons.
const (
	IconCheck   = "✓"
	IconWarning = "⚠"
	IconCursor  = "›"
	IconBlock   = "█"
)

//nolint:gochecknoglobals // Shared lipgloss styles.
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorHeader).
			Border(lipgloss.NormalBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	LabelStyle   = lipgloss.NewStyle().Foreground(ColorLabel)
	ValueStyle   = lipgloss.NewStyle().Foreground(ColorValue).Bold(true)
	MutedStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
	OKStyle      = lipgloss.NewStyle().Foreground(ColorOK).Bold(true)
	WarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	FocusStyle   = lipgloss.NewStyle().Foreground(ColorHighlight).Bold(true)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorHeader).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(ColorBorder)

	TableSelectedStyle = lipgloss.NewStyle().
				Foreground(ColorValue).
				Background(ColorBorder)
)
