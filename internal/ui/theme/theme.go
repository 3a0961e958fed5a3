package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette, sober office tones
var (
	Primary   = lipgloss.Color("#2563EB") // Blue
	Secondary = lipgloss.Color("#0D9488") // Teal
	Accent    = lipgloss.Color("#D97706") // Amber
	Success   = lipgloss.Color("#16A34A") // Green
	Error     = lipgloss.Color("#DC2626") // Red
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Label = lipgloss.NewStyle().
		Foreground(TextDim).
		Width(22).
		Align(lipgloss.Right)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Header = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Section = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	FocusedSection = Section.
			BorderForeground(Primary)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	// Excluded renders records that do not count.
	Excluded = lipgloss.NewStyle().
			Foreground(TextDim)

	Info = lipgloss.NewStyle().
		Foreground(Success)

	Warning = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)

	Failure = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)
)

// Components
var (
	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Foreground(TextDim).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)
)
