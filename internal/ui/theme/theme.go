// Package theme holds the palette and shared lipgloss styles. The palette
// stays muted; warm colours are reserved for results and errors.
package theme

import "charm.land/lipgloss/v2"

var (
	Primary   = lipgloss.Color("#A78BFA") // lavender
	Secondary = lipgloss.Color("#5EEAD4") // sea green
	Accent    = lipgloss.Color("#FCD34D") // soft gold
	Success   = lipgloss.Color("#86EFAC")
	Warning   = lipgloss.Color("#FDBA74")
	Error     = lipgloss.Color("#FCA5A5")
	Text      = lipgloss.Color("#E2E8F0")
	TextDim   = lipgloss.Color("#8B95A7")
	BgDark    = lipgloss.Color("#111827")
	Border    = lipgloss.Color("#3B4252")
)

var (
	Title    = lipgloss.NewStyle().Foreground(Primary).Bold(true).Align(lipgloss.Center)
	Subtitle = lipgloss.NewStyle().Foreground(TextDim).Align(lipgloss.Center)
	Body     = lipgloss.NewStyle().Foreground(Text)
	Hint     = lipgloss.NewStyle().Foreground(TextDim).Italic(true)

	ErrorText = lipgloss.NewStyle().Foreground(Error).Bold(true)

	// Card frames the current question.
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// Selection states for lists, menus and the scale.
var (
	Selected   = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	Unselected = lipgloss.NewStyle().Foreground(Text)
	Chosen     = lipgloss.NewStyle().Foreground(Secondary).Bold(true)
)

// Result verdicts.
var (
	RiskFlagged = lipgloss.NewStyle().Foreground(Warning).Bold(true)
	RiskClear   = lipgloss.NewStyle().Foreground(Success).Bold(true)
)

var (
	ProgressFilled = lipgloss.NewStyle().Foreground(Secondary)
	ProgressEmpty  = lipgloss.NewStyle().Foreground(Border)
)

var (
	buttonBase = lipgloss.NewStyle().Padding(0, 2)

	ButtonActive   = buttonBase.Background(Primary).Foreground(BgDark).Bold(true)
	ButtonInactive = buttonBase.Foreground(Text).Border(lipgloss.RoundedBorder()).BorderForeground(Border)
	ButtonDisabled = buttonBase.Foreground(Border).Border(lipgloss.RoundedBorder()).BorderForeground(Border)
)
