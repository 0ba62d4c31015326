// Package screen defines what the router and app frame need from a screen.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mindcheck/internal/ui/layout"
)

// Screen is one page of the app. View draws only the body; the app adds
// the header and footer around it.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string
	Title() string
}

// KeyHintProvider replaces the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider adds a short right-aligned status to the header, such as
// the current question number.
type StatusProvider interface {
	HeaderStatus() string
}

// EscapeHandler screens receive Esc themselves when HandlesEscape reports
// true. Otherwise Esc pops the screen.
type EscapeHandler interface {
	HandlesEscape() bool
}
