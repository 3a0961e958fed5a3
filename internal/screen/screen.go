// Package screen defines the contract between the router and the views of
// the interactive form.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/anerkennung/internal/ui/layout"
)

// Screen is one view on the router stack.
type Screen interface {
	// Init returns an initial command when the screen is pushed.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is implemented by screens with their own footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}
