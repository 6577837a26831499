package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/italiano/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider supplies the right-hand side of the header.
type StatusProvider interface {
	Status() string
}

// EscapeHandler screens want Esc themselves while Escaping returns true
// (e.g. to close a dialog) instead of having the app pop them.
type EscapeHandler interface {
	Escaping() bool
}

// Closer is called when the router pops the screen.
type Closer interface {
	Close()
}
