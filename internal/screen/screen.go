package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/soloquiz/internal/ui/layout"
)

// Screen is one full-window view managed by the router. Update returns
// the (possibly replaced) screen value, so screens can be value types.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders only the content region; the app shell adds the
	// header and footer around it.
	View(width, height int) string

	// Title is shown centered in the header.
	Title() string
}

// KeyHintProvider lets a screen override the footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider lets a screen put status text (timer, pending grade
// count) on the right side of the header.
type StatusProvider interface {
	Status() string
}
