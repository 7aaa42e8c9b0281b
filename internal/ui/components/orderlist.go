package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/soloquiz/internal/ui/theme"
)

// OrderList lets the user arrange items into a sequence. The cursor moves
// with the arrow keys; space lifts the item under the cursor and carries
// it along until space is pressed again.
type OrderList struct {
	Items  []Choice
	Cursor int
	moving bool
}

// NewOrderList creates an order list over the given items in their
// presented order.
func NewOrderList(items []Choice) OrderList {
	return OrderList{Items: append([]Choice(nil), items...)}
}

// Init returns nil.
func (o OrderList) Init() tea.Cmd {
	return nil
}

// Update handles navigation and item movement.
func (o OrderList) Update(msg tea.Msg) (OrderList, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if o.moving {
			o.moveUp()
		} else if o.Cursor > 0 {
			o.Cursor--
		}
	case "down", "j":
		if o.moving {
			o.moveDown()
		} else if o.Cursor < len(o.Items)-1 {
			o.Cursor++
		}
	case "K", "shift+up":
		o.moveUp()
	case "J", "shift+down":
		o.moveDown()
	case "space", " ":
		o.moving = !o.moving
	}

	return o, nil
}

func (o *OrderList) moveUp() {
	if o.Cursor > 0 {
		o.Items[o.Cursor-1], o.Items[o.Cursor] = o.Items[o.Cursor], o.Items[o.Cursor-1]
		o.Cursor--
	}
}

func (o *OrderList) moveDown() {
	if o.Cursor < len(o.Items)-1 {
		o.Items[o.Cursor+1], o.Items[o.Cursor] = o.Items[o.Cursor], o.Items[o.Cursor+1]
		o.Cursor++
	}
}

// Moving reports whether an item is currently lifted.
func (o OrderList) Moving() bool {
	return o.moving
}

// Sequence returns the item ids in their current arrangement.
func (o OrderList) Sequence() []string {
	ids := make([]string, len(o.Items))
	for i, item := range o.Items {
		ids[i] = item.ID
	}
	return ids
}

// View renders the numbered sequence.
func (o OrderList) View() string {
	var s string
	for i, item := range o.Items {
		cursor := "  "
		if i == o.Cursor {
			cursor = "▸ "
			if o.moving {
				cursor = "↕ "
			}
		}

		line := fmt.Sprintf("  %s%d. %s", cursor, i+1, item.Label)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == o.Cursor {
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
			if o.moving {
				style = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
			}
		}
		s += style.Render(line) + "\n"
	}

	return s
}
