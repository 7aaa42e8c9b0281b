package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/soloquiz/internal/ui/theme"
)

// Choice is one selectable entry of a ChoiceList.
type Choice struct {
	ID    string
	Label string
}

// ChoiceList is a selector over labelled choices. Space marks the entry
// under the cursor; in multi mode several entries may be marked, in single
// mode marking an entry clears the previous one. Digits 1-9 jump and mark
// directly. Nothing is marked until the user acts, so an untouched list
// reads as unanswered.
type ChoiceList struct {
	Choices []Choice
	Multi   bool

	Cursor   int
	selected int // single mode; -1 when nothing marked
	checked  map[int]bool
}

// NewChoiceList creates a choice list. For single-choice questions pass
// multi=false.
func NewChoiceList(choices []Choice, multi bool) ChoiceList {
	return ChoiceList{
		Choices:  choices,
		Multi:    multi,
		selected: -1,
		checked:  make(map[int]bool),
	}
}

// Init returns nil.
func (c ChoiceList) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and marking.
func (c ChoiceList) Update(msg tea.Msg) (ChoiceList, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Choices)-1 {
			c.Cursor++
		}
	case "space", " ":
		c.mark(c.Cursor)
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(c.Choices) {
				c.Cursor = i
				c.mark(i)
			}
		}
	}

	return c, nil
}

func (c *ChoiceList) mark(i int) {
	if c.Multi {
		c.checked[i] = !c.checked[i]
		return
	}
	if c.selected == i {
		c.selected = -1
		return
	}
	c.selected = i
}

// Selected returns the marked ids, nil when nothing is marked.
func (c ChoiceList) Selected() []string {
	if !c.Multi {
		if c.selected >= 0 && c.selected < len(c.Choices) {
			return []string{c.Choices[c.selected].ID}
		}
		return nil
	}
	var ids []string
	for i, choice := range c.Choices {
		if c.checked[i] {
			ids = append(ids, choice.ID)
		}
	}
	return ids
}

// View renders the list.
func (c ChoiceList) View() string {
	var s string
	for i, choice := range c.Choices {
		cursor := "  "
		if i == c.Cursor {
			cursor = "▸ "
		}

		marked := c.checked[i]
		if !c.Multi {
			marked = i == c.selected
		}

		marker := "( ) "
		if c.Multi {
			marker = "[ ] "
		}
		if marked {
			marker = "(•) "
			if c.Multi {
				marker = "[x] "
			}
		}

		line := fmt.Sprintf("  %s%s%d) %s", cursor, marker, i+1, choice.Label)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == c.Cursor {
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		} else if marked {
			style = lipgloss.NewStyle().Foreground(theme.Secondary)
		}
		s += style.Render(line) + "\n"
	}

	return s
}
