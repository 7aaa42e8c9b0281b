package components

import (
	"reflect"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func testChoices() []Choice {
	return []Choice{
		{ID: "a", Label: "Alpha"},
		{ID: "b", Label: "Beta"},
		{ID: "c", Label: "Gamma"},
	}
}

func TestChoiceListUntouchedIsUnanswered(t *testing.T) {
	c := NewChoiceList(testChoices(), false)

	// Moving the cursor alone must not mark anything.
	c, _ = c.Update(keyPress('j'))
	c, _ = c.Update(keyPress('j'))

	if got := c.Selected(); got != nil {
		t.Errorf("Selected() = %v, want nil before any mark", got)
	}
}

func TestChoiceListSingleMark(t *testing.T) {
	c := NewChoiceList(testChoices(), false)

	c, _ = c.Update(keyPress('j'))
	c, _ = c.Update(keyPress(' '))
	if got := c.Selected(); !reflect.DeepEqual(got, []string{"b"}) {
		t.Errorf("Selected() = %v, want [b]", got)
	}

	// Marking another entry replaces the previous mark.
	c, _ = c.Update(keyPress('j'))
	c, _ = c.Update(keyPress(' '))
	if got := c.Selected(); !reflect.DeepEqual(got, []string{"c"}) {
		t.Errorf("Selected() = %v, want [c]", got)
	}

	// Space on the marked entry clears it.
	c, _ = c.Update(keyPress(' '))
	if got := c.Selected(); got != nil {
		t.Errorf("Selected() = %v, want nil after unmark", got)
	}
}

func TestChoiceListDigitJumpsAndMarks(t *testing.T) {
	c := NewChoiceList(testChoices(), false)

	c, _ = c.Update(keyPress('3'))
	if c.Cursor != 2 {
		t.Errorf("Cursor = %d, want 2", c.Cursor)
	}
	if got := c.Selected(); !reflect.DeepEqual(got, []string{"c"}) {
		t.Errorf("Selected() = %v, want [c]", got)
	}

	// Out-of-range digit is ignored.
	c, _ = c.Update(keyPress('9'))
	if got := c.Selected(); !reflect.DeepEqual(got, []string{"c"}) {
		t.Errorf("Selected() = %v after out-of-range digit, want [c]", got)
	}
}

func TestChoiceListMultiTogglesIndependently(t *testing.T) {
	c := NewChoiceList(testChoices(), true)

	c, _ = c.Update(keyPress(' '))
	c, _ = c.Update(keyPress('j'))
	c, _ = c.Update(keyPress('j'))
	c, _ = c.Update(keyPress(' '))
	if got := c.Selected(); !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Errorf("Selected() = %v, want [a c]", got)
	}

	// Toggle one off.
	c, _ = c.Update(keyPress('1'))
	if got := c.Selected(); !reflect.DeepEqual(got, []string{"c"}) {
		t.Errorf("Selected() = %v, want [c]", got)
	}
}

func TestChoiceListCursorBounds(t *testing.T) {
	c := NewChoiceList(testChoices(), false)

	c, _ = c.Update(keyPress('k'))
	if c.Cursor != 0 {
		t.Errorf("Cursor = %d after up at top, want 0", c.Cursor)
	}

	for i := 0; i < 5; i++ {
		c, _ = c.Update(keyPress('j'))
	}
	if c.Cursor != 2 {
		t.Errorf("Cursor = %d after repeated down, want 2", c.Cursor)
	}
}
