package components

import (
	"reflect"
	"testing"
)

func testItems() []Choice {
	return []Choice{
		{ID: "s1", Label: "First"},
		{ID: "s2", Label: "Second"},
		{ID: "s3", Label: "Third"},
	}
}

func TestOrderListInitialSequence(t *testing.T) {
	o := NewOrderList(testItems())
	if got := o.Sequence(); !reflect.DeepEqual(got, []string{"s1", "s2", "s3"}) {
		t.Errorf("Sequence() = %v", got)
	}
}

func TestOrderListLiftAndMove(t *testing.T) {
	o := NewOrderList(testItems())

	// Lift the first item and carry it down.
	o, _ = o.Update(keyPress(' '))
	if !o.Moving() {
		t.Fatal("expected moving state after space")
	}
	o, _ = o.Update(keyPress('j'))
	o, _ = o.Update(keyPress('j'))
	o, _ = o.Update(keyPress(' '))
	if o.Moving() {
		t.Fatal("expected moving state cleared after second space")
	}

	if got := o.Sequence(); !reflect.DeepEqual(got, []string{"s2", "s3", "s1"}) {
		t.Errorf("Sequence() = %v, want [s2 s3 s1]", got)
	}
	if o.Cursor != 2 {
		t.Errorf("Cursor = %d, want 2 (follows the moved item)", o.Cursor)
	}
}

func TestOrderListDirectMove(t *testing.T) {
	o := NewOrderList(testItems())

	// Shift+down moves without lifting first.
	o, _ = o.Update(keyPress('J'))
	if got := o.Sequence(); !reflect.DeepEqual(got, []string{"s2", "s1", "s3"}) {
		t.Errorf("Sequence() = %v, want [s2 s1 s3]", got)
	}

	o, _ = o.Update(keyPress('K'))
	if got := o.Sequence(); !reflect.DeepEqual(got, []string{"s1", "s2", "s3"}) {
		t.Errorf("Sequence() = %v, want original order restored", got)
	}
}

func TestOrderListMoveBounds(t *testing.T) {
	o := NewOrderList(testItems())

	// Moving the top item up is a no-op.
	o, _ = o.Update(keyPress('K'))
	if got := o.Sequence(); !reflect.DeepEqual(got, []string{"s1", "s2", "s3"}) {
		t.Errorf("Sequence() = %v after move up at top", got)
	}

	o.Cursor = 2
	o, _ = o.Update(keyPress('J'))
	if got := o.Sequence(); !reflect.DeepEqual(got, []string{"s1", "s2", "s3"}) {
		t.Errorf("Sequence() = %v after move down at bottom", got)
	}
}
