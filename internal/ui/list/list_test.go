package list

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newList(n, height int) Model[int] {
	m := New[int](DefaultMargin)
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	m.SetItems(items)
	m.SetHeight(height)
	return m
}

func TestSelected_Empty(t *testing.T) {
	m := New[string](DefaultMargin)
	if _, ok := m.Selected(); ok {
		t.Error("Selected() on empty list should report false")
	}
	if m.Update(key("j")) != true {
		t.Error("navigation keys are consumed even on an empty list")
	}
	if start, end := m.VisibleRange(); start != 0 || end != 0 {
		t.Errorf("VisibleRange() = %d, %d; want 0, 0", start, end)
	}
}

func TestUpdate_MovesAndClamps(t *testing.T) {
	m := newList(3, 10)

	m.Update(key("down"))
	m.Update(key("j"))
	m.Update(key("j"))
	if got := m.SelectedIndex(); got != 2 {
		t.Errorf("SelectedIndex() = %d, want 2", got)
	}

	m.Update(key("up"))
	if v, _ := m.Selected(); v != 1 {
		t.Errorf("Selected() = %d, want 1", v)
	}

	m.Update(key("g"))
	if got := m.SelectedIndex(); got != 0 {
		t.Errorf("after g SelectedIndex() = %d, want 0", got)
	}
}

func TestUpdate_UnknownKeyNotConsumed(t *testing.T) {
	m := newList(3, 10)
	if m.Update(key("enter")) {
		t.Error("enter should be left to the parent")
	}
	if m.Update(key("d")) {
		t.Error("d should be left to the parent")
	}
}

func TestVisibleRange_ScrollsWithMargin(t *testing.T) {
	m := newList(20, 5)

	if start, end := m.VisibleRange(); start != 0 || end != 5 {
		t.Fatalf("VisibleRange() = %d, %d; want 0, 5", start, end)
	}

	for range 3 {
		m.Update(key("j"))
	}
	// pos 3 with margin 2 in a 5-row window scrolls by one.
	if start, end := m.VisibleRange(); start != 1 || end != 6 {
		t.Errorf("VisibleRange() = %d, %d; want 1, 6", start, end)
	}

	m.Update(key("end"))
	if start, end := m.VisibleRange(); start != 15 || end != 20 {
		t.Errorf("VisibleRange() at end = %d, %d; want 15, 20", start, end)
	}
}

func TestSetItems_ClampsCursor(t *testing.T) {
	m := newList(10, 5)
	m.Update(key("G"))

	m.SetItems([]int{0, 1, 2})
	if got := m.SelectedIndex(); got != 2 {
		t.Errorf("SelectedIndex() = %d, want 2", got)
	}

	m.SetItems(nil)
	if got := m.SelectedIndex(); got != 0 {
		t.Errorf("SelectedIndex() on empty = %d, want 0", got)
	}
}
