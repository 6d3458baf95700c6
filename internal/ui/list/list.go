// Package list provides a generic scrollable list component.
package list

import tea "github.com/charmbracelet/bubbletea"

// DefaultMargin is the number of rows kept visible around the cursor.
const DefaultMargin = 2

// Model is a generic scrollable list. It moves the cursor on navigation
// keys and leaves every other key to the parent, which renders rows from
// VisibleRange.
type Model[T any] struct {
	items  []T
	pos    int
	offset int
	margin int
	height int
}

// New creates a new list with the given scroll margin.
func New[T any](margin int) Model[T] {
	return Model[T]{margin: margin}
}

// SetItems replaces all items and clamps the cursor to bounds.
func (m *Model[T]) SetItems(items []T) {
	m.items = items
	if len(items) == 0 {
		m.pos, m.offset = 0, 0
		return
	}
	m.pos = clamp(m.pos, len(items)-1)
	m.ensureVisible()
}

// SetHeight sets the number of visible rows.
func (m *Model[T]) SetHeight(height int) {
	m.height = height
	m.ensureVisible()
}

// Items returns the current items slice.
func (m Model[T]) Items() []T {
	return m.items
}

// Len returns the number of items.
func (m Model[T]) Len() int {
	return len(m.items)
}

// Selected returns the item under the cursor and true, or the zero value and
// false when the list is empty.
func (m Model[T]) Selected() (T, bool) {
	if m.pos >= len(m.items) {
		var zero T
		return zero, false
	}
	return m.items[m.pos], true
}

// SelectedIndex returns the cursor position.
func (m Model[T]) SelectedIndex() int {
	return m.pos
}

// VisibleRange returns [start, end) indices for rendering.
func (m Model[T]) VisibleRange() (start, end int) {
	if len(m.items) == 0 || m.height <= 0 {
		return 0, 0
	}
	return m.offset, min(m.offset+m.height, len(m.items))
}

// Update moves the cursor on navigation keys and reports whether the key
// was consumed.
func (m *Model[T]) Update(msg tea.Msg) bool {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return false
	}

	switch keyMsg.String() {
	case "j", "down":
		m.move(1)
	case "k", "up":
		m.move(-1)
	case "g", "home":
		m.move(-len(m.items))
	case "G", "end":
		m.move(len(m.items))
	case "pgdown", "ctrl+d":
		m.move(max(m.height/2, 1))
	case "pgup", "ctrl+u":
		m.move(-max(m.height/2, 1))
	default:
		return false
	}
	return true
}

func (m *Model[T]) move(delta int) {
	if len(m.items) == 0 {
		return
	}
	m.pos = clamp(m.pos+delta, len(m.items)-1)
	m.ensureVisible()
}

func (m *Model[T]) ensureVisible() {
	if m.height <= 0 || len(m.items) == 0 {
		return
	}
	margin := min(m.margin, (m.height-1)/2)

	// Scroll up: cursor too close to top
	if m.pos < m.offset+margin {
		m.offset = max(m.pos-margin, 0)
	}

	// Scroll down: cursor too close to bottom
	if m.pos >= m.offset+m.height-margin {
		m.offset = m.pos - m.height + margin + 1
	}

	m.offset = clamp(m.offset, max(len(m.items)-m.height, 0))
}

func clamp(v, maxVal int) int {
	if v < 0 {
		return 0
	}
	if v > maxVal {
		return maxVal
	}
	return v
}
