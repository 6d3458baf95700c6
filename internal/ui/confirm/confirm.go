// Package confirm provides a yes/no confirmation prompt component.
package confirm

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/fmcli/internal/keymap"
	"github.com/llehouerou/fmcli/internal/ui/styles"
)

// ResultMsg is sent when the prompt is answered.
type ResultMsg struct {
	Confirmed bool
	Context   any // User-provided context passed through
}

// Model is a yes/no prompt shown inline below the current screen.
type Model struct {
	title    string
	message  string
	context  any
	active   bool
	resolver *keymap.Resolver
}

// New creates a new confirmation model.
func New() Model {
	return Model{resolver: keymap.InContexts(keymap.ContextConfirm)}
}

// Show displays the prompt.
func (m *Model) Show(title, message string, context any) {
	m.title = title
	m.message = message
	m.context = context
	m.active = true
}

// Reset clears the confirmation state.
func (m *Model) Reset() {
	m.title = ""
	m.message = ""
	m.context = nil
	m.active = false
}

// Active returns whether the prompt is currently shown.
func (m Model) Active() bool {
	return m.active
}

// Update answers the prompt on confirm or cancel keys. Other input is
// swallowed while the prompt is active.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if !m.active {
		return nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	var confirmed bool
	switch m.resolver.Resolve(keyMsg.String()) { //nolint:exhaustive // only prompt actions
	case keymap.ActionConfirm:
		confirmed = true
	case keymap.ActionCancel:
		confirmed = false
	default:
		return nil
	}

	ctx := m.context
	m.Reset()
	return func() tea.Msg {
		return ResultMsg{Confirmed: confirmed, Context: ctx}
	}
}

// View renders the prompt, or "" when inactive.
func (m Model) View() string {
	if !m.active {
		return ""
	}
	s := styles.T().S()
	hint := keymap.Hint(keymap.ByContext(keymap.ContextConfirm))
	return s.Warning.Bold(true).Render(m.title) + "\n" +
		s.Base.Render(m.message) + "\n" +
		s.Subtle.Render(hint)
}
