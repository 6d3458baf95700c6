// Package testutil provides common testing utilities for UI components.
package testutil

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// StripANSI removes ANSI escape codes from a string for easier testing.
func StripANSI(s string) string {
	return ansi.Strip(s)
}

// ContainsLine checks if any line in the output contains the given substring.
func ContainsLine(output, substr string) bool {
	return FindLine(output, substr) != ""
}

// FindLine returns the first line containing the given substring, or empty
// string. ANSI codes are stripped before matching.
func FindLine(output, substr string) string {
	for line := range strings.SplitSeq(StripANSI(output), "\n") {
		if strings.Contains(line, substr) {
			return line
		}
	}
	return ""
}

// AssertContains returns an error message if output doesn't contain substr,
// or empty string if it does.
func AssertContains(output, substr string) string {
	if !strings.Contains(StripANSI(output), substr) {
		return "expected output to contain " + substr
	}
	return ""
}

// AssertNotContains returns an error message if output contains substr,
// or empty string if it doesn't.
func AssertNotContains(output, substr string) string {
	if strings.Contains(StripANSI(output), substr) {
		return "expected output to NOT contain " + substr
	}
	return ""
}

// Key builds a tea.KeyMsg from the name bubbletea reports for it, such as
// "enter", "esc", "ctrl+c" or "a".
func Key(name string) tea.KeyMsg {
	switch name {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "delete":
		return tea.KeyMsg{Type: tea.KeyDelete}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)}
}

// Collect runs cmd and returns the messages it produces, flattening
// batches. Messages for which keep returns false are dropped; a nil keep
// accepts everything. Tick commands block until they fire.
func Collect(cmd tea.Cmd, keep func(tea.Msg) bool) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, Collect(c, keep)...)
		}
		return out
	}
	if msg == nil || (keep != nil && !keep(msg)) {
		return nil
	}
	return []tea.Msg{msg}
}
