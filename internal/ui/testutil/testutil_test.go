package testutil

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestStripANSI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no ansi codes", "hello world", "hello world"},
		{"with color codes", "\x1b[31mred\x1b[0m text", "red text"},
		{"with multiple codes", "\x1b[1;32mbold green\x1b[0m", "bold green"},
		{"empty string", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripANSI(tt.input); got != tt.want {
				t.Errorf("StripANSI(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFindLine(t *testing.T) {
	output := "first\n\x1b[1mStation: FIP\x1b[0m\nlast"

	if got := FindLine(output, "Station"); got != "Station: FIP" {
		t.Errorf("FindLine() = %q, want %q", got, "Station: FIP")
	}
	if FindLine(output, "missing") != "" {
		t.Error("FindLine() should return empty for missing text")
	}
	if !ContainsLine(output, "last") {
		t.Error("ContainsLine() should find last line")
	}
}

func TestAssertContains(t *testing.T) {
	if msg := AssertContains("\x1b[31mhello\x1b[0m", "hello"); msg != "" {
		t.Errorf("AssertContains() = %q, want empty", msg)
	}
	if msg := AssertContains("hello", "bye"); msg == "" {
		t.Error("AssertContains() should report missing text")
	}
	if msg := AssertNotContains("hello", "bye"); msg != "" {
		t.Errorf("AssertNotContains() = %q, want empty", msg)
	}
}

func TestKey(t *testing.T) {
	for _, name := range []string{"enter", "esc", "ctrl+c", "up", "down", "left", "right", "delete", "a", "/"} {
		if got := Key(name).String(); got != name {
			t.Errorf("Key(%q).String() = %q", name, got)
		}
	}
}

type pingMsg struct{ n int }

func TestCollect_FlattensBatches(t *testing.T) {
	cmd := tea.Batch(
		func() tea.Msg { return pingMsg{1} },
		nil,
		tea.Batch(func() tea.Msg { return pingMsg{2} }, func() tea.Msg { return "skip" }),
	)

	msgs := Collect(cmd, func(msg tea.Msg) bool {
		_, ok := msg.(pingMsg)
		return ok
	})
	if len(msgs) != 2 {
		t.Fatalf("len(msgs) = %d, want 2", len(msgs))
	}
	if msgs[0].(pingMsg).n != 1 || msgs[1].(pingMsg).n != 2 {
		t.Errorf("msgs = %v", msgs)
	}
	if Collect(nil, nil) != nil {
		t.Error("Collect(nil) should return nil")
	}
}
