package keymap

import "strings"

// Contexts used by the bindings.
const (
	ContextPlayback  = "playback"
	ContextHome      = "home"
	ContextList      = "list"
	ContextResults   = "results"
	ContextFavorites = "favorites"
	ContextStreams   = "streams"
	ContextHistory   = "history"
	ContextConfirm   = "confirm"
)

// All contains every key binding.
var All = []Binding{
	// Playback. Raw mode delivers ctrl+c as a key, so it stops playback.
	{ActionResume, []string{"p", "P"}, "Play", ContextPlayback},
	{ActionPause, []string{"a", "A"}, "Pause", ContextPlayback},
	{ActionToggle, []string{"space"}, "Play/pause", ContextPlayback},
	{ActionStop, []string{"s", "S", "q", "ctrl+c"}, "Stop", ContextPlayback},
	{ActionBack, []string{"b", "B", "esc"}, "Back", ContextPlayback},

	// Home screen
	{ActionSearch, []string{"s", "/"}, "Search stations", ContextHome},
	{ActionFavorites, []string{"f"}, "Favorites", ContextHome},
	{ActionHistory, []string{"h"}, "History", ContextHome},
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", ContextHome},

	// Any list screen
	{ActionSelect, []string{"enter"}, "Select", ContextList},
	{ActionMenuBack, []string{"esc", "b"}, "Back", ContextList},
	{ActionQuit, []string{"ctrl+c"}, "Quit", ContextList},

	// Search results
	{ActionNextPage, []string{"n", "right"}, "Next page", ContextResults},
	{ActionPrevPage, []string{"p", "left"}, "Previous page", ContextResults},
	{ActionAddFavorite, []string{"a"}, "Add to favorites", ContextResults},

	// Favorites
	{ActionRemoveFavorite, []string{"d", "delete"}, "Remove favorite", ContextFavorites},

	// Streams of one station
	{ActionAddFavorite, []string{"a"}, "Add to favorites", ContextStreams},

	// History
	{ActionClearHistory, []string{"c"}, "Clear history", ContextHistory},

	// Confirmation prompts
	{ActionConfirm, []string{"y", "Y", "enter"}, "Confirm", ContextConfirm},
	{ActionCancel, []string{"n", "N", "esc"}, "Cancel", ContextConfirm},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range All {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}

// ForContexts returns the bindings of several contexts. Later contexts
// override earlier ones when a key is bound twice.
func ForContexts(contexts ...string) []Binding {
	var result []Binding
	for _, c := range contexts {
		result = append(result, ByContext(c)...)
	}
	return result
}

// Hint renders a one-line summary such as "[p] Play  [a] Pause" using the
// first key of each binding.
func Hint(bindings []Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if len(b.Keys) == 0 {
			continue
		}
		parts = append(parts, "["+b.Keys[0]+"] "+b.Description)
	}
	return strings.Join(parts, "  ")
}
