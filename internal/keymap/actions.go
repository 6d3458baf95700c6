// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Playback controls
	ActionResume Action = "resume"
	ActionPause  Action = "pause"
	ActionToggle Action = "toggle"
	ActionStop   Action = "stop"
	ActionBack   Action = "back"

	// Menu navigation
	ActionSearch    Action = "search"
	ActionFavorites Action = "favorites"
	ActionHistory   Action = "history"
	ActionQuit      Action = "quit"
	ActionSelect    Action = "select"
	ActionMenuBack  Action = "menu_back"
	ActionNextPage  Action = "next_page"
	ActionPrevPage  Action = "prev_page"

	// Favorites
	ActionAddFavorite    Action = "add_favorite"
	ActionRemoveFavorite Action = "remove_favorite"

	// History
	ActionClearHistory Action = "clear_history"

	// Confirmation prompts
	ActionConfirm Action = "confirm"
	ActionCancel  Action = "cancel"
)

// Binding maps keys to an action within a context.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // one of the Context* constants
}
