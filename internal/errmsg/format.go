// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import (
	"errors"
	"fmt"
)

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Directory operations
	OpSearch      Op = "search stations"
	OpLookup      Op = "look up station"
	OpLoadStreams Op = "load streams"

	// Playback operations
	OpPlaybackStart Op = "start playback"
	OpPlaybackStop  Op = "stop playback"

	// Favorites
	OpFavoriteAdd    Op = "add favorite"
	OpFavoriteRemove Op = "remove favorite"
	OpFavoriteLoad   Op = "load favorites"

	// History
	OpHistoryLoad  Op = "load history"
	OpHistorySave  Op = "save history"
	OpHistoryClear Op = "clear history"

	// Initialization
	OpConfigLoad Op = "load configuration"
	OpStateOpen  Op = "open database"
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}

// Wrap returns err annotated with op, keeping it matchable with errors.Is.
func Wrap(op Op, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}

// Error is an error tagged with the operation that failed.
type Error struct {
	Op  Op
	Err error
}

func (e *Error) Error() string { return Format(e.Op, e.Err) }

func (e *Error) Unwrap() error { return e.Err }

// OpOf returns the operation of the outermost *Error in err's chain.
func OpOf(err error) (Op, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Op, true
	}
	return "", false
}
