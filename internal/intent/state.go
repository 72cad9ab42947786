// Package intent records which application a user submitted for a notice.
//
// Valid state graph per (user, notice) pair:
//
//	NO_APPLICATION ──► APPLIED ──► NO_APPLICATION
//
// The transition to APPLIED happens on a successful submit (the returned
// application id is cached); the transition back happens on a successful
// cancel (the id is cleared). A failed submit or cancel leaves the state
// unchanged. The cached entry is the sole client-side signal of "already
// applied" and is not reconciled against the server except by the optional
// reconcile sweeper.
package intent

import "fmt"

// State is the client-side application state for one (user, notice) pair.
type State string

const (
	StateNone    State = "NO_APPLICATION"
	StateApplied State = "APPLIED"
)

// validTransitions lists every allowed (from → to) pair.
var validTransitions = map[State][]State{
	StateNone:    {StateApplied},
	StateApplied: {StateNone},
}

// IsTransitionAllowed returns true when moving from → to is permitted.
func IsTransitionAllowed(from, to State) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ErrNoApplication is returned when a cancel is attempted with no known
// application for the pair.
var ErrNoApplication = fmt.Errorf("no application on record for this notice")

// ValidationError wraps a user-facing validation message.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }
