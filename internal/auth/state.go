// ABOUTME: Session-level state machine for the login flow
// ABOUTME: ANONYMOUS -> AUTHENTICATING -> AUTHENTICATED, with logout back to ANONYMOUS

package auth

import (
	"fmt"
	"sync"
)

// State is the session lifecycle state
type State int

const (
	StateAnonymous State = iota
	StateAuthenticating
	StateAuthenticated
)

// String returns the string representation of a State
func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "ANONYMOUS"
	case StateAuthenticating:
		return "AUTHENTICATING"
	case StateAuthenticated:
		return "AUTHENTICATED"
	default:
		return "UNKNOWN"
	}
}

// Event drives a state transition
type Event int

const (
	EventLoginSubmit Event = iota
	EventLoginSuccess
	EventLoginError
	EventLogout
)

// String returns the string representation of an Event
func (e Event) String() string {
	switch e {
	case EventLoginSubmit:
		return "login-submit"
	case EventLoginSuccess:
		return "login-success"
	case EventLoginError:
		return "login-error"
	case EventLogout:
		return "logout"
	default:
		return "unknown"
	}
}

type transition struct {
	from  State
	event Event
}

// There is no expiry transition. The server signals expiry by failing calls.
var transitions = map[transition]State{
	{StateAnonymous, EventLoginSubmit}:       StateAuthenticating,
	{StateAuthenticated, EventLoginSubmit}:   StateAuthenticating,
	{StateAuthenticating, EventLoginSuccess}: StateAuthenticated,
	{StateAuthenticating, EventLoginError}:   StateAnonymous,
	{StateAuthenticated, EventLogout}:        StateAnonymous,
	{StateAuthenticating, EventLogout}:       StateAnonymous,
	{StateAnonymous, EventLogout}:            StateAnonymous,
}

// Tracker holds the current session state
type Tracker struct {
	mu    sync.Mutex
	state State
}

// NewTracker creates a tracker starting in the given state
func NewTracker(initial State) *Tracker {
	return &Tracker{state: initial}
}

// State returns the current state
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Fire applies an event and returns the new state. Events that are not valid
// from the current state leave it unchanged and return an error.
func (t *Tracker) Fire(e Event) (State, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	next, ok := transitions[transition{t.state, e}]
	if !ok {
		return t.state, fmt.Errorf("invalid session transition: %s on %s", e, t.state)
	}
	t.state = next
	return next, nil
}
