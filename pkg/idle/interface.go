package idle

import "time"

// State is the engine's view of the session, derived from comparing the
// latest idle sample against the configured threshold.
type State int

const (
	// StateUnknown is the pre-first-poll state. The first observation is
	// always a transition out of it, so the first poll always publishes.
	StateUnknown State = iota
	StateActive
	StateIdle
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateIdle:
		return "idle"
	default:
		return "unknown"
	}
}

// Source samples the display server's idle counter. Purely observational;
// the connection is established once and reused for all polls.
type Source interface {
	// IdleDuration returns elapsed time since the last user input event
	// (mouse motion, button, or key press) across the whole display.
	IdleDuration() (time.Duration, error)

	// Close releases the display connection.
	Close() error
}

// HintSink sets and reads the session manager's idle-hint properties.
// Side-effecting: the hint is observable by other processes (power
// management policy). Deduplication of identical writes is the caller's
// job, not the sink's.
type HintSink interface {
	// SetIdleHint requests the session be marked idle (true) or not (false).
	SetIdleHint(idle bool) error

	// IdleHint reads the session's current idle-hint value.
	IdleHint() (bool, error)

	// IdleSince reports when the idle hint last changed to true.
	// The zero time means the session has never been marked idle.
	IdleSince() (time.Time, error)

	// Close releases the session bus connection.
	Close() error
}
