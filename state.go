package embedctl

import "strings"

// State represents a systemd active-state as reported by `systemctl is-active`
type State int

const (
	// StateUnknown represents an unrecognized active-state
	StateUnknown State = iota
	// StateActive means the service is up
	StateActive
	// StateInactive means the service is down
	StateInactive
	// StateFailed means the service entered a failed state
	StateFailed
	// StateActivating means the service is starting
	StateActivating
	// StateDeactivating means the service is stopping
	StateDeactivating
)

// State string constants
const (
	stateUnknownStr      = "unknown"
	stateActiveStr       = "active"
	stateInactiveStr     = "inactive"
	stateFailedStr       = "failed"
	stateActivatingStr   = "activating"
	stateDeactivatingStr = "deactivating"
)

// String returns the systemd spelling of the state
func (s State) String() string {
	switch s {
	case StateActive:
		return stateActiveStr
	case StateInactive:
		return stateInactiveStr
	case StateFailed:
		return stateFailedStr
	case StateActivating:
		return stateActivatingStr
	case StateDeactivating:
		return stateDeactivatingStr
	default:
		return stateUnknownStr
	}
}

// ParseState maps `systemctl is-active` output to a State.
// Unrecognized strings map to StateUnknown rather than an error; systemd has
// grown states over time and the watcher should keep running across them.
func ParseState(s string) State {
	switch strings.TrimSpace(s) {
	case stateActiveStr:
		return StateActive
	case stateInactiveStr, "dead":
		return StateInactive
	case stateFailedStr:
		return StateFailed
	case stateActivatingStr:
		return StateActivating
	case stateDeactivatingStr:
		return StateDeactivating
	default:
		return StateUnknown
	}
}
