// internal/session/status.go
package session

import "time"

// ActivationState mirrors the transport's session lifecycle.
type ActivationState int

const (
	NotActivated ActivationState = iota
	Activating
	Activated
)

func (s ActivationState) String() string {
	switch s {
	case NotActivated:
		return "not_activated"
	case Activating:
		return "activating"
	case Activated:
		return "activated"
	default:
		return "unknown"
	}
}

// Status is a point-in-time view of the companion session.
// It is read fresh every sync cycle and never cached across cycles.
type Status struct {
	Paired          bool
	AppInstalled    bool
	Activation      ActivationState
	Reachable       bool
	PriorityEnabled bool

	// QuotaRemaining is the daily priority-send allotment left.
	// Owned and enforced by the transport; the core only reads it.
	QuotaRemaining int

	// LastHeartbeatAt is the last companion presence signal.
	// Zero means never seen.
	LastHeartbeatAt time.Time
}
