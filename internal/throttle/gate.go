// internal/throttle/gate.go
package throttle

import "time"

// MayUsePriorityChannel decides whether a priority (quota-limited) send is
// allowed right now. Pure function: no hidden state, all inputs explicit.
//
// The elapsed-time boundary is inclusive: exactly minInterval since the last
// forced send is allowed. A zero lastForcedSendAt means "never", which always
// satisfies the interval.
func MayUsePriorityChannel(
	now time.Time,
	lastForcedSendAt time.Time,
	minInterval time.Duration,
	quotaRemaining int,
	channelEnabled bool,
) bool {
	if quotaRemaining <= 0 {
		return false
	}
	if !channelEnabled {
		return false
	}
	return now.Sub(lastForcedSendAt) >= minInterval
}
