// internal/controller/router.go
package controller

import "log/slog"

// requestKind is the tagged form of an inbound companion request.
type requestKind int

const (
	requestUnknown requestKind = iota
	requestRefresh
)

// decodeRequest maps a stringly-keyed inbound payload onto a tagged
// variant at the boundary. Unrecognized kinds decode to requestUnknown,
// never an error: the companion may be a newer version sending kinds this
// side does not know yet.
func decodeRequest(payload map[string]any) requestKind {
	kind, _ := payload["kind"].(string)
	switch kind {
	case "refresh":
		return requestRefresh
	default:
		return requestUnknown
	}
}

// OnInboundRequest validates and dispatches a companion-initiated request.
// A refresh schedules one run on the serializing loop; anything else is a
// no-op. Safe to call from any goroutine.
func (c *Controller) OnInboundRequest(payload map[string]any) {
	switch decodeRequest(payload) {
	case requestRefresh:
		slog.Debug("companion requested refresh")
		c.RequestSync(TriggerInbound)
	default:
		slog.Debug("ignoring unrecognized companion request")
	}
}
