// internal/controller/runner.go
package controller

import (
	"context"
	"log/slog"
)

// Run starts the serializing event loop. One goroutine. No overlap.
// Every trigger source (timer, reachability, inbound, host) funnels into
// the same channel, so cycles never race on throttle state.
func (c *Controller) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-c.events:
			c.handleEvent(ctx, ev)
		}
	}
}

// handleEvent processes one marshaled trigger.
// Called only from the Run loop goroutine.
func (c *Controller) handleEvent(ctx context.Context, ev event) {
	if ev.trigger == TriggerReachability {
		was := c.wasReachable
		c.wasReachable = ev.reachable

		// Only the unreachable -> reachable transition earns an
		// out-of-cycle run; everything else waits for the next tick.
		if was || !ev.reachable {
			return
		}
	}

	c.syncOnce(ctx, ev.trigger)
}

// RequestSync schedules one controller run. Non-blocking: if the loop is
// saturated the trigger is dropped, which is safe because every cycle
// sends a complete fresh snapshot.
func (c *Controller) RequestSync(t Trigger) {
	select {
	case c.events <- event{trigger: t}:
	default:
		slog.Debug("sync trigger dropped, loop saturated", "trigger", t.String())
	}
}

// OnReachabilityChanged marshals a transport reachability event onto the
// controller loop. Safe to call from any goroutine.
func (c *Controller) OnReachabilityChanged(reachable bool) {
	select {
	case c.events <- event{trigger: TriggerReachability, reachable: reachable}:
	default:
		slog.Debug("reachability event dropped, loop saturated", "reachable", reachable)
	}
}
