// internal/controller/controller.go
package controller

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tamzrod/companion-sync/internal/session"
	"github.com/tamzrod/companion-sync/internal/snapshot"
	"github.com/tamzrod/companion-sync/internal/throttle"
)

// Config is the minimal runtime config the controller needs.
type Config struct {
	// PriorityMinInterval is the minimum spacing between priority-channel
	// sends, regardless of remaining quota.
	PriorityMinInterval time.Duration
}

// Controller runs the channel-selection state machine.
//
// All mutable state (lastForcedSendAt, wasReachable) is owned by the Run
// loop goroutine. Every trigger source goes through the events channel;
// nothing else may touch that state.
type Controller struct {
	cfg       Config
	builder   Builder
	transport Transport
	rec       Recorder
	clock     func() time.Time

	events chan event

	// lastForcedSendAt is the throttle timestamp. Zero means never.
	// Updated whenever the priority channel is used, success or failure.
	lastForcedSendAt time.Time
	wasReachable     bool
}

// New creates a controller with immutable config.
func New(cfg Config, builder Builder, transport Transport) (*Controller, error) {
	if cfg.PriorityMinInterval <= 0 {
		return nil, errors.New("controller: priority min interval must be > 0")
	}
	if builder == nil {
		return nil, errors.New("controller: builder required")
	}
	if transport == nil {
		return nil, errors.New("controller: transport required")
	}
	return &Controller{
		cfg:       cfg,
		builder:   builder,
		transport: transport,
		rec:       nopRecorder{},
		clock:     time.Now,
		events:    make(chan event, 8),
	}, nil
}

// SetRecorder injects the observability recorder.
// Must be called before Run.
func (c *Controller) SetRecorder(r Recorder) {
	if r != nil {
		c.rec = r
	}
}

// decide maps session status onto the link state.
// Pairing dominates installation dominates activation dominates
// reachability.
func decide(st session.Status) linkState {
	if !st.Paired {
		return linkNotPaired
	}
	if !st.AppInstalled {
		return linkAppMissing
	}
	if st.Activation != session.Activated {
		return linkNotActivated
	}
	if st.Reachable {
		return linkReachable
	}
	return linkUnreachable
}

// syncOnce runs one full cycle: read status, pick a state, act.
// Called only from the Run loop goroutine.
func (c *Controller) syncOnce(ctx context.Context, trig Trigger) {
	st := c.transport.Status()
	state := decide(st)
	c.rec.RecordCycle(state.String())

	switch state {
	case linkNotPaired:
		slog.Info("companion not paired, skipping sync", "trigger", trig.String())

	case linkAppMissing:
		slog.Info("companion app not installed, skipping sync", "trigger", trig.String())

	case linkNotActivated:
		// One activation request per cycle. Never a loop: the next tick
		// re-reads status and decides again.
		slog.Info("session not activated, requesting activation",
			"activation", st.Activation.String(), "trigger", trig.String())
		if err := c.transport.Activate(); err != nil {
			slog.Warn("activation request failed", "error", err)
		}

	case linkReachable, linkUnreachable:
		// Snapshot is rebuilt before channel selection on every run.
		// State is never sent stale.
		snap, err := c.builder.Build(ctx)
		if err != nil {
			slog.Warn("snapshot build failed, skipping cycle", "error", err)
			return
		}

		payload := snapshot.Encode(snap)
		payload["payloadId"] = uuid.NewString()

		if state == linkReachable {
			c.dispatch("immediate", payload, c.transport.SendImmediate)
			return
		}

		now := c.clock()
		if throttle.MayUsePriorityChannel(
			now,
			c.lastForcedSendAt,
			c.cfg.PriorityMinInterval,
			st.QuotaRemaining,
			st.PriorityEnabled,
		) {
			// The throttle window is consumed even if the send fails:
			// a failed priority send still spent its slot.
			c.lastForcedSendAt = now
			c.dispatch("priority", payload, c.transport.SendPriority)
			return
		}

		c.dispatch("queued", payload, c.transport.SendQueued)
	}
}

// dispatch performs one fire-and-forget send. Failures are logged only:
// the next cycle resends a complete fresh snapshot, so missed updates are
// self-healing and nothing here retries.
func (c *Controller) dispatch(channel string, payload map[string]any, send func(map[string]any) error) {
	err := send(payload)
	c.rec.RecordSend(channel, err)
	if err != nil {
		slog.Warn("send failed", "channel", channel, "payload_id", payload["payloadId"], "error", err)
		return
	}
	slog.Debug("snapshot dispatched", "channel", channel, "payload_id", payload["payloadId"])
}
