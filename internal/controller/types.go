// internal/controller/types.go
package controller

import (
	"context"

	"github.com/tamzrod/companion-sync/internal/session"
	"github.com/tamzrod/companion-sync/internal/snapshot"
)

// Transport is the exact contract the controller uses for the companion
// link. Delivery is fire-and-forget: a returned error means the transport
// rejected the send, not that delivery failed downstream.
type Transport interface {
	Status() session.Status
	Activate() error
	SendImmediate(payload map[string]any) error
	SendPriority(payload map[string]any) error
	SendQueued(payload map[string]any) error
}

// Builder assembles the per-cycle snapshot.
type Builder interface {
	Build(ctx context.Context) (snapshot.State, error)
}

// Recorder receives sync observability events.
type Recorder interface {
	RecordCycle(state string)
	RecordSend(channel string, err error)
}

type nopRecorder struct{}

func (nopRecorder) RecordCycle(string)       {}
func (nopRecorder) RecordSend(string, error) {}

// linkState is the per-cycle decision of the state machine.
// Derived fresh from session status every run, never persisted.
type linkState int

const (
	linkNotPaired linkState = iota
	linkAppMissing
	linkNotActivated
	linkReachable
	linkUnreachable
)

func (s linkState) String() string {
	switch s {
	case linkNotPaired:
		return "not_paired"
	case linkAppMissing:
		return "app_missing"
	case linkNotActivated:
		return "not_activated"
	case linkReachable:
		return "reachable"
	case linkUnreachable:
		return "unreachable"
	default:
		return "unknown"
	}
}

// Trigger identifies what scheduled a sync run.
type Trigger int

const (
	TriggerTimer Trigger = iota
	TriggerReachability
	TriggerInbound
	TriggerManual
)

func (t Trigger) String() string {
	switch t {
	case TriggerTimer:
		return "timer"
	case TriggerReachability:
		return "reachability"
	case TriggerInbound:
		return "inbound"
	case TriggerManual:
		return "manual"
	default:
		return "unknown"
	}
}

// event is the single inbound form every trigger is marshaled into.
type event struct {
	trigger   Trigger
	reachable bool // meaningful only for TriggerReachability
}
