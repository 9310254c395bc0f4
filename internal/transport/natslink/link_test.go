// internal/transport/natslink/link_test.go
package natslink

import (
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
)

func TestStreamName(t *testing.T) {
	assert.Equal(t, "COMPANION_STATE", streamName("companion"))
	assert.Equal(t, "APP_WATCH_STATE", streamName("app.watch"))
	assert.Equal(t, "A1_STATE", streamName("a1"))
}

func TestQuota_DailyRollover(t *testing.T) {
	l := &Link{cfg: Config{DailyPriorityBudget: 3}}

	day1 := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	day2 := day1.Add(24 * time.Hour)

	l.mu.Lock()
	assert.Equal(t, 3, l.quotaRemainingLocked(day1))
	l.quotaUsed = 3
	assert.Equal(t, 0, l.quotaRemainingLocked(day1))

	// New calendar day resets the counter.
	assert.Equal(t, 3, l.quotaRemainingLocked(day2))
	assert.Equal(t, 0, l.quotaUsed)
	l.mu.Unlock()
}

func TestHandlePresence_FlipsReachabilityOnce(t *testing.T) {
	var events []bool
	l := &Link{cfg: Config{DailyPriorityBudget: 50}}
	l.SetReachabilityHandler(func(r bool) { events = append(events, r) })

	l.handlePresence(&nats.Msg{})
	l.handlePresence(&nats.Msg{})

	assert.Equal(t, []bool{true}, events, "repeat heartbeats must not re-fire")
	assert.True(t, l.everSeen)
	assert.True(t, l.priorityOn)
	assert.False(t, l.lastSeen.IsZero())
}

func TestHandlePresence_PriorityFlag(t *testing.T) {
	l := &Link{cfg: Config{DailyPriorityBudget: 50}}

	l.handlePresence(&nats.Msg{Data: []byte(`{"priorityEnabled":false}`)})
	assert.False(t, l.priorityOn)

	l.handlePresence(&nats.Msg{Data: []byte(`{}`)})
	assert.True(t, l.priorityOn, "absent flag means enabled")
}

func TestHandleRequest_MalformedDropped(t *testing.T) {
	var got []map[string]any
	l := &Link{}
	l.SetRequestHandler(func(p map[string]any) { got = append(got, p) })

	l.handleRequest(&nats.Msg{Data: []byte(`not json`)})
	assert.Empty(t, got)

	l.handleRequest(&nats.Msg{Data: []byte(`{"kind":"refresh"}`)})
	assert.Len(t, got, 1)
	assert.Equal(t, "refresh", got[0]["kind"])
}
