// internal/controller/router_test.go
package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouter_RefreshSchedulesRun(t *testing.T) {
	c := newTestController(t, &fakeBuilder{}, &fakeTransport{st: activated()})

	c.OnInboundRequest(map[string]any{"kind": "refresh"})

	assert.Len(t, c.events, 1)
	ev := <-c.events
	assert.Equal(t, TriggerInbound, ev.trigger)
}

func TestRouter_UnrecognizedKindIsIgnored(t *testing.T) {
	c := newTestController(t, &fakeBuilder{}, &fakeTransport{st: activated()})

	c.OnInboundRequest(map[string]any{"kind": "calibrate"})
	c.OnInboundRequest(map[string]any{"kind": 42})
	c.OnInboundRequest(map[string]any{})
	c.OnInboundRequest(nil)

	assert.Empty(t, c.events, "unrecognized kinds must schedule nothing")
}

func TestDecodeRequest(t *testing.T) {
	tests := []struct {
		payload map[string]any
		want    requestKind
	}{
		{map[string]any{"kind": "refresh"}, requestRefresh},
		{map[string]any{"kind": "REFRESH"}, requestUnknown},
		{map[string]any{"kind": true}, requestUnknown},
		{map[string]any{"other": "refresh"}, requestUnknown},
		{nil, requestUnknown},
	}

	for _, tt := range tests {
		if got := decodeRequest(tt.payload); got != tt.want {
			t.Fatalf("decodeRequest(%v) = %d, want %d", tt.payload, got, tt.want)
		}
	}
}
