// internal/metrics/recorder.go
package metrics

import (
	prom "github.com/prometheus/client_golang/prometheus"
)

// Recorder exposes sync counters to Prometheus.
// Implements the controller's Recorder contract.
type Recorder struct {
	cycles *prom.CounterVec
	sends  *prom.CounterVec
}

// NewRecorder constructs and registers the sync metrics.
func NewRecorder(reg *prom.Registry) *Recorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}

	r := &Recorder{
		cycles: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "companionsync",
			Name:      "cycles_total",
			Help:      "Sync cycles by resolved link state",
		}, []string{"state"}),
		sends: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "companionsync",
			Name:      "sends_total",
			Help:      "Snapshot sends by channel and result",
		}, []string{"channel", "result"}),
	}

	reg.MustRegister(r.cycles, r.sends)
	return r
}

// RecordCycle counts one state-machine evaluation.
func (r *Recorder) RecordCycle(state string) {
	r.cycles.WithLabelValues(state).Inc()
}

// RecordSend counts one dispatch attempt.
func (r *Recorder) RecordSend(channel string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.sends.WithLabelValues(channel, result).Inc()
}
