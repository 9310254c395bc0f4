// internal/snapshot/types.go
package snapshot

import "time"

// Sample is one metric reading as returned by the store.
type Sample struct {
	Value     float64 // metric value in primary units
	Timestamp float64 // epoch seconds
}

// Settings is the application configuration copied into every snapshot.
type Settings struct {
	UnitIsPrimary bool

	UrgentLow  float64
	Low        float64
	High       float64
	UrgentHigh float64

	DeviceDescription string

	// SensorStartedAt is the active sensor start time.
	// Zero means no sensor session.
	SensorStartedAt time.Time
	MaxAgeMinutes   float64

	FollowerMode bool
	SensorActive bool
}

// State is the complete, self-consistent snapshot sent to the companion.
// It is rebuilt from scratch on every sync cycle and discarded after
// dispatch. It contains no logic and no memory of previous cycles.
type State struct {
	// Values and Timestamps are parallel, newest-first, and always equal
	// in length. Timestamps are epoch seconds.
	Values     []float64
	Timestamps []float64

	// SlopeOrdinal is the categorical trend indicator (see constants.go).
	SlopeOrdinal int

	// Delta is the per-5-minute rate of change between the two newest
	// samples. Nil unless at least two samples exist.
	Delta *float64

	UnitIsPrimary bool

	UrgentLow  float64
	Low        float64
	High       float64
	UrgentHigh float64

	DeviceDescription string

	AgeMinutes    float64
	MaxAgeMinutes float64

	FollowerMode bool
	SensorActive bool

	// HeartbeatAt is the last companion presence signal, epoch seconds.
	// Zero means never seen.
	HeartbeatAt float64

	// BuiltAt is when this snapshot was assembled, epoch seconds.
	BuiltAt float64

	// QuotaRemaining is copied from the session view at build time.
	QuotaRemaining int
}
