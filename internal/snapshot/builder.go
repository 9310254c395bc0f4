// internal/snapshot/builder.go
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/tamzrod/companion-sync/internal/session"
)

// ReadingAccessor returns the most recent samples, newest-first.
// The builder depends on this contract only.
type ReadingAccessor interface {
	Latest(ctx context.Context, limit int, since time.Time) ([]Sample, error)
}

// SettingsProvider exposes current application settings.
type SettingsProvider interface {
	Current() Settings
}

// SessionProvider exposes the current companion session status.
type SessionProvider interface {
	Status() session.Status
}

// Builder assembles immutable snapshots. No side effects, no caching.
type Builder struct {
	readings ReadingAccessor
	settings SettingsProvider
	sessions SessionProvider
	clock    func() time.Time
}

// NewBuilder creates a builder with immutable collaborators.
func NewBuilder(readings ReadingAccessor, settings SettingsProvider, sessions SessionProvider) (*Builder, error) {
	if readings == nil {
		return nil, errors.New("snapshot: reading accessor required")
	}
	if settings == nil {
		return nil, errors.New("snapshot: settings provider required")
	}
	if sessions == nil {
		return nil, errors.New("snapshot: session provider required")
	}
	return &Builder{
		readings: readings,
		settings: settings,
		sessions: sessions,
		clock:    time.Now,
	}, nil
}

// Build assembles one snapshot. All-or-nothing: an accessor failure aborts
// the build and the caller skips this cycle.
func (b *Builder) Build(ctx context.Context) (State, error) {
	now := b.clock()

	samples, err := b.readings.Latest(ctx, SampleLimit, now.Add(-LookbackWindow))
	if err != nil {
		return State{}, fmt.Errorf("snapshot: fetch samples: %w", err)
	}

	values := make([]float64, len(samples))
	timestamps := make([]float64, len(samples))
	for i, s := range samples {
		values[i] = s.Value
		timestamps[i] = s.Timestamp
	}

	delta := deltaPer5Min(samples)

	set := b.settings.Current()
	st := b.sessions.Status()

	heartbeat := 0.0
	if !st.LastHeartbeatAt.IsZero() {
		heartbeat = float64(st.LastHeartbeatAt.Unix())
	}

	return State{
		Values:            values,
		Timestamps:        timestamps,
		SlopeOrdinal:      slopeOrdinal(delta),
		Delta:             delta,
		UnitIsPrimary:     set.UnitIsPrimary,
		UrgentLow:         set.UrgentLow,
		Low:               set.Low,
		High:              set.High,
		UrgentHigh:        set.UrgentHigh,
		DeviceDescription: set.DeviceDescription,
		AgeMinutes:        sensorAgeMinutes(now, set.SensorStartedAt),
		MaxAgeMinutes:     set.MaxAgeMinutes,
		FollowerMode:      set.FollowerMode,
		SensorActive:      set.SensorActive,
		HeartbeatAt:       heartbeat,
		BuiltAt:           float64(now.Unix()),
		QuotaRemaining:    st.QuotaRemaining,
	}, nil
}

// deltaPer5Min computes the rate of change between the two newest samples,
// scaled to a per-5-minute convention. Nil when fewer than two samples
// exist or the two newest share a timestamp.
func deltaPer5Min(samples []Sample) *float64 {
	if len(samples) < 2 {
		return nil
	}
	dt := samples[0].Timestamp - samples[1].Timestamp
	if dt <= 0 {
		return nil
	}
	d := (samples[0].Value - samples[1].Value) / dt * DeltaScaleSeconds
	return &d
}

// slopeOrdinal buckets the per-5-minute delta onto the fixed 7-step scale.
func slopeOrdinal(delta *float64) int {
	if delta == nil {
		return SlopeNeutral
	}

	mag := math.Abs(*delta)
	rising := *delta > 0

	switch {
	case mag < slopeFlatMax:
		return SlopeFlat
	case mag < slopeFortyFiveMax:
		if rising {
			return SlopeFortyFiveUp
		}
		return SlopeFortyFiveDown
	case mag < slopeSingleMax:
		if rising {
			return SlopeSingleUp
		}
		return SlopeSingleDown
	default:
		if rising {
			return SlopeDoubleUp
		}
		return SlopeDoubleDown
	}
}

// sensorAgeMinutes derives sensor age from its start time.
// A missing start means no session (age 0). A start in the future is
// malformed input: logged and treated as age 0, never fatal.
func sensorAgeMinutes(now time.Time, startedAt time.Time) float64 {
	if startedAt.IsZero() {
		return 0
	}
	if startedAt.After(now) {
		slog.Warn("sensor start time is in the future, treating age as 0",
			"started_at", startedAt, "now", now)
		return 0
	}
	return now.Sub(startedAt).Minutes()
}
