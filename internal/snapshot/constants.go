// internal/snapshot/constants.go
package snapshot

import "time"

// ---- SAMPLE WINDOW ----

// LookbackWindow bounds how far back samples are fetched.
const LookbackWindow = 12 * time.Hour

// SampleLimit caps the number of samples per snapshot.
const SampleLimit = 48

// ---- DELTA SCALING ----

// DeltaScaleSeconds scales the raw rate of change to a per-5-minute
// convention: delta = (v0 - v1) / (t0 - t1) * DeltaScaleSeconds.
const DeltaScaleSeconds = 300.0

// ---- SLOPE ORDINALS ----

// Slope ordinals form a fixed 7-step scale. The values are part of the
// wire contract with the companion and MUST NOT be reordered.

const SlopeDoubleDown = 0
const SlopeSingleDown = 1
const SlopeFortyFiveDown = 2
const SlopeFlat = 3
const SlopeFortyFiveUp = 4
const SlopeSingleUp = 5
const SlopeDoubleUp = 6

// SlopeNeutral is used when the series is empty or too short to carry
// a trend.
const SlopeNeutral = SlopeFlat

// ---- SLOPE BUCKETS ----

// Per-5-minute delta magnitudes separating the slope buckets.

const slopeFlatMax = 1.0
const slopeFortyFiveMax = 2.0
const slopeSingleMax = 3.5
