// internal/snapshot/encode.go
package snapshot

// Encode converts a State into the wire mapping sent over every channel.
// Keys are part of the companion contract.
// The "delta" key is omitted entirely when no delta exists.
// No IO. No side effects.
func Encode(s State) map[string]any {
	m := map[string]any{
		"values":            s.Values,
		"timestamps":        s.Timestamps,
		"slopeOrdinal":      s.SlopeOrdinal,
		"unitIsPrimary":     s.UnitIsPrimary,
		"urgentLow":         s.UrgentLow,
		"low":               s.Low,
		"high":              s.High,
		"urgentHigh":        s.UrgentHigh,
		"deviceDescription": s.DeviceDescription,
		"ageMinutes":        s.AgeMinutes,
		"maxAgeMinutes":     s.MaxAgeMinutes,
		"followerMode":      s.FollowerMode,
		"sensorActive":      s.SensorActive,
		"heartbeatAt":       s.HeartbeatAt,
		"builtAt":           s.BuiltAt,
		"quotaRemaining":    s.QuotaRemaining,
	}

	if s.Delta != nil {
		m["delta"] = *s.Delta
	}

	return m
}
