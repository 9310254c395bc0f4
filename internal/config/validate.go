// internal/config/validate.go
package config

import "fmt"

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	c := cfg.Companion

	// ------------------------------------------------------------
	// REQUIRED FIELDS
	// ------------------------------------------------------------

	if c.Store.Path == "" {
		return fmt.Errorf("store.path is required")
	}
	if c.Link.URL == "" {
		return fmt.Errorf("link.url is required")
	}

	// ------------------------------------------------------------
	// NON-NEGATIVE DURATIONS AND BUDGETS
	// ------------------------------------------------------------

	if c.Sync.IntervalMs < 0 {
		return fmt.Errorf("sync.interval_ms must be >= 0")
	}
	if c.Sync.PriorityMinIntervalMs < 0 {
		return fmt.Errorf("sync.priority_min_interval_ms must be >= 0")
	}
	if c.Link.PresenceTTLMs < 0 {
		return fmt.Errorf("link.presence_ttl_ms must be >= 0")
	}
	if c.Link.DailyPriorityBudget < 0 {
		return fmt.Errorf("link.daily_priority_budget must be >= 0")
	}

	// ------------------------------------------------------------
	// THRESHOLD ORDERING
	// ------------------------------------------------------------

	// Thresholds are opt-in; an all-zero block means "not configured".
	s := c.Settings
	if s.UrgentLow != 0 || s.Low != 0 || s.High != 0 || s.UrgentHigh != 0 {
		if !(s.UrgentLow < s.Low && s.Low < s.High && s.High < s.UrgentHigh) {
			return fmt.Errorf(
				"settings thresholds must satisfy urgent_low < low < high < urgent_high (got %v < %v < %v < %v)",
				s.UrgentLow, s.Low, s.High, s.UrgentHigh,
			)
		}
	}

	if s.MaxAgeMinutes < 0 {
		return fmt.Errorf("settings.max_age_minutes must be >= 0")
	}

	return nil
}
