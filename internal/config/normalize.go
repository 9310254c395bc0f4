// internal/config/normalize.go
package config

// Default values applied by Normalize.
const (
	DefaultSubjectPrefix         = "companion"
	DefaultSyncIntervalMs        = 5 * 60 * 1000  // 5 minutes
	DefaultPriorityMinIntervalMs = 20 * 60 * 1000 // 20 minutes
	DefaultPresenceTTLMs         = 90 * 1000
	DefaultDailyPriorityBudget   = 50
)

// Normalize applies post-validation defaults.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	c := &cfg.Companion

	if c.Link.SubjectPrefix == "" {
		c.Link.SubjectPrefix = DefaultSubjectPrefix
	}
	if c.Link.PresenceTTLMs == 0 {
		c.Link.PresenceTTLMs = DefaultPresenceTTLMs
	}
	if c.Link.DailyPriorityBudget == 0 {
		c.Link.DailyPriorityBudget = DefaultDailyPriorityBudget
	}
	if c.Sync.IntervalMs == 0 {
		c.Sync.IntervalMs = DefaultSyncIntervalMs
	}
	if c.Sync.PriorityMinIntervalMs == 0 {
		c.Sync.PriorityMinIntervalMs = DefaultPriorityMinIntervalMs
	}
}
