// internal/config/config.go
package config

import "time"

type Config struct {
	Companion CompanionConfig `yaml:"companion"`
}

type CompanionConfig struct {
	Store    StoreConfig    `yaml:"store"`
	Link     LinkConfig     `yaml:"link"`
	Sync     SyncConfig     `yaml:"sync"`
	Settings SettingsConfig `yaml:"settings"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// ---- SAMPLE STORE ----

type StoreConfig struct {
	// Path is the SQLite database file. ":memory:" is accepted.
	Path string `yaml:"path"`
}

// ---- COMPANION LINK ----

type LinkConfig struct {
	URL           string `yaml:"url"`
	SubjectPrefix string `yaml:"subject_prefix"`

	// PresenceTTLMs is how long after the last companion heartbeat the
	// link still counts as reachable.
	PresenceTTLMs int `yaml:"presence_ttl_ms"`

	// DailyPriorityBudget is the priority-channel quota per calendar day.
	DailyPriorityBudget int `yaml:"daily_priority_budget"`
}

// ---- SYNC ----

type SyncConfig struct {
	IntervalMs            int `yaml:"interval_ms"`
	PriorityMinIntervalMs int `yaml:"priority_min_interval_ms"`
}

// ---- APPLICATION SETTINGS ----

type SettingsConfig struct {
	UnitPrimary bool `yaml:"unit_primary"`

	UrgentLow  float64 `yaml:"urgent_low"`
	Low        float64 `yaml:"low"`
	High       float64 `yaml:"high"`
	UrgentHigh float64 `yaml:"urgent_high"`

	DeviceDescription string    `yaml:"device_description"`
	SensorStartedAt   time.Time `yaml:"sensor_started_at"`
	MaxAgeMinutes     float64   `yaml:"max_age_minutes"`

	FollowerMode bool `yaml:"follower_mode"`
	SensorActive bool `yaml:"sensor_active"`
}

// ---- METRICS ----

type MetricsConfig struct {
	// ListenAddr enables the Prometheus endpoint when non-empty.
	ListenAddr string `yaml:"listen_addr"`
}
