// internal/config/validate_test.go
package config

import "testing"

func valid() *Config {
	return &Config{
		Companion: CompanionConfig{
			Store: StoreConfig{Path: "samples.db"},
			Link:  LinkConfig{URL: "nats://127.0.0.1:4222"},
			Settings: SettingsConfig{
				UrgentLow:  55,
				Low:        70,
				High:       180,
				UrgentHigh: 250,
			},
		},
	}
}

func TestValidate_OK(t *testing.T) {
	if err := Validate(valid()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_MissingStorePath(t *testing.T) {
	cfg := valid()
	cfg.Companion.Store.Path = ""
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for missing store.path")
	}
}

func TestValidate_MissingLinkURL(t *testing.T) {
	cfg := valid()
	cfg.Companion.Link.URL = ""
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for missing link.url")
	}
}

func TestValidate_ThresholdOrdering(t *testing.T) {
	cfg := valid()
	cfg.Companion.Settings.Low = 200 // low > high
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected threshold ordering error")
	}
}

func TestValidate_ThresholdsOptional(t *testing.T) {
	cfg := valid()
	cfg.Companion.Settings = SettingsConfig{}
	if err := Validate(cfg); err != nil {
		t.Fatalf("all-zero thresholds must be accepted: %v", err)
	}
}

func TestValidate_NegativeInterval(t *testing.T) {
	cfg := valid()
	cfg.Companion.Sync.IntervalMs = -1
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for negative interval")
	}
}

func TestNormalize_Defaults(t *testing.T) {
	cfg := valid()
	Normalize(cfg)

	c := cfg.Companion
	if c.Link.SubjectPrefix != DefaultSubjectPrefix {
		t.Fatalf("subject prefix default not applied: %q", c.Link.SubjectPrefix)
	}
	if c.Sync.IntervalMs != DefaultSyncIntervalMs {
		t.Fatalf("sync interval default not applied: %d", c.Sync.IntervalMs)
	}
	if c.Sync.PriorityMinIntervalMs != DefaultPriorityMinIntervalMs {
		t.Fatalf("priority min interval default not applied: %d", c.Sync.PriorityMinIntervalMs)
	}
	if c.Link.DailyPriorityBudget != DefaultDailyPriorityBudget {
		t.Fatalf("daily budget default not applied: %d", c.Link.DailyPriorityBudget)
	}
}

func TestNormalize_KeepsExplicitValues(t *testing.T) {
	cfg := valid()
	cfg.Companion.Sync.IntervalMs = 60_000
	cfg.Companion.Link.DailyPriorityBudget = 10
	Normalize(cfg)

	if cfg.Companion.Sync.IntervalMs != 60_000 {
		t.Fatalf("explicit interval overwritten")
	}
	if cfg.Companion.Link.DailyPriorityBudget != 10 {
		t.Fatalf("explicit budget overwritten")
	}
}
