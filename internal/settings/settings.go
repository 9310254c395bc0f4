// internal/settings/settings.go
package settings

import (
	"sync"

	"github.com/tamzrod/companion-sync/internal/config"
	"github.com/tamzrod/companion-sync/internal/snapshot"
)

// Store is the in-process settings provider. The snapshot builder reads
// it on every cycle; the host may swap the whole value at runtime.
// Settings persistence lives outside this module.
type Store struct {
	mu  sync.RWMutex
	cur snapshot.Settings
}

// NewStore creates a store with an initial settings value.
func NewStore(initial snapshot.Settings) *Store {
	return &Store{cur: initial}
}

// Current returns the current settings value.
func (s *Store) Current() snapshot.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// Update replaces the settings value wholesale. Partial updates are the
// caller's job: read, modify, write back.
func (s *Store) Update(next snapshot.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = next
}

// FromConfig maps the config block onto runtime settings.
func FromConfig(c config.SettingsConfig) snapshot.Settings {
	return snapshot.Settings{
		UnitIsPrimary:     c.UnitPrimary,
		UrgentLow:         c.UrgentLow,
		Low:               c.Low,
		High:              c.High,
		UrgentHigh:        c.UrgentHigh,
		DeviceDescription: c.DeviceDescription,
		SensorStartedAt:   c.SensorStartedAt,
		MaxAgeMinutes:     c.MaxAgeMinutes,
		FollowerMode:      c.FollowerMode,
		SensorActive:      c.SensorActive,
	}
}
