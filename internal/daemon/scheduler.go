// internal/daemon/scheduler.go
package daemon

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Scheduler wraps gocron for the daemon's periodic jobs. Tasks must be
// cheap and non-blocking: the sync task only enqueues a trigger onto the
// controller loop, it never runs a cycle itself.
type Scheduler struct {
	scheduler gocron.Scheduler
}

// NewScheduler creates a scheduler instance.
func NewScheduler() (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("daemon: create scheduler: %w", err)
	}
	return &Scheduler{scheduler: s}, nil
}

// SchedulePeriodic registers a named fixed-interval job.
func (s *Scheduler) SchedulePeriodic(name string, interval time.Duration, task func()) error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task),
		gocron.WithName(name),
	)
	if err != nil {
		return fmt.Errorf("daemon: schedule %s: %w", name, err)
	}
	return nil
}

// Start begins executing scheduled jobs.
func (s *Scheduler) Start() {
	slog.Info("starting scheduler")
	s.scheduler.Start()
}

// Stop gracefully shuts the scheduler down.
func (s *Scheduler) Stop() error {
	slog.Info("stopping scheduler")
	return s.scheduler.Shutdown()
}
