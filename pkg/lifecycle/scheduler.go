package lifecycle

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// SessionFunc receives the outcome of every scheduled session.
type SessionFunc func(session Session, err error)

// Scheduler repeats orchestrator sessions on a cron schedule.
//
// Common schedules:
//   - "@every 5s"    - every five seconds
//   - "*/5 * * * *"  - every five minutes
//   - "0 3 * * *"    - daily at 3 AM
type Scheduler struct {
	orchestrator *Orchestrator
	schedule     string
	onSession    SessionFunc

	cron    *cron.Cron
	mu      sync.Mutex
	logger  *slog.Logger
	running bool

	// stopCh is closed by Stop; watchDone is closed when the goroutine
	// watching ctx and stopCh has returned.
	stopCh    chan struct{}
	watchDone chan struct{}
}

// NewScheduler creates a scheduler for orchestrator. onSession may be nil.
func NewScheduler(orchestrator *Orchestrator, schedule string, onSession SessionFunc, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Scheduler{
		orchestrator: orchestrator,
		schedule:     schedule,
		onSession:    onSession,
		cron:         cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:       logger.With("component", "lifecycle.scheduler"),
	}
}

// Start validates the schedule and begins running sessions. The scheduler
// stops when ctx is cancelled or Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler already running")
	}

	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.schedule, err)
	}

	if _, err := s.cron.AddFunc(s.schedule, func() {
		s.runSession(ctx)
	}); err != nil {
		return fmt.Errorf("failed to schedule sessions: %w", err)
	}

	s.cron.Start()
	s.running = true
	s.stopCh = make(chan struct{})
	s.watchDone = make(chan struct{})

	s.logger.Info("session scheduler started", "schedule", s.schedule)

	go s.stopOnDone(ctx, s.stopCh, s.watchDone)

	return nil
}

// stopOnDone stops the scheduler when ctx ends and returns as soon as either
// ctx ends or Stop closes stopCh.
func (s *Scheduler) stopOnDone(ctx context.Context, stopCh <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	select {
	case <-ctx.Done():
		s.Stop()
	case <-stopCh:
	}
}

func (s *Scheduler) runSession(ctx context.Context) {
	session, err := s.orchestrator.RunSession(ctx)
	if err != nil {
		s.logger.Error("scheduled session failed", "session", session.ID, "error", err)
	} else {
		s.logger.Debug("scheduled session completed", "session", session.ID)
	}

	if s.onSession != nil {
		s.onSession(session, err)
	}
}

// Stop stops the scheduler and waits for a running session to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil && s.running {
		done := s.cron.Stop()
		<-done.Done()
		close(s.stopCh)
		s.running = false
		s.logger.Info("session scheduler stopped")
	}
}

// IsRunning returns true if the scheduler is running.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}

// NextRun returns the next scheduled session time, or nil before Start.
func (s *Scheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}

	next := entries[0].Next
	return &next
}
