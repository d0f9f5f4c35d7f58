package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs an export job on a cron schedule (e.g. daily at 3 AM).
// Ticks that fire while a previous run is still in progress are skipped
// and counted.
type Scheduler struct {
	schedule string
	job      func(context.Context) error
	cron     *cron.Cron
	logger   *slog.Logger

	mu      sync.Mutex
	running bool

	// jobMu serializes export runs; a tick that cannot take it is
	// skipped rather than queued.
	jobMu   sync.Mutex
	skipped atomic.Int64
}

// NewScheduler creates a scheduler for the given cron expression and
// job. The expression is validated when Start is called.
func NewScheduler(schedule string, job func(context.Context) error) *Scheduler {
	return &Scheduler{
		schedule: schedule,
		job:      job,
		cron:     cron.New(),
		logger:   slog.Default().With("component", "schedule.cron"),
	}
}

// Start begins scheduled execution.
//
// Common cron expressions:
//   - "0 3 * * *"    - Daily at 3 AM
//   - "*/15 * * * *" - Every 15 minutes
//   - "0 0 * * 0"    - Weekly on Sunday at midnight
//
// If the expression is empty, Start does nothing. The scheduler stops
// when the context is cancelled or Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler already running")
	}

	if s.schedule == "" {
		s.logger.Info("cron schedule not configured, skipping scheduler")
		return nil
	}

	// Validate cron expression
	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.schedule, err)
	}

	if _, err := s.cron.AddFunc(s.schedule, func() {
		s.runJob(ctx)
	}); err != nil {
		return fmt.Errorf("failed to schedule export: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("export scheduler started", "schedule", s.schedule)

	// Wait for context cancellation in background
	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// runJob executes one scheduled export. If the previous run still holds
// the job lock, the tick is skipped.
func (s *Scheduler) runJob(ctx context.Context) {
	if !s.jobMu.TryLock() {
		s.skipped.Add(1)
		s.logger.Warn("previous export still running, skipping this tick")
		return
	}
	defer s.jobMu.Unlock()

	s.logger.Info("starting scheduled export")

	start := time.Now()
	if err := s.job(ctx); err != nil {
		s.logger.Error("scheduled export failed",
			"error", err,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return
	}

	s.logger.Info("scheduled export completed",
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

// Stop stops the scheduler and waits for any running job to complete.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil && s.running {
		ctx := s.cron.Stop()
		<-ctx.Done() // Wait for running jobs to finish
		s.running = false
		s.logger.Info("export scheduler stopped")
	}
}

// IsRunning returns true if the scheduler is running.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}

// SkippedRuns returns how many ticks were skipped because an export was
// still in progress.
func (s *Scheduler) SkippedRuns() int64 {
	return s.skipped.Load()
}

// NextRun returns the next scheduled export time.
func (s *Scheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron == nil {
		return nil
	}

	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}

	next := entries[0].Next
	return &next
}
