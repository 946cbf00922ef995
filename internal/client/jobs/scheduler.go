package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
)

// Handler executes one attempt of a job and reports the verdict.
// Handlers must be idempotent: the scheduler is at-least-once.
type Handler func(ctx context.Context, job *Job) Result

// Scheduler runs durable jobs from a Queue. One job executes at a
// time; ordering between distinct keys is not guaranteed beyond
// NotBefore.
type Scheduler struct {
	queue        *Queue
	handlers     map[Kind]Handler
	online       func() bool
	logger       *slog.Logger
	pollInterval time.Duration
	backoffBase  time.Duration
	backoffCap   time.Duration
}

// SchedulerOption configures the scheduler.
type SchedulerOption func(*Scheduler)

// WithOnline installs the network admission gate. While it reports
// false no job is attempted; this is a precondition, not a retry, so
// attempts are not consumed while offline.
func WithOnline(fn func() bool) SchedulerOption {
	return func(s *Scheduler) {
		s.online = fn
	}
}

// WithPollInterval overrides how often the scheduler looks for due jobs.
func WithPollInterval(d time.Duration) SchedulerOption {
	return func(s *Scheduler) {
		s.pollInterval = d
	}
}

// WithBackoff overrides the retry backoff base and cap.
func WithBackoff(base, cap time.Duration) SchedulerOption {
	return func(s *Scheduler) {
		s.backoffBase = base
		s.backoffCap = cap
	}
}

// NewScheduler creates a scheduler over the given queue.
func NewScheduler(queue *Queue, logger *slog.Logger, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		queue:        queue,
		handlers:     make(map[Kind]Handler),
		logger:       logger,
		pollInterval: 5 * time.Second,
		backoffBase:  30 * time.Second,
		backoffCap:   time.Hour,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Register installs the handler for a job kind.
func (s *Scheduler) Register(kind Kind, handler Handler) {
	s.handlers[kind] = handler
}

// EnqueueUnique stores a one-shot job under key, replacing any pending
// job with the same key. The write is durable before this returns, so
// the caller's context going away cannot lose the work.
func (s *Scheduler) EnqueueUnique(ctx context.Context, key string, kind Kind, payload int64) error {
	now := time.Now()
	job := &Job{
		ID:        uuid.NewString(),
		Key:       key,
		Kind:      kind,
		Payload:   payload,
		NotBefore: now,
		CreatedAt: now,
	}

	if err := s.queue.Put(job); err != nil {
		return fmt.Errorf("failed to enqueue %s job: %w", kind, err)
	}

	s.logger.Debug("Enqueued job", "key", key, "kind", kind, "payload", payload)
	return nil
}

// EnqueueUniquePeriodic stores a recurring job under name. Re-enqueue
// replaces the existing schedule rather than stacking instances. The
// first run is due immediately.
func (s *Scheduler) EnqueueUniquePeriodic(ctx context.Context, name string, kind Kind, interval time.Duration) error {
	now := time.Now()
	job := &Job{
		ID:        uuid.NewString(),
		Key:       name,
		Kind:      kind,
		Periodic:  true,
		Interval:  interval,
		NotBefore: now,
		CreatedAt: now,
	}

	if err := s.queue.Put(job); err != nil {
		return fmt.Errorf("failed to enqueue periodic %s job: %w", kind, err)
	}

	s.logger.Debug("Enqueued periodic job", "name", name, "kind", kind, "interval", interval)
	return nil
}

// Run polls for due jobs until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("Job scheduler started", "poll_interval", s.pollInterval)

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Job scheduler stopped")
			return nil
		case <-ticker.C:
			if err := s.RunDue(ctx); err != nil {
				s.logger.Error("Job pass failed", "error", err)
			}
		}
	}
}

// RunDue executes every job that is due right now. Exposed so callers
// (and tests) can drive the scheduler without the polling loop.
func (s *Scheduler) RunDue(ctx context.Context) error {
	// Admission gate: while offline nothing runs and nothing counts
	// as an attempt.
	if s.online != nil && !s.online() {
		s.logger.Debug("Offline, deferring due jobs")
		return nil
	}

	due, err := s.queue.Due(time.Now())
	if err != nil {
		return fmt.Errorf("failed to load due jobs: %w", err)
	}

	for _, job := range due {
		if ctx.Err() != nil {
			return nil
		}
		s.runJob(ctx, job)
	}

	return nil
}

// runJob executes one attempt and applies the verdict. Bookkeeping
// writes go through the IfCurrent queue operations so an enqueue that
// replaced this job mid-run always wins.
func (s *Scheduler) runJob(ctx context.Context, job *Job) {
	handler, ok := s.handlers[job.Kind]
	if !ok {
		s.logger.Error("No handler for job kind, discarding", "kind", job.Kind, "key", job.Key)
		if err := s.queue.DeleteIfCurrent(job); err != nil {
			s.logger.Error("Failed to discard job", "key", job.Key, "error", err)
		}
		return
	}

	job.Attempts++
	verdict := handler(ctx, job)

	s.logger.Debug("Job attempt finished",
		"key", job.Key,
		"kind", job.Kind,
		"attempt", job.Attempts,
		"verdict", verdict)

	var err error
	switch verdict {
	case Done:
		if job.Periodic {
			job.Attempts = 0
			job.NotBefore = time.Now().Add(job.Interval)
			err = s.queue.UpdateIfCurrent(job)
		} else {
			err = s.queue.DeleteIfCurrent(job)
		}
	case Retry:
		job.NotBefore = time.Now().Add(s.backoffFor(job.Attempts))
		err = s.queue.UpdateIfCurrent(job)
	case Fail:
		s.logger.Error("Job failed permanently",
			"key", job.Key,
			"kind", job.Kind,
			"attempts", job.Attempts)
		err = s.queue.DeleteIfCurrent(job)
	}

	if err != nil {
		s.logger.Error("Failed to record job verdict", "key", job.Key, "error", err)
	}
}

// backoffFor computes the delay before the next attempt: exponential
// from the base with jitter, capped.
func (s *Scheduler) backoffFor(attempts int) time.Duration {
	backoff := retry.WithCappedDuration(s.backoffCap,
		retry.WithJitterPercent(10, retry.NewExponential(s.backoffBase)))

	var delay time.Duration
	for i := 0; i < attempts; i++ {
		next, stop := backoff.Next()
		if stop {
			break
		}
		delay = next
	}

	return delay
}
