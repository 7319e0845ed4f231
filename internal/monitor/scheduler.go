package monitor

import (
	"context"
	"errors"
	"time"

	"github.com/aleister1102/companywatch/internal/models"
	"github.com/rs/zerolog"
)

// CycleRunner runs one poll cycle
type CycleRunner interface {
	RunCycle(ctx context.Context) (CycleResult, error)
}

// HeartbeatEmitter receives the throttled "no changes" notice
type HeartbeatEmitter interface {
	Heartbeat(ctx context.Context, hb models.Heartbeat)
}

// Clock returns the current time
type Clock func() time.Time

// Sleeper blocks for d or until ctx is done
type Sleeper func(ctx context.Context, d time.Duration) error

// SleepContext is the default Sleeper
func SleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Scheduler runs cycles back to back with a fixed sleep in between. Cycle
// errors are logged and never stop the loop.
type Scheduler struct {
	entityID     string
	runner       CycleRunner
	heartbeats   HeartbeatEmitter
	pollInterval time.Duration
	tracker      *CycleTracker
	clock        Clock
	sleep        Sleeper
	logger       zerolog.Logger
}

// SchedulerOption customises a Scheduler
type SchedulerOption func(*Scheduler)

// WithClock replaces time.Now
func WithClock(clock Clock) SchedulerOption {
	return func(s *Scheduler) { s.clock = clock }
}

// WithSleeper replaces SleepContext
func WithSleeper(sleep Sleeper) SchedulerOption {
	return func(s *Scheduler) { s.sleep = sleep }
}

// NewScheduler creates a scheduler. The heartbeat quiet window starts at construction time.
func NewScheduler(entityID string, runner CycleRunner, heartbeats HeartbeatEmitter, pollInterval, noChangeInterval time.Duration, logger zerolog.Logger, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		entityID:     entityID,
		runner:       runner,
		heartbeats:   heartbeats,
		pollInterval: pollInterval,
		clock:        time.Now,
		sleep:        SleepContext,
		logger:       logger.With().Str("component", "Scheduler").Str("entity_id", entityID).Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.tracker = NewCycleTracker(noChangeInterval, s.clock())
	return s
}

// Run loops until ctx is canceled. The first cycle starts immediately.
// It returns nil on cancellation.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info().
		Dur("poll_interval", s.pollInterval).
		Dur("no_change_interval", s.tracker.quietInterval).
		Msg("Starting monitor loop")

	for {
		s.Tick(ctx)

		if err := s.sleep(ctx, s.pollInterval); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				stats := s.Stats()
				s.logger.Info().
					Int("cycles", stats.Cycles).
					Int("changed_cycles", stats.ChangedCycles).
					Int("failed_cycles", stats.FailedCycles).
					Int("heartbeats", stats.Heartbeats).
					Msg("Monitor loop stopped")
				return nil
			}
			return err
		}
	}
}

// Tick runs one iteration: a cycle plus the heartbeat decision
func (s *Scheduler) Tick(ctx context.Context) {
	result, err := s.runner.RunCycle(ctx)
	if err != nil {
		s.logCycleError(result.CycleID, err)
	}

	now := s.clock()
	emit, quiet := s.tracker.RecordCycle(now, result.CycleID, result.AnyChanges, err != nil)
	if emit {
		s.heartbeats.Heartbeat(ctx, models.Heartbeat{EntityID: s.entityID, Timestamp: now, Quiet: quiet})
	}
}

// RunOnce runs a single cycle without heartbeat handling, for one-shot mode
func (s *Scheduler) RunOnce(ctx context.Context) (CycleResult, error) {
	result, err := s.runner.RunCycle(ctx)
	s.tracker.RecordCycle(s.clock(), result.CycleID, result.AnyChanges, err != nil)
	if err != nil {
		s.logCycleError(result.CycleID, err)
		return result, err
	}
	if !result.AnyChanges {
		s.logger.Info().Str("cycle_id", result.CycleID).Msg("No changes detected")
	}
	return result, nil
}

// Stats returns the loop counters
func (s *Scheduler) Stats() Stats {
	return s.tracker.Stats()
}

func (s *Scheduler) logCycleError(cycleID string, err error) {
	event := s.logger.Error()
	if models.ErrorKind(err) == models.ErrorKindCanceled {
		event = s.logger.Warn()
	}
	event.Err(err).
		Str("cycle_id", cycleID).
		Str("error_kind", models.ErrorKind(err)).
		Msg("Error during check")
}
