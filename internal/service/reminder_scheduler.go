package service

import (
	"context"
	"errors"
	"fmt"
	"machine-reminder/config"
	"machine-reminder/internal/dto"
	"machine-reminder/pkg/logger"
	"machine-reminder/pkg/utils"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

var ErrCycleInProgress = errors.New("reminder cycle already in progress")

type SchedulerState string

const (
	StateStarting  SchedulerState = "Starting"
	StateWarmingUp SchedulerState = "WarmingUp"
	StateRunning   SchedulerState = "Running"
	StateStopped   SchedulerState = "Stopped"
)

type ReminderScheduler interface {
	// Run blocks until ctx is cancelled.
	Run(ctx context.Context) error
	// Trigger runs one cycle now, or returns ErrCycleInProgress.
	Trigger(ctx context.Context, opts CycleOptions) (dto.CycleSummary, error)
	State() SchedulerState
	Status() dto.SchedulerStatus
}

type reminderScheduler struct {
	log       *logger.Logger
	clock     Clock
	schedule  cron.Schedule
	warmUp    time.Duration
	generator ReminderGenerator

	cycleMu sync.Mutex

	mu        sync.RWMutex
	state     SchedulerState
	lastCycle *dto.CycleSummary
}

// NewCycleSchedule returns the configured cron expression, or a fixed delay
// of scheduler.interval when none is set.
func NewCycleSchedule(cfg config.Scheduler) (cron.Schedule, error) {
	if cfg.CronExpression != "" {
		schedule, err := cron.ParseStandard(cfg.CronExpression)
		if err != nil {
			return nil, fmt.Errorf("failed to parse scheduler.cron_expression %q: %w", cfg.CronExpression, err)
		}
		return schedule, nil
	}
	return cron.Every(cfg.Interval), nil
}

func NewReminderScheduler(
	log *logger.Logger,
	clock Clock,
	schedule cron.Schedule,
	warmUp time.Duration,
	generator ReminderGenerator,
) ReminderScheduler {
	return &reminderScheduler{
		log:       log,
		clock:     clock,
		schedule:  schedule,
		warmUp:    warmUp,
		generator: generator,
		state:     StateStarting,
	}
}

func (s *reminderScheduler) Run(ctx context.Context) error {
	defer s.setState(StateStopped)

	s.setState(StateWarmingUp)
	s.log.InfoContext(ctx, "Reminder scheduler warming up", logger.DurationField("warm_up", s.warmUp))
	if !s.wait(ctx, s.warmUp) {
		s.log.InfoContext(ctx, "Reminder scheduler stopped during warm up")
		return nil
	}

	s.setState(StateRunning)
	for utils.ShouldContinue(ctx, s.log) {
		s.runScheduledCycle(ctx)

		now := s.clock.Now()
		next := s.schedule.Next(now)
		s.log.DebugContext(ctx, "Waiting for next reminder cycle", logger.TimeField("next_run_at", next))
		if !s.wait(ctx, next.Sub(now)) {
			break
		}
	}

	s.log.InfoContext(ctx, "Reminder scheduler stopped")
	return nil
}

func (s *reminderScheduler) Trigger(ctx context.Context, opts CycleOptions) (dto.CycleSummary, error) {
	if !s.cycleMu.TryLock() {
		return dto.CycleSummary{}, ErrCycleInProgress
	}
	defer s.cycleMu.Unlock()

	s.log.InfoContext(ctx, "Reminder cycle triggered manually", logger.BoolField("dry_run", opts.DryRun))
	summary, err := s.runCycle(ctx, opts)
	if !opts.DryRun {
		s.recordCycle(summary)
	}
	return summary, err
}

func (s *reminderScheduler) State() SchedulerState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *reminderScheduler) Status() dto.SchedulerStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := dto.SchedulerStatus{State: string(s.state)}
	if s.lastCycle != nil {
		last := *s.lastCycle
		status.LastCycle = &last
	}
	return status
}

// runScheduledCycle waits for a manual cycle to finish instead of skipping
// the slot.
func (s *reminderScheduler) runScheduledCycle(ctx context.Context) {
	s.cycleMu.Lock()
	defer s.cycleMu.Unlock()

	summary, _ := s.runCycle(ctx, CycleOptions{})
	next := s.schedule.Next(s.clock.Now())
	summary.NextRunAt = &next
	s.recordCycle(summary)
}

// runCycle isolates one cycle: a started cycle is not cut short by
// cancellation of ctx, and errors or panics end the cycle only.
func (s *reminderScheduler) runCycle(ctx context.Context, opts CycleOptions) (dto.CycleSummary, error) {
	cycleCtx := context.WithoutCancel(ctx)
	startedAt := s.clock.Now()

	var summary dto.CycleSummary
	err := utils.SafeRun(func() error {
		var err error
		summary, err = s.generator.RunCycle(cycleCtx, opts)
		return err
	})
	if err != nil {
		if summary.StartedAt.IsZero() {
			summary.StartedAt = startedAt
			summary.FinishedAt = s.clock.Now()
		}
		summary.Error = err.Error()
		s.log.ErrorContext(ctx, "Reminder cycle failed",
			logger.ErrorField(err),
			logger.StringField("cycle_id", summary.CycleID),
			logger.IntField("machine_count", summary.MachineCount),
			logger.IntField("template_count", summary.TemplateCount),
			logger.IntField("planned_count", summary.Planned),
			logger.DurationField("took", s.clock.Now().Sub(startedAt)),
		)
		return summary, err
	}
	return summary, nil
}

func (s *reminderScheduler) wait(ctx context.Context, d time.Duration) bool {
	if ctx.Err() != nil {
		return false
	}
	if d <= 0 {
		return true
	}
	select {
	case <-ctx.Done():
		return false
	case <-s.clock.After(d):
		return true
	}
}

func (s *reminderScheduler) setState(state SchedulerState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

func (s *reminderScheduler) recordCycle(summary dto.CycleSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastCycle = &summary
}
