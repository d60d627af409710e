package service

import (
	"context"
	"errors"
	"machine-reminder/internal/model"
	"machine-reminder/internal/reminder"
	"sync"
	"time"
)

// fakeClock advances by the requested duration on every After call, so
// waits complete immediately. The cancelOn-th After call cancels the loop
// and returns a channel that never fires.
type fakeClock struct {
	mu       sync.Mutex
	now      time.Time
	waits    []time.Duration
	cancelOn int
	cancel   context.CancelFunc
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.waits = append(c.waits, d)
	if c.cancelOn > 0 && len(c.waits) >= c.cancelOn {
		if c.cancel != nil {
			c.cancel()
		}
		return nil
	}

	c.now = c.now.Add(d)
	ch := make(chan time.Time, 1)
	ch <- c.now
	return ch
}

func (c *fakeClock) Waits() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.waits...)
}

type fakeCatalog struct {
	machines     []model.Machine
	templates    []model.ControlFormTemplate
	machinesErr  error
	templatesErr error
}

func (c *fakeCatalog) ListActiveMachines(context.Context) ([]model.Machine, error) {
	return c.machines, c.machinesErr
}

func (c *fakeCatalog) ListActiveTemplates(context.Context) ([]model.ControlFormTemplate, error) {
	return c.templates, c.templatesErr
}

var errInsertFailed = errors.New("connection reset")

// fakeStore keeps reminders in memory. Insert calls listed in failOn return
// errInsertFailed and store nothing.
type fakeStore struct {
	mu          sync.Mutex
	reminders   []model.ReminderTask
	insertCalls int
	failOn      map[int]bool
}

func (s *fakeStore) history() *reminder.MemoryHistory {
	s.mu.Lock()
	defer s.mu.Unlock()
	return reminder.NewMemoryHistory(s.reminders)
}

func (s *fakeStore) FindLatestReminder(ctx context.Context, machineID, templateID uint) (*model.ReminderTask, error) {
	return s.history().FindLatestReminder(ctx, machineID, templateID)
}

func (s *fakeStore) ExistsReminderOnDate(ctx context.Context, machineID, templateID uint, day time.Time) (bool, error) {
	return s.history().ExistsReminderOnDate(ctx, machineID, templateID, day)
}

func (s *fakeStore) InsertReminders(_ context.Context, reminders []model.ReminderTask) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.insertCalls++
	if s.failOn[s.insertCalls] {
		return errInsertFailed
	}
	s.reminders = append(s.reminders, reminders...)
	return nil
}

func (s *fakeStore) Stored() []model.ReminderTask {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.ReminderTask(nil), s.reminders...)
}

func (s *fakeStore) InsertCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertCalls
}

var (
	testStart   = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)
	forklift    = model.Machine{ID: 1, Name: "FL-01", MachineType: "Forklift", Status: model.MachineStatusActive}
	crane       = model.Machine{ID: 2, Name: "CR-07", MachineType: "Crane", Status: model.MachineStatusActive}
	dailyCheck  = model.ControlFormTemplate{ID: 10, Name: "Günlük Kontrol", MachineType: "forklift", IsActive: true, Period: "Daily"}
	monthlyCare = model.ControlFormTemplate{ID: 11, Name: "Aylık Bakım", MachineType: "Forklift", IsActive: true, Period: "Monthly"}
)

func utcAt(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
}

func newTestPlanner() *reminder.Planner {
	return reminder.NewPlanner(reminder.NewCalendar(reminder.DefaultAnchorHour, time.UTC))
}
