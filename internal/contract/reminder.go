package contract

import (
	"context"
	"machine-reminder/internal/model"
	"time"
)

// CatalogReader is the snapshot read side of the machine registry and the
// control form template catalog.
type CatalogReader interface {
	ListActiveMachines(ctx context.Context) ([]model.Machine, error)
	ListActiveTemplates(ctx context.Context) ([]model.ControlFormTemplate, error)
}

// ReminderReader looks up existing reminders of one (machine, template) pair.
type ReminderReader interface {
	// FindLatestReminder returns the reminder with the greatest due date, or nil when the pair has none.
	FindLatestReminder(ctx context.Context, machineID, templateID uint) (*model.ReminderTask, error)
	// ExistsReminderOnDate reports whether a reminder is due on the calendar day of day, in day's location.
	ExistsReminderOnDate(ctx context.Context, machineID, templateID uint, day time.Time) (bool, error)
}

type ReminderWriter interface {
	InsertReminders(ctx context.Context, reminders []model.ReminderTask) error
}

type ReminderStore interface {
	ReminderReader
	ReminderWriter
}
