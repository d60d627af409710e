package model

import "time"

type ReminderStatus string

const (
	ReminderStatusOpen ReminderStatus = "Open"
)

// ReminderTask is a due control-form inspection for one machine. DueDate is
// always normalized to the anchor hour, which makes the unique index on
// (machine_id, control_form_template_id, due_date) a per-day guard.
type ReminderTask struct {
	ID                    uint           `gorm:"primaryKey" json:"id"`
	Title                 string         `gorm:"type:varchar(500);not null" json:"title"`
	Description           string         `gorm:"type:text" json:"description"`
	MachineID             uint           `gorm:"not null;uniqueIndex:ux_reminder_tasks_pair_due,priority:1" json:"machine_id"`
	ControlFormTemplateID uint           `gorm:"not null;uniqueIndex:ux_reminder_tasks_pair_due,priority:2" json:"control_form_template_id"`
	DueDate               time.Time      `gorm:"not null;uniqueIndex:ux_reminder_tasks_pair_due,priority:3" json:"due_date"`
	Period                string         `gorm:"type:varchar(20)" json:"period"`
	PeriodDays            *int           `json:"period_days"`
	Status                ReminderStatus `gorm:"type:varchar(20);not null" json:"status"`
	CreatedAt             time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (ReminderTask) TableName() string {
	return "reminder_tasks"
}
