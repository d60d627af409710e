package dto

import (
	"machine-reminder/internal/model"
	"time"
)

// CycleSummary reports the outcome of one generation cycle.
type CycleSummary struct {
	CycleID       string     `json:"cycle_id"`
	StartedAt     time.Time  `json:"started_at"`
	FinishedAt    time.Time  `json:"finished_at"`
	MachineCount  int        `json:"machine_count"`
	TemplateCount int        `json:"template_count"`
	PairCount     int        `json:"pair_count"`
	Planned       int        `json:"planned"`
	Persisted     int        `json:"persisted"`
	DryRun        bool       `json:"dry_run,omitempty"`
	Error         string     `json:"error,omitempty"`
	NextRunAt     *time.Time `json:"next_run_at,omitempty"`

	// Reminders lists the planned rows of a dry run.
	Reminders []model.ReminderTask `json:"reminders,omitempty"`
}

type SchedulerStatus struct {
	State     string        `json:"state"`
	LastCycle *CycleSummary `json:"last_cycle,omitempty"`
}
