package service

import (
	"context"
	"fmt"
	"machine-reminder/internal/contract"
	"machine-reminder/internal/dto"
	"machine-reminder/internal/model"
	"machine-reminder/internal/reminder"
	"machine-reminder/pkg/logger"

	"github.com/google/uuid"
)

type CycleOptions struct {
	// DryRun plans the batch and reports it without writing.
	DryRun bool
}

type ReminderGenerator interface {
	RunCycle(ctx context.Context, opts CycleOptions) (dto.CycleSummary, error)
}

type reminderGenerator struct {
	log     *logger.Logger
	clock   Clock
	planner *reminder.Planner
	catalog contract.CatalogReader
	store   contract.ReminderStore
}

func NewReminderGenerator(
	log *logger.Logger,
	clock Clock,
	planner *reminder.Planner,
	catalog contract.CatalogReader,
	store contract.ReminderStore,
) ReminderGenerator {
	return &reminderGenerator{
		log:     log,
		clock:   clock,
		planner: planner,
		catalog: catalog,
		store:   store,
	}
}

// RunCycle takes one catalog snapshot, plans every applicable pair and writes
// the resulting batch at once. The summary is filled as far as the cycle got,
// also when an error is returned.
func (g *reminderGenerator) RunCycle(ctx context.Context, opts CycleOptions) (summary dto.CycleSummary, err error) {
	now := g.clock.Now()
	summary = dto.CycleSummary{
		CycleID:   uuid.NewString(),
		StartedAt: now,
		DryRun:    opts.DryRun,
	}
	defer func() {
		summary.FinishedAt = g.clock.Now()
		if err != nil {
			summary.Error = err.Error()
		}
	}()

	log := g.log.With(logger.StringField("cycle_id", summary.CycleID))
	ctx = logger.NewContext(ctx, log)

	machines, err := g.catalog.ListActiveMachines(ctx)
	if err != nil {
		return summary, fmt.Errorf("failed to list active machines: %w", err)
	}
	summary.MachineCount = len(machines)

	templates, err := g.catalog.ListActiveTemplates(ctx)
	if err != nil {
		return summary, fmt.Errorf("failed to list active templates: %w", err)
	}
	summary.TemplateCount = len(templates)

	log.InfoContext(ctx, "Reminder cycle started",
		logger.IntField("machine_count", summary.MachineCount),
		logger.IntField("template_count", summary.TemplateCount),
		logger.BoolField("dry_run", opts.DryRun),
	)

	var batch []model.ReminderTask
	for _, machine := range machines {
		if !machine.IsActive() {
			continue
		}
		for _, tmpl := range reminder.Applicable(machine, templates) {
			summary.PairCount++

			task, err := g.planner.Plan(ctx, machine, tmpl, g.store, now)
			if err != nil {
				return summary, err
			}
			if task == nil {
				log.DebugContext(ctx, "No reminder needed",
					logger.UintField("machine_id", machine.ID),
					logger.UintField("template_id", tmpl.ID),
				)
				continue
			}
			batch = append(batch, *task)
		}
	}
	summary.Planned = len(batch)

	if opts.DryRun {
		for _, task := range batch {
			log.InfoContext(ctx, "Planned reminder",
				logger.UintField("machine_id", task.MachineID),
				logger.UintField("template_id", task.ControlFormTemplateID),
				logger.TimeField("due_date", task.DueDate),
				logger.StringField("title", task.Title),
			)
		}
		summary.Reminders = batch
		return summary, nil
	}

	if len(batch) == 0 {
		log.InfoContext(ctx, "No reminders to create", logger.IntField("pair_count", summary.PairCount))
		return summary, nil
	}

	if err := g.store.InsertReminders(ctx, batch); err != nil {
		return summary, fmt.Errorf("failed to persist reminder batch: %w", err)
	}
	summary.Persisted = len(batch)

	log.InfoContext(ctx, "Reminder cycle completed",
		logger.IntField("pair_count", summary.PairCount),
		logger.IntField("planned_count", summary.Planned),
		logger.DurationField("took", g.clock.Now().Sub(now)),
	)
	return summary, nil
}
