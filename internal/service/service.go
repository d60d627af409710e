package service

import (
	"fmt"
	"machine-reminder/config"
	"machine-reminder/internal/reminder"
	"machine-reminder/internal/repository"
	"machine-reminder/pkg/logger"
)

type Service struct {
	ReminderGenerator ReminderGenerator
	ReminderScheduler ReminderScheduler
	ReminderHistory   ReminderHistoryService
}

func NewService(
	cfg *config.Config,
	log *logger.Logger,
	repo *repository.Repository,
	clock Clock,
) (*Service, error) {
	loc, err := cfg.Reminder.Location()
	if err != nil {
		return nil, err
	}
	schedule, err := NewCycleSchedule(cfg.Scheduler)
	if err != nil {
		return nil, fmt.Errorf("failed to build cycle schedule: %w", err)
	}

	planner := reminder.NewPlanner(reminder.NewCalendar(cfg.Reminder.AnchorHour, loc))
	catalog := repository.NewCatalogReader(repo.MachineRepo, repo.ControlFormTemplateRepo)
	store := repository.NewReminderStore(repo.ReminderTaskRepo, repo.UnitOfWork, cfg.Reminder.InsertBatchSize)

	generator := NewReminderGenerator(log, clock, planner, catalog, store)
	scheduler := NewReminderScheduler(log, clock, schedule, cfg.Scheduler.WarmUp, generator)

	return &Service{
		ReminderGenerator: generator,
		ReminderScheduler: scheduler,
		ReminderHistory:   NewReminderHistoryService(repo.ReminderTaskRepo),
	}, nil
}
