package repository

import (
	"context"
	"fmt"
	"machine-reminder/internal/contract"
	"machine-reminder/internal/model"
	"machine-reminder/pkg/utils"
	"time"
)

type catalogReader struct {
	machines  MachineRepository
	templates ControlFormTemplateRepository
}

// NewCatalogReader exposes the machine and template repositories as the
// generator's catalog port.
func NewCatalogReader(machines MachineRepository, templates ControlFormTemplateRepository) contract.CatalogReader {
	return &catalogReader{machines: machines, templates: templates}
}

func (c *catalogReader) ListActiveMachines(ctx context.Context) ([]model.Machine, error) {
	return c.machines.ListActive(ctx)
}

func (c *catalogReader) ListActiveTemplates(ctx context.Context) ([]model.ControlFormTemplate, error) {
	return c.templates.ListActive(ctx)
}

const defaultInsertBatchSize = 100

type reminderStore struct {
	reminders ReminderTaskRepository
	uow       UnitOfWork
	batchSize int
}

// NewReminderStore exposes the reminder repository as the generator's store
// port. InsertReminders writes the whole batch in one transaction.
func NewReminderStore(reminders ReminderTaskRepository, uow UnitOfWork, batchSize int) contract.ReminderStore {
	if batchSize <= 0 {
		batchSize = defaultInsertBatchSize
	}
	return &reminderStore{reminders: reminders, uow: uow, batchSize: batchSize}
}

func (s *reminderStore) FindLatestReminder(ctx context.Context, machineID, templateID uint) (*model.ReminderTask, error) {
	return s.reminders.FindLatest(ctx, machineID, templateID)
}

func (s *reminderStore) ExistsReminderOnDate(ctx context.Context, machineID, templateID uint, day time.Time) (bool, error) {
	return s.reminders.ExistsOnDate(ctx, machineID, templateID, day)
}

func (s *reminderStore) InsertReminders(ctx context.Context, reminders []model.ReminderTask) error {
	if len(reminders) == 0 {
		return nil
	}
	return s.uow.Run(ctx, func(opts ...utils.DBOption) error {
		if err := s.reminders.CreateBatch(ctx, reminders, s.batchSize, opts...); err != nil {
			return fmt.Errorf("failed to insert %d reminders: %w", len(reminders), err)
		}
		return nil
	})
}
