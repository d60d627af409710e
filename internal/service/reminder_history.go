package service

import (
	"context"
	"fmt"
	"machine-reminder/internal/model"
	"machine-reminder/internal/repository"
	"machine-reminder/pkg/utils"
)

const maxHistoryLimit = 200

type ReminderHistoryService interface {
	// ListByPair returns the newest reminders of a pair first.
	ListByPair(ctx context.Context, machineID, templateID uint, limit int) ([]model.ReminderTask, error)
}

type reminderHistoryService struct {
	reminderRepo repository.ReminderTaskRepository
}

func NewReminderHistoryService(reminderRepo repository.ReminderTaskRepository) ReminderHistoryService {
	return &reminderHistoryService{reminderRepo: reminderRepo}
}

func (s *reminderHistoryService) ListByPair(ctx context.Context, machineID, templateID uint, limit int) ([]model.ReminderTask, error) {
	if limit <= 0 || limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	tasks, err := s.reminderRepo.ListByPair(ctx, machineID, templateID, utils.WithLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders for machine %d template %d: %w", machineID, templateID, err)
	}
	return tasks, nil
}
