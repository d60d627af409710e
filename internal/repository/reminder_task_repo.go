package repository

import (
	"context"
	"errors"
	"machine-reminder/internal/model"
	"machine-reminder/pkg/utils"
	"time"

	"gorm.io/gorm"
)

type ReminderTaskRepository interface {
	FindLatest(ctx context.Context, machineID, templateID uint, opts ...utils.DBOption) (*model.ReminderTask, error)
	ExistsOnDate(ctx context.Context, machineID, templateID uint, day time.Time, opts ...utils.DBOption) (bool, error)
	CreateBatch(ctx context.Context, reminders []model.ReminderTask, batchSize int, opts ...utils.DBOption) error
	ListByPair(ctx context.Context, machineID, templateID uint, opts ...utils.DBOption) ([]model.ReminderTask, error)
}

type reminderTaskRepository struct {
	db *gorm.DB
}

func NewReminderTaskRepository(db *gorm.DB) ReminderTaskRepository {
	return &reminderTaskRepository{db: db}
}

func (r *reminderTaskRepository) pair(ctx context.Context, machineID, templateID uint, opts ...utils.DBOption) *gorm.DB {
	return utils.ApplyOptions(r.db.WithContext(ctx), opts...).
		Model(&model.ReminderTask{}).
		Where("machine_id = ? AND control_form_template_id = ?", machineID, templateID)
}

// FindLatest returns the reminder of the pair with the greatest due date, or
// nil when the pair has none.
func (r *reminderTaskRepository) FindLatest(ctx context.Context, machineID, templateID uint, opts ...utils.DBOption) (*model.ReminderTask, error) {
	var task model.ReminderTask
	err := r.pair(ctx, machineID, templateID, opts...).
		Order("due_date DESC").
		Take(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &task, nil
}

func (r *reminderTaskRepository) ExistsOnDate(ctx context.Context, machineID, templateID uint, day time.Time, opts ...utils.DBOption) (bool, error) {
	start, end := utils.DayBounds(day)
	var count int64
	err := r.pair(ctx, machineID, templateID, opts...).
		Where("due_date >= ? AND due_date < ?", start, end).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *reminderTaskRepository) CreateBatch(ctx context.Context, reminders []model.ReminderTask, batchSize int, opts ...utils.DBOption) error {
	if len(reminders) == 0 {
		return nil
	}
	return utils.ApplyOptions(r.db.WithContext(ctx), opts...).CreateInBatches(&reminders, batchSize).Error
}

func (r *reminderTaskRepository) ListByPair(ctx context.Context, machineID, templateID uint, opts ...utils.DBOption) ([]model.ReminderTask, error) {
	var tasks []model.ReminderTask
	if err := r.pair(ctx, machineID, templateID, opts...).Order("due_date DESC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}
