package repository

import (
	"context"
	"machine-reminder/internal/model"
	"machine-reminder/pkg/utils"

	"gorm.io/gorm"
)

type MachineRepository interface {
	ListActive(ctx context.Context, opts ...utils.DBOption) ([]model.Machine, error)
}

type machineRepository struct {
	db *gorm.DB
}

func NewMachineRepository(db *gorm.DB) MachineRepository {
	return &machineRepository{db: db}
}

// ListActive reads the machines whose lifecycle status is Active, ordered by id.
func (r *machineRepository) ListActive(ctx context.Context, opts ...utils.DBOption) ([]model.Machine, error) {
	var machines []model.Machine
	err := utils.ApplyOptions(r.db.WithContext(ctx), opts...).
		Where("status = ?", model.MachineStatusActive).
		Order("id").
		Find(&machines).Error
	if err != nil {
		return nil, err
	}
	return machines, nil
}
