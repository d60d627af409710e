package repository

import (
	"machine-reminder/config"
	"machine-reminder/pkg/cache"
	"machine-reminder/pkg/httpclient"
	"machine-reminder/pkg/logger"

	"gorm.io/gorm"
)

type Repository struct {
	MachineRepo             MachineRepository
	ControlFormTemplateRepo ControlFormTemplateRepository
	ReminderTaskRepo        ReminderTaskRepository
	UnitOfWork              UnitOfWork
}

// NewRepository wires the repositories. Machines come from the shared
// database or, with catalog.machine_source=registry, from the registry API.
func NewRepository(cfg *config.Config, inmemoryCache cache.Cache, db *gorm.DB, log *logger.Logger) *Repository {
	var machineRepo MachineRepository
	switch cfg.Catalog.MachineSource {
	case config.MachineSourceRegistry:
		client := httpclient.New(cfg.MachineRegistry.BaseURL, cfg.MachineRegistry.BaseTimeout, cfg.MachineRegistry.BearerToken)
		machineRepo = NewMachineRegistryRepository(cfg, log, client)
	default:
		machineRepo = NewMachineRepository(db)
	}

	return &Repository{
		MachineRepo:             machineRepo,
		ControlFormTemplateRepo: NewControlFormTemplateRepository(cfg, inmemoryCache, db),
		ReminderTaskRepo:        NewReminderTaskRepository(db),
		UnitOfWork:              NewUnitOfWork(db),
	}
}
