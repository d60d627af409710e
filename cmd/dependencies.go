package cmd

import (
	"context"
	"machine-reminder/config"
	"machine-reminder/internal/repository"
	"machine-reminder/internal/service"
	"machine-reminder/pkg/cache"
	"machine-reminder/pkg/logger"
	"machine-reminder/pkg/postgres"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type AppDependency struct {
	db        *postgres.DB
	cfg       *config.Config
	log       *logger.Logger
	validator *goValidator.Validate
	echo      *echo.Echo
	cache     cache.Cache
}

func NewAppDependency(ctx context.Context) (*AppDependency, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		return nil, err
	}

	db, err := postgres.NewDB(cfg.DB, log)
	if err != nil {
		log.ErrorContext(ctx, "Failed to connect to database", logger.ErrorField(err))
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	return &AppDependency{
		cfg:       cfg,
		log:       log,
		validator: goValidator.New(),
		db:        db,
		echo:      e,
		cache:     cache.NewCache(cfg.Cache.DefaultExpiration, cfg.Cache.CleanupInterval),
	}, nil
}

// NewServices builds the repositories and services on top of the dependencies.
func (d *AppDependency) NewServices() (*service.Service, error) {
	repo := repository.NewRepository(d.cfg, d.cache, d.db.DB, d.log)
	return service.NewService(d.cfg, d.log, repo, service.NewRealClock())
}

func (d *AppDependency) Close() error {
	d.log.Info("Closing app dependency")
	defer func() {
		_ = d.log.Sync()
	}()
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}
