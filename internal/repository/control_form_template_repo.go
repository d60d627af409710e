package repository

import (
	"context"
	"machine-reminder/config"
	"machine-reminder/internal/model"
	"machine-reminder/pkg/cache"
	"machine-reminder/pkg/utils"

	"gorm.io/gorm"
)

const cacheKeyActiveTemplates = "control_form_templates:active"

type ControlFormTemplateRepository interface {
	ListActive(ctx context.Context, opts ...utils.DBOption) ([]model.ControlFormTemplate, error)
}

type controlFormTemplateRepository struct {
	cfg           *config.Config
	inmemoryCache cache.Cache
	db            *gorm.DB
}

func NewControlFormTemplateRepository(cfg *config.Config, inmemoryCache cache.Cache, db *gorm.DB) ControlFormTemplateRepository {
	return &controlFormTemplateRepository{cfg: cfg, inmemoryCache: inmemoryCache, db: db}
}

// ListActive returns the active templates ordered by id. The snapshot is cached
// for catalog.template_cache_ttl; a zero TTL reads the table every call.
func (r *controlFormTemplateRepository) ListActive(ctx context.Context, opts ...utils.DBOption) ([]model.ControlFormTemplate, error) {
	ttl := r.cfg.Catalog.TemplateCacheTTL
	if ttl > 0 && len(opts) == 0 {
		if val, found := cache.GetFromCache[[]model.ControlFormTemplate](r.inmemoryCache, cacheKeyActiveTemplates); found {
			return val, nil
		}
	}

	var templates []model.ControlFormTemplate
	err := utils.ApplyOptions(r.db.WithContext(ctx), opts...).
		Where("is_active = ?", true).
		Order("id").
		Find(&templates).Error
	if err != nil {
		return nil, err
	}

	if ttl > 0 && len(opts) == 0 {
		r.inmemoryCache.Set(cacheKeyActiveTemplates, templates, ttl)
	}
	return templates, nil
}
