package repository

import (
	"context"
	"fmt"
	"machine-reminder/config"
	"machine-reminder/internal/dto"
	"machine-reminder/internal/model"
	"machine-reminder/pkg/httpclient"
	"machine-reminder/pkg/logger"
	"machine-reminder/pkg/utils"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const machineRegistryListPath = "/api/v1/machines"

type machineRegistryRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     httpclient.HTTPClient
	requestLimiter *rate.Limiter
}

// NewMachineRegistryRepository reads machines from the external machine
// registry service instead of the shared database.
func NewMachineRegistryRepository(cfg *config.Config, log *logger.Logger, client httpclient.HTTPClient) MachineRepository {
	if client == nil {
		client = httpclient.New(cfg.MachineRegistry.BaseURL, cfg.MachineRegistry.BaseTimeout, cfg.MachineRegistry.BearerToken)
	}
	perRequest := time.Minute / time.Duration(cfg.MachineRegistry.MaxRequestPerMin)

	return &machineRegistryRepository{
		cfg:            cfg,
		log:            log,
		httpClient:     client,
		requestLimiter: rate.NewLimiter(rate.Every(perRequest), 1),
	}
}

// ListActive ignores DB options; the registry is not a gorm source.
func (r *machineRegistryRepository) ListActive(ctx context.Context, _ ...utils.DBOption) ([]model.Machine, error) {
	if !r.requestLimiter.Allow() {
		r.log.WarnContext(ctx, "Machine registry request limit reached, waiting",
			logger.IntField("max_request_per_minute", r.cfg.MachineRegistry.MaxRequestPerMin),
		)
		if err := r.requestLimiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	var result dto.RegistryMachineListResponse
	resp, err := r.httpClient.Get(ctx, machineRegistryListPath, map[string]string{"status": model.MachineStatusActive}, nil, &result)
	if err != nil {
		return nil, fmt.Errorf("machine registry request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("machine registry returned status %d: %s", resp.StatusCode, string(resp.Body))
	}

	machines := make([]model.Machine, 0, len(result.Data))
	for _, m := range result.Data {
		if m.Status != model.MachineStatusActive {
			continue
		}
		machines = append(machines, model.Machine{
			ID:          m.ID,
			Name:        m.Name,
			MachineType: m.MachineType,
			Status:      m.Status,
		})
	}
	return machines, nil
}
