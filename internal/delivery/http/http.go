package http

import (
	"machine-reminder/config"
	"machine-reminder/internal/service"
	"machine-reminder/pkg/logger"
	"machine-reminder/pkg/middleware"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type HttpAPIHandler struct {
	cfg       *config.Config
	log       *logger.Logger
	echo      *echo.Echo
	validator *goValidator.Validate
	service   *service.Service
}

func NewHttpAPIHandler(cfg *config.Config, log *logger.Logger, echo *echo.Echo, validator *goValidator.Validate, service *service.Service) *HttpAPIHandler {
	return &HttpAPIHandler{
		cfg:       cfg,
		log:       log,
		echo:      echo,
		validator: validator,
		service:   service,
	}
}

func (h *HttpAPIHandler) SetupRoutes() {
	base := h.echo.Group("/api", middleware.NewRateLimiterMiddleware(h.cfg.API.RateLimit, h.cfg.API.RateLimitBurst))
	h.SetupHealth(base)
	h.SetupReminders(base)
}
