package http

import (
	"errors"
	"machine-reminder/internal/dto"
	"machine-reminder/internal/service"
	"machine-reminder/pkg/logger"
	"net/http"

	"github.com/labstack/echo/v4"
)

type listRemindersRequest struct {
	MachineID  uint `query:"machine_id" validate:"required"`
	TemplateID uint `query:"template_id" validate:"required"`
	Limit      int  `query:"limit" validate:"gte=0,lte=200"`
}

func (h *HttpAPIHandler) SetupReminders(base *echo.Group) {
	v1 := base.Group("/v1/reminders")
	{
		v1.GET("", h.ListReminders)
		v1.POST("/run", h.RunReminderCycle)
	}
}

// RunReminderCycle runs one generation cycle synchronously. dry_run=true plans
// without writing.
func (h *HttpAPIHandler) RunReminderCycle(c echo.Context) error {
	var opts service.CycleOptions
	if err := echo.QueryParamsBinder(c).Bool("dry_run", &opts.DryRun).BindError(); err != nil {
		response := dto.NewBaseResponse(http.StatusBadRequest, "invalid dry_run parameter", nil)
		return c.JSON(response.Code, response)
	}

	ctx := c.Request().Context()
	summary, err := h.service.ReminderScheduler.Trigger(ctx, opts)
	if errors.Is(err, service.ErrCycleInProgress) {
		response := dto.NewBaseResponse(http.StatusConflict, err.Error(), nil)
		return c.JSON(response.Code, response)
	}
	if err != nil {
		h.log.ErrorContext(ctx, "Manual reminder cycle failed", logger.ErrorField(err))
		response := dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), summary)
		return c.JSON(response.Code, response)
	}

	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Reminder cycle completed", summary))
}

func (h *HttpAPIHandler) ListReminders(c echo.Context) error {
	var req listRemindersRequest
	if err := c.Bind(&req); err != nil {
		response := dto.NewBaseResponse(http.StatusBadRequest, "invalid query parameters", nil)
		return c.JSON(response.Code, response)
	}
	if err := h.validator.Struct(req); err != nil {
		response := dto.NewBaseResponse(http.StatusBadRequest, err.Error(), nil)
		return c.JSON(response.Code, response)
	}

	ctx := c.Request().Context()
	tasks, err := h.service.ReminderHistory.ListByPair(ctx, req.MachineID, req.TemplateID, req.Limit)
	if err != nil {
		h.log.ErrorContext(ctx, "Failed to list reminders",
			logger.ErrorField(err),
			logger.UintField("machine_id", req.MachineID),
			logger.UintField("template_id", req.TemplateID),
		)
		response := dto.NewBaseResponse(http.StatusInternalServerError, "failed to list reminders", nil)
		return c.JSON(response.Code, response)
	}

	return c.JSON(http.StatusOK, dto.NewSuccessResponse("ok", tasks))
}
