package http

import (
	"machine-reminder/internal/dto"
	"net/http"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupHealth(base *echo.Group) {
	base.GET("/health", h.Health)
}

// Health reports the loop state and the outcome of the last cycle.
func (h *HttpAPIHandler) Health(c echo.Context) error {
	status := h.service.ReminderScheduler.Status()
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("ok", status))
}
