package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/slotpicker/internal/metrics"
	"github.com/terraincognita07/slotpicker/internal/picker"
	"go.uber.org/zap"
)

type availableTimesResponse struct {
	AvailableTimes []string `json:"available_times"`
}

func (handler *Handler) GetAvailableTimes(c *fiber.Ctx) error {
	date, err := picker.ParseDate(c.Params("date"))
	if err != nil {
		handler.metrics.ObserveAvailability(metrics.StatusInvalid)
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	times, err := handler.availability.AvailableTimes(date)
	if err != nil {
		handler.metrics.ObserveAvailability(metrics.StatusError)
		handler.logger.Error("load available times", zap.String("date", date.String()), zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "failed to load available times")
	}

	if len(times) == 0 {
		handler.metrics.ObserveAvailability(metrics.StatusEmpty)
	} else {
		handler.metrics.ObserveAvailability(metrics.StatusOK)
	}
	return c.JSON(availableTimesResponse{AvailableTimes: times})
}
