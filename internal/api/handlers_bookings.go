package api

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/slotpicker/internal/metrics"
	"github.com/terraincognita07/slotpicker/internal/models"
	"github.com/terraincognita07/slotpicker/internal/picker"
	"github.com/terraincognita07/slotpicker/internal/services"
	"go.uber.org/zap"
)

type bookingPayload struct {
	Date           string `json:"date"`
	Time           string `json:"time"`
	UserName       string `json:"user_name"`
	UserPhone      string `json:"user_phone"`
	TelegramUserID *int64 `json:"telegram_user_id"`
}

type bookingResponse struct {
	ID        uint   `json:"id"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	UserName  string `json:"user_name,omitempty"`
	UserPhone string `json:"user_phone,omitempty"`
}

func (handler *Handler) CreateBooking(c *fiber.Ctx) error {
	payload := bookingPayload{}
	if err := c.BodyParser(&payload); err != nil {
		handler.metrics.ObserveBooking(metrics.StatusInvalid)
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	booking, err := handler.bookings.Create(services.BookingInput{
		Date:           payload.Date,
		Time:           payload.Time,
		UserName:       payload.UserName,
		UserPhone:      payload.UserPhone,
		TelegramUserID: payload.TelegramUserID,
	})
	if err != nil {
		return handler.respondBookingError(c, err)
	}
	handler.metrics.ObserveBooking(metrics.StatusOK)
	handler.notifyBooking(booking)

	return c.Status(fiber.StatusCreated).JSON(bookingResponse{
		ID:        booking.ID,
		Date:      booking.Date,
		Time:      booking.Time,
		UserName:  booking.UserName,
		UserPhone: booking.UserPhone,
	})
}

func (handler *Handler) respondBookingError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrBookingDateInvalid):
		handler.metrics.ObserveBooking(metrics.StatusInvalid)
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	case errors.Is(err, services.ErrBookingTimeInvalid):
		handler.metrics.ObserveBooking(metrics.StatusInvalid)
		return apiError(c, fiber.StatusBadRequest, "invalid time")
	case errors.Is(err, services.ErrBookingNameInvalid):
		handler.metrics.ObserveBooking(metrics.StatusInvalid)
		return apiError(c, fiber.StatusBadRequest, "invalid name")
	case errors.Is(err, services.ErrBookingPhoneInvalid):
		handler.metrics.ObserveBooking(metrics.StatusInvalid)
		return apiError(c, fiber.StatusBadRequest, "invalid phone")
	case errors.Is(err, services.ErrSlotUnavailable):
		handler.metrics.ObserveBooking(metrics.StatusConflict)
		return apiError(c, fiber.StatusConflict, "slot unavailable")
	default:
		handler.metrics.ObserveBooking(metrics.StatusError)
		handler.logger.Error("create booking", zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "failed to create booking")
	}
}

// notifyBooking forwards the booked slot to the host channel in the
// background, so the response does not wait on the notifier. Failures are
// logged only; the booking is already stored.
func (handler *Handler) notifyBooking(booking models.Booking) {
	if handler.notifier == nil {
		return
	}
	date, err := picker.ParseDate(booking.Date)
	if err != nil {
		return
	}
	payload, err := picker.Draft{Date: date, Time: booking.Time}.Payload()
	if err != nil {
		return
	}

	handler.notifications.Add(1)
	go func() {
		defer handler.notifications.Done()

		ctx, cancel := context.WithTimeout(context.Background(), notificationTimeout)
		defer cancel()
		if err := handler.notifier.SendData(ctx, payload); err != nil {
			handler.logger.Warn("booking notification failed", zap.Uint("booking_id", booking.ID), zap.Error(err))
		}
	}()
}

func (handler *Handler) ListBookings(c *fiber.Ctx) error {
	date, err := picker.ParseDate(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	records, err := handler.bookings.ListByDate(date)
	if err != nil {
		handler.logger.Error("list bookings", zap.String("date", date.String()), zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "failed to load bookings")
	}
	return c.JSON(records)
}
