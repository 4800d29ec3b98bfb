package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)
	if handler.gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(handler.gatherer, promhttp.HandlerOpts{})))
	}

	app.Get("/widget-config", handler.WidgetConfig)
	app.Get("/available-times/:date", handler.GetAvailableTimes)

	bookings := app.Group("/bookings")
	bookings.Post("", handler.CreateBooking)
	bookings.Get("/:date", handler.AdminOnly, handler.ListBookings)

	admin := app.Group("/admin")
	admin.Post("/session", handler.OpenAdminSession)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
