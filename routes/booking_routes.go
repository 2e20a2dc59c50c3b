package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mkamau589/cowork_hub/handlers"
	"github.com/mkamau589/cowork_hub/middleware"
)

func BookingRoutes(app *fiber.App, h *handlers.BookingHandler) {
	api := app.Group("/api/v1")

	bookings := api.Group("/bookings", middleware.Protected())
	bookings.Get("/me", h.GetMyBookings)
	bookings.Post("", h.CreateBooking)
	bookings.Post("/:bookingId/cancel", h.CancelBooking)
	bookings.Post("/:bookingId/check-in", h.CheckIn)
	bookings.Post("/:bookingId/check-out", h.CheckOut)
	bookings.Get("/:bookingId/receipt", h.GetReceipt)
}
