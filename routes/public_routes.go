package routes

import (
	"github.com/gofiber/fiber/v2"
	ws "github.com/mkamau589/cowork_hub/websocket"
)

func PublicRoutes(app *fiber.App) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Get("/ws/bookings", ws.BookingFeed)
}
