package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mkamau589/cowork_hub/handlers"
	"github.com/mkamau589/cowork_hub/middleware"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.StaffRequired())
	admin.Get("/bookings", handlers.ListAllBookings)

	users := api.Group("/admin/users", middleware.Protected(), middleware.AdminRequired())
	users.Get("", handlers.ListUsers)
	users.Patch("/:userId/deactivate", handlers.DeactivateUser)
}
