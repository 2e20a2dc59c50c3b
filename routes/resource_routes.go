package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mkamau589/cowork_hub/handlers"
	"github.com/mkamau589/cowork_hub/middleware"
)

func ResourceRoutes(app *fiber.App, h *handlers.BookingHandler) {
	api := app.Group("/api/v1")

	resources := api.Group("/resources")
	resources.Get("", handlers.ListResources)
	resources.Get("/:resourceId", handlers.GetResource)
	resources.Get("/:resourceId/availability", h.GetAvailability)

	admin := api.Group("/admin/resources", middleware.Protected(), middleware.AdminRequired())
	admin.Post("", handlers.CreateResource)
	admin.Put("/:resourceId", handlers.UpdateResource)
	admin.Delete("/:resourceId", handlers.DeactivateResource)
	admin.Post("/:resourceId/photo", handlers.UploadResourcePhoto)
}
