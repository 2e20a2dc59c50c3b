package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mkamau589/cowork_hub/handlers"
)

func PaymentRoutes(app *fiber.App, h *handlers.PaymentHandler) {
	api := app.Group("/api/v1")

	payments := api.Group("/payments")
	payments.Post("/webhook", h.Webhook)
}
