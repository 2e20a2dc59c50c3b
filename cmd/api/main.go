package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/mkamau589/cowork_hub/booking"
	config "github.com/mkamau589/cowork_hub/configs"
	"github.com/mkamau589/cowork_hub/database"
	"github.com/mkamau589/cowork_hub/handlers"
	"github.com/mkamau589/cowork_hub/jobs"
	"github.com/mkamau589/cowork_hub/notifications"
	"github.com/mkamau589/cowork_hub/routes"
	"github.com/mkamau589/cowork_hub/websocket"
	"github.com/robfig/cron/v3"
)

func main() {
	database.ConnectDB()
	database.Migrate()
	database.SeedAdmin()
	notifications.InitEmailService()

	repo := booking.NewGormRepository(database.DB, 5*time.Second)
	notifier := notifications.NewBookingNotifier(database.DB)
	engine := booking.NewEngine(repo, notifier, booking.Config{
		AutoConfirm:  config.Config("BOOKING_AUTO_CONFIRM") == "true",
		CheckInGrace: 10 * time.Minute,
	})

	c := cron.New()
	c.AddFunc("*/5 * * * *", func() { jobs.CompleteElapsedBookings(engine) })
	c.AddFunc("*/5 * * * *", jobs.SendBookingReminders)
	go c.Start()
	log.Println("✅ Booking lifecycle cron jobs scheduled successfully.")

	app := fiber.New(fiber.Config{
		Prefork:           false,
		AppName:           "CoWork Hub",
		CaseSensitive:     true,
		StrictRouting:     true,
		EnablePrintRoutes: true,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "Welcome to CoWork Hub API",
		})
	})

	bookingHandler := handlers.NewBookingHandler(engine)
	paymentHandler := handlers.NewPaymentHandler(engine)

	routes.PublicRoutes(app)
	routes.AuthRoutes(app)
	routes.ResourceRoutes(app, bookingHandler)
	routes.BookingRoutes(app, bookingHandler)
	routes.PaymentRoutes(app, paymentHandler)
	routes.AdminRoutes(app)

	go websocket.RunHub()

	log.Println("✅ Server is running on port 8080")
	if err := app.Listen(":8080"); err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
