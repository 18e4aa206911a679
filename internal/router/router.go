package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/stockwise/stockwise/internal/dispatch"
	"github.com/stockwise/stockwise/internal/handlers"
	"github.com/stockwise/stockwise/internal/logging"
	"github.com/stockwise/stockwise/internal/middleware"
	"github.com/stockwise/stockwise/internal/utils"
)

// Setup configures all routes and middlewares
func Setup(app *fiber.App, logger *logging.Logger, dispatcher dispatch.Dispatcher) *handlers.Handler {
	// Create handler instance
	h := handlers.New(logger, dispatcher)

	// Global middlewares
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-Request-ID",
	}))
	app.Use(logging.FiberMiddleware(logger))

	// Service info and health
	app.Get("/", h.Info)
	app.Get("/health", h.Health)

	// Analytics Routes
	app.Post("/analytics/forecast", h.Forecast)
	app.Post("/analytics/trend", h.Trend)
	app.Post("/analytics/anomalies", h.Anomalies)

	// Alerting Routes
	app.Post("/alerts/generate", h.GenerateAlerts)

	// Optimization Routes
	app.Post("/optimization/reorder-point", h.ReorderPoint)

	// 404 handler
	app.Use(h.NotFound)

	return h
}

// New creates a new Fiber app with configuration
func New(logger *logging.Logger, dispatcher dispatch.Dispatcher) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Stockwise Analytics",
		DisableStartupMessage: true,
		ReadTimeout:           utils.DefaultRequestTimeout,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	Setup(app, logger, dispatcher)

	return app
}
