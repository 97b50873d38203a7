package router

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	handler "github.com/zdziszkee/bank-directory/internal/api/handlers"
	"github.com/zdziszkee/bank-directory/internal/api/middleware"
)

const (
	textLogFormat = "[${time}] ${ip} ${status} - ${latency} ${method} ${path} ${error}\n"
	jsonLogFormat = `{"time":"${time}","ip":"${ip}","status":${status},"latency":"${latency}","method":"${method}","path":"${path}","error":"${error}"}` + "\n"

	slowRequest = 500 * time.Millisecond
)

// SetupRoutes configures all API routes. Metrics are served from gatherer and
// request logs use logFormat ("text" or "json").
func SetupRoutes(directoryHandler *handler.DirectoryHandler, gatherer prometheus.Gatherer, logFormat string) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Internal server error"

			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
				message = e.Message
			}

			return c.Status(code).JSON(fiber.Map{
				"message": message,
			})
		},
	})

	format := textLogFormat
	if logFormat == "json" {
		format = jsonLogFormat
	}

	// Add global middleware
	app.Use(logger.New(logger.Config{Format: format}))
	app.Use(recover.New())
	app.Use(middleware.Timing(slowRequest))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	// API versioning
	v1 := app.Group("/v1")

	v1.Get("/banks", directoryHandler.ListBanks)
	v1.Post("/banks/resolve", directoryHandler.Resolve)
	v1.Get("/banks/options", directoryHandler.Options)
	v1.Get("/banks/:aspspId/validation", directoryHandler.ValidateSelection)
	v1.Get("/affiliations", directoryHandler.Affiliations)
	v1.Get("/products", directoryHandler.Products)
	return app
}
