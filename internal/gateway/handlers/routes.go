package handlers

import (
	"furniture-studio/internal/gateway/proxy"

	"github.com/gofiber/fiber/v3"
)

const apiPrefix = "/api/v1"

// Register вешает health probes и проксирование /api/v1 на два сервиса.
func Register(app *fiber.App, renderer, designs *proxy.Upstream) {
	app.Get("/health/live", LivenessProbe)
	app.Get("/health/ready", ReadinessProbe(renderer, designs))
	app.Get("/health/startup", StartupProbe)

	api := app.Group(apiPrefix)

	api.Get("/", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Furniture Studio API v1",
			"status":  "ok",
		})
	})

	// Render Service
	api.Post("/render", renderer.StripPrefix(apiPrefix))
	api.All("/views", renderer.StripPrefix(apiPrefix))
	api.All("/views/*", renderer.StripPrefix(apiPrefix))

	// Design Service
	api.All("/designs", designs.StripPrefix(apiPrefix))
	api.All("/designs/*", designs.StripPrefix(apiPrefix))
}
