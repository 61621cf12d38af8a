package main

import (
	"fmt"
	"log"
	"time"

	"furniture-studio/internal/common/config"
	"furniture-studio/internal/common/middleware"
	"furniture-studio/internal/renderer/handlers"
	"furniture-studio/internal/renderer/service"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// Render Service
// ============================================================

func main() {
	cfg := config.Load()
	cfg.PortOr("3001")

	sessions := service.NewViewSessions()
	viewsHandler := handlers.NewViewsHandler(sessions)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Render Service",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger("renderer"))

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	app.Get("/health/ready", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ready", "views": sessions.Len()})
	})

	// ============================================================
	// Render Routes
	// ============================================================

	handlers.Register(app, viewsHandler)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Render Service on %s (env: %s)", addr, cfg.Environment)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
