package main

import (
	"fmt"
	"log"
	"time"

	"furniture-studio/internal/common/config"
	"furniture-studio/internal/common/middleware"
	"furniture-studio/internal/gateway/handlers"
	"furniture-studio/internal/gateway/proxy"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// API Gateway
// ============================================================

func main() {
	cfg := config.Load()

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "API Gateway",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.CORS(cfg.CORSOrigins))
	app.Use(middleware.Logger("gateway"))

	// ============================================================
	// Routes
	// ============================================================

	timeout := time.Duration(cfg.UpstreamTimeout) * time.Second
	renderer := proxy.NewUpstream("renderer", cfg.RendererURL, timeout)
	designs := proxy.NewUpstream("designs", cfg.DesignsURL, timeout)

	handlers.Register(app, renderer, designs)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting API Gateway on %s (env: %s)", addr, cfg.Environment)
	log.Printf("Proxying /render, /views to %s", cfg.RendererURL)
	log.Printf("Proxying /designs to %s", cfg.DesignsURL)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
