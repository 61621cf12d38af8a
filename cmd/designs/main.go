package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"furniture-studio/internal/common/config"
	"furniture-studio/internal/common/middleware"
	"furniture-studio/internal/designs/handlers"
	"furniture-studio/internal/designs/repository"
	"furniture-studio/internal/designs/service"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// Design Service
// ============================================================

func main() {
	cfg := config.Load()
	cfg.PortOr("3002")

	db, err := repository.OpenSQLite(cfg.DesignsDBPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	repo := repository.New(db)
	if err := repo.Init(context.Background()); err != nil {
		log.Fatalf("init db: %v", err)
	}

	thumbnails := service.NewThumbnailStorage(cfg.ThumbnailDir)
	designsHandler := handlers.NewDesignsHandler(repo, thumbnails)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Design Service",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger("designs"))

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	app.Get("/health/ready", func(c fiber.Ctx) error {
		if err := db.PingContext(context.Background()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "db unavailable"})
		}
		return c.JSON(fiber.Map{"status": "ready"})
	})

	// ============================================================
	// Design Routes
	// ============================================================

	handlers.Register(app, designsHandler)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Design Service on %s (env: %s, db: %s)", addr, cfg.Environment, cfg.DesignsDBPath)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
