package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/mcphersonwx/station-weather/internal/api/http"
	"github.com/mcphersonwx/station-weather/internal/config"
	"github.com/mcphersonwx/station-weather/internal/scheduler"
	"github.com/mcphersonwx/station-weather/internal/store"
	"github.com/mcphersonwx/station-weather/internal/weather"
	"github.com/mcphersonwx/station-weather/internal/weather/nws"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound NWS calls. Backfill paginates through
	// the whole retention window, so it sets the client-level ceiling; poll
	// requests are bounded by their shorter context timeout.
	httpClient := &http.Client{
		Timeout: cfg.BackfillTimeout,
	}

	// In-memory store holding the rolling observation window.
	memStore := store.NewMemoryStore(cfg.Window())

	// Upstream client with resilience (backoff + circuit breaker).
	client := nws.NewClient(httpClient, cfg.BaseURL, cfg.Station, cfg.UserAgent)

	// Core service driving ingestion into the store.
	service := weather.NewService(memStore, client, cfg.Window(), cfg.PageLimit)

	// Rebuild the window before serving anything; a dead upstream at startup
	// is fatal and left to the process supervisor to retry.
	backfillCtx, cancelBackfill := context.WithTimeout(context.Background(), cfg.BackfillTimeout)
	if err := service.Backfill(backfillCtx, time.Now()); err != nil {
		log.Fatalf("startup backfill failed for station %s: %v", cfg.Station, err)
	}
	cancelBackfill()

	// Scheduler that periodically polls the latest observation.
	sched := scheduler.New(service, cfg.PollInterval, cfg.PollTimeout)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "station-weather",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "station-weather",
			"station": cfg.Station,
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service, httpapi.Options{
		Station:   cfg.Station,
		LocalZone: cfg.LocalZone,
	})

	// Start server with graceful shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
