package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpapi "github.com/skygauge/weather-odds/internal/api/http"
	"github.com/skygauge/weather-odds/internal/climate"
	"github.com/skygauge/weather-odds/internal/climate/providers"
	"github.com/skygauge/weather-odds/internal/config"
	"github.com/skygauge/weather-odds/internal/geocode"
	"github.com/skygauge/weather-odds/internal/observability"
	"github.com/skygauge/weather-odds/internal/scheduler"
	"github.com/skygauge/weather-odds/internal/store"
)

func main() {
	// Load configuration (reads .env if present).
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Tracked locations configured by name need coordinates up front.
	for i := range cfg.TrackedLocations {
		loc := &cfg.TrackedLocations[i]
		if loc.HasCoords {
			continue
		}
		lat, lon, err := geocode.Resolve(cfg.GeocoderAPIKey, loc.City, loc.Country)
		if err != nil {
			log.Fatalf("failed to resolve tracked location %s: %v", loc.Name, err)
		}
		loc.Lat = lat
		loc.Lon = lon
		loc.HasCoords = true
	}

	metrics := observability.NewMetrics()

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	power := providers.NewPowerProvider(httpClient, metrics)
	service := climate.NewService(power, metrics)

	// Latest-report cache for the tracked-location surface.
	reports := store.NewMemoryStore()

	// Scheduler that periodically refreshes tracked-location reports.
	sched := scheduler.New(cfg, service, reports, metrics)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weather-odds",
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
			"service": "weather-odds",
		})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// API routes.
	httpapi.RegisterRoutes(app, service, reports, cfg.Defaults)

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
