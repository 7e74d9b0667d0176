package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/giuliopb/surf-bot-whatsapp/internal/api"
	"github.com/giuliopb/surf-bot-whatsapp/internal/config"
	"github.com/giuliopb/surf-bot-whatsapp/internal/forecast"
	"github.com/giuliopb/surf-bot-whatsapp/internal/scheduler"
	"github.com/giuliopb/surf-bot-whatsapp/internal/spots"
	"github.com/giuliopb/surf-bot-whatsapp/pkg/client"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	zap.ReplaceGlobals(logger)
	logger.Info("Starting surf forecast bot")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	registry := spots.NewRegistry()
	cache := forecast.NewHourCache(logger)

	clientCfg := client.ClientConfig{
		Timeout:        cfg.Upstream.Timeout,
		BreakerTimeout: cfg.Upstream.BreakerTimeout,
	}
	primary := client.NewStormglassClient(cfg.Stormglass.BaseURL, cfg.Stormglass.APIKey, clientCfg, logger)
	fallback := client.NewOpenMeteoClient(cfg.OpenMeteo.BaseURL, clientCfg, logger)

	svc := forecast.NewService(registry, cache, primary, fallback, cfg.Upstream.Timeout, logger)

	// Hourly sweep of stale cache buckets
	sweeper := scheduler.NewSweeper(cache, cfg.Cache.MaxAge, logger)
	if err := sweeper.Start(); err != nil {
		logger.Fatal("Failed to start cache sweeper", zap.Error(err))
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: errorHandler,
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":         "ok",
			"spots":          registry.Keys(),
			"cached_replies": cache.Len(),
		})
	})

	// Setup handlers and routes
	handler := api.NewHandler(svc, logger)
	api.SetupRoutes(app, handler)

	// Start server in goroutine
	go func() {
		addr := ":" + cfg.Server.Port
		logger.Info("Starting server", zap.String("address", addr))

		if err := app.Listen(addr); err != nil {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	sweeper.Stop()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}

	logger.Info("Server stopped")
}

func errorHandler(c *fiber.Ctx, err error) error {
	zap.L().Error("HTTP error",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err))

	// Default to 500 status code
	code := fiber.StatusInternalServerError

	// Check if it's a Fiber error
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   err.Error(),
		"success": false,
	})
}
