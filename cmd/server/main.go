package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"eps-clinic/internal/adapters/http/middleware"
	"eps-clinic/internal/adapters/http/routes"
	"eps-clinic/internal/config"
	"eps-clinic/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	setupLogger(cfg)

	// Start backup cron (no-op unless BACKUP_SCHEDULE is set)
	backupService := services.NewBackupService(cfg.DataDir, cfg.BackupSchedule)
	if err := backupService.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start backup service")
	}
	defer backupService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "EPS clinic API",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (builds stores, repositories, services, handlers)
	routes.Setup(app, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Info().Str("port", cfg.Port).Str("mode", cfg.AppMode).Msg("server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}

// setupLogger configures zerolog: console output in dev, JSON in prod
func setupLogger(cfg *config.Config) {
	if cfg.IsDev() {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	} else {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	if err := app.Shutdown(); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
	log.Info().Msg("server stopped gracefully")
}
