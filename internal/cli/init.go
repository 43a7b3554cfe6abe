// Package cli provides common CLI initialization utilities shared by
// the fintrack commands: env loading, logging, configuration and store
// startup.
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"fintrack/internal/config"
	applog "fintrack/internal/log"
	"fintrack/internal/storage"
)

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger initializes structured logging at the given level and
// sets it as the process default.
func SetupLogger(level slog.Level) *applog.Logger {
	logger := applog.New(applog.Config{
		Level:     level,
		Component: applog.ComponentApp,
	})
	applog.SetDefault(logger)
	return logger
}

// InitStore opens the local store and, when enabled, seeds the demo
// data set. A seed failure is logged and otherwise ignored: the store
// must stay usable on a fresh install even if seeding goes wrong.
// Exits the process when the store itself cannot be opened.
func InitStore(ctx context.Context, logger *applog.Logger, cfg *config.Config) *storage.Store {
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Error("Failed to open local store", applog.FieldError, err, applog.FieldDBPath, cfg.DBPath)
		os.Exit(1)
	}

	if cfg.SeedDemoData {
		if err := storage.Seed(ctx, store); err != nil {
			logger.Warn("Demo data seeding failed", applog.FieldError, err)
		}
	}

	return store
}
