// Package main implements the entry point for the Syntagma server, which
// tracks a learner's vocabulary on a spaced-repetition ladder and generates
// reading passages tuned to the words currently due.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"

	"github.com/Brendennago/Syntagma/internal/config"
	"github.com/Brendennago/Syntagma/internal/platform/logger"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	migrateOnly := flag.Bool("migrate", false, "run database migrations and exit")
	flag.Parse()

	cfg, appLogger, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if *migrateOnly {
		if err := runMigrations(cfg, appLogger); err != nil {
			log.Fatalf("Migrations failed: %v", err)
		}
		return
	}

	app, err := newApplication(context.Background(), cfg, appLogger)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}

	if err := app.startHTTPServer(context.Background(), app.setupRouter()); err != nil {
		log.Fatalf("Server exited with error: %v", err)
	}
}

// initializeApp loads configuration and sets up structured logging.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"native_language", cfg.Learner.NativeLanguage)

	return cfg, appLogger, nil
}
