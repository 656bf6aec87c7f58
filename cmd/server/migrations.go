package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/Brendennago/Syntagma/internal/config"
	"github.com/Brendennago/Syntagma/migrations"
	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
)

// runMigrations applies all pending goose migrations from the embedded
// migration set, opening its own short-lived database connection.
func runMigrations(cfg *config.Config, appLogger *slog.Logger) error {
	correlationID := uuid.New().String()
	migrationLogger := appLogger.With(
		"correlation_id", correlationID,
		"component", "migrations")

	startTime := time.Now()
	migrationLogger.Info("Starting migration run")

	goose.SetLogger(&slogGooseLogger{logger: migrationLogger})
	goose.SetBaseFS(migrations.FS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			migrationLogger.Error("Error closing migration connection", "error", err)
		}
	}()

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, err := goose.GetDBVersion(db)
	if err != nil {
		return fmt.Errorf("failed to read migration version: %w", err)
	}

	migrationLogger.Info("Migration run completed",
		"version", version,
		"duration_ms", time.Since(startTime).Milliseconds())
	return nil
}

// slogGooseLogger adapts goose's logger interface to slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}
