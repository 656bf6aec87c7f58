package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Brendennago/Syntagma/internal/config"
	"github.com/Brendennago/Syntagma/internal/platform/gemini"
	"github.com/Brendennago/Syntagma/internal/platform/postgres"
	"github.com/Brendennago/Syntagma/internal/service"
	"github.com/Brendennago/Syntagma/internal/store"
	"github.com/Brendennago/Syntagma/internal/translation"
	"github.com/google/uuid"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	vocabStore       store.VocabStore
	translationStore store.TranslationStore
	sessionStore     store.SessionStore

	vocabService   *service.VocabService
	sessionService *service.SessionService
	passageService *service.PassageService
}

// newApplication creates an application instance with all dependencies
// initialized and wired together.
func newApplication(ctx context.Context, cfg *config.Config, appLogger *slog.Logger) (*application, error) {
	db, err := setupAppDatabase(cfg, appLogger)
	if err != nil {
		return nil, err
	}

	learnerID, err := uuid.Parse(cfg.Learner.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid learner ID in configuration: %w", err)
	}

	vocabStore := postgres.NewPostgresVocabStore(db, appLogger)
	translationStore := postgres.NewPostgresTranslationStore(db, appLogger)
	sessionStore := postgres.NewPostgresSessionStore(db, appLogger)

	provider := translation.NewHTTPProvider(cfg.Translation, appLogger)

	generator, err := gemini.NewGenerator(ctx, appLogger, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to create passage generator: %w", err)
	}

	vocabService, err := service.NewVocabService(
		db, vocabStore, translationStore, provider,
		learnerID, cfg.Learner.NativeLanguage, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create vocab service: %w", err)
	}

	sessionService, err := service.NewSessionService(sessionStore, learnerID, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create session service: %w", err)
	}

	passageService, err := service.NewPassageService(
		vocabStore, translationStore, generator,
		learnerID, cfg.Learner.NativeLanguage, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create passage service: %w", err)
	}

	return &application{
		config:           cfg,
		logger:           appLogger,
		db:               db,
		vocabStore:       vocabStore,
		translationStore: translationStore,
		sessionStore:     sessionStore,
		vocabService:     vocabService,
		sessionService:   sessionService,
		passageService:   passageService,
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}
}
