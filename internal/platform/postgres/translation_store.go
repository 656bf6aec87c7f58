package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/Brendennago/Syntagma/internal/platform/logger"
	"github.com/Brendennago/Syntagma/internal/store"
)

// PostgresTranslationStore implements the store.TranslationStore interface
// using a PostgreSQL database as the storage backend. Entries never expire;
// a later successful lookup simply overwrites the earlier value.
type PostgresTranslationStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTranslationStore creates a new PostgreSQL implementation of the TranslationStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresTranslationStore(db store.DBTX, logger *slog.Logger) *PostgresTranslationStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTranslationStore{
		db:     db,
		logger: logger.With(slog.String("component", "translation_store")),
	}
}

// Ensure PostgresTranslationStore implements store.TranslationStore interface
var _ store.TranslationStore = (*PostgresTranslationStore)(nil)

// Get implements store.TranslationStore.Get
// Returns store.ErrTranslationNotFound on a cache miss.
func (s *PostgresTranslationStore) Get(
	ctx context.Context,
	word, sourceLang, targetLang string,
) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT translation
		FROM translation_cache
		WHERE word = $1 AND source_language = $2 AND target_language = $3
	`

	var translation string
	err := s.db.QueryRowContext(ctx, query, word, sourceLang, targetLang).Scan(&translation)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("translation cache miss",
				slog.String("word", word),
				slog.String("source_language", sourceLang),
				slog.String("target_language", targetLang))
			return "", store.ErrTranslationNotFound
		}
		log.Error("failed to get cached translation",
			slog.String("error", err.Error()),
			slog.String("word", word))
		return "", err
	}

	return translation, nil
}

// Put implements store.TranslationStore.Put
// It stores a translation, unconditionally overwriting any existing value.
func (s *PostgresTranslationStore) Put(
	ctx context.Context,
	word, sourceLang, targetLang, translation string,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	now := time.Now().UTC()
	query := `
		INSERT INTO translation_cache (word, source_language, target_language, translation, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (word, source_language, target_language) DO UPDATE SET
			translation = EXCLUDED.translation,
			updated_at = EXCLUDED.updated_at
	`

	_, err := s.db.ExecContext(ctx, query, word, sourceLang, targetLang, translation, now)
	if err != nil {
		log.Error("failed to cache translation",
			slog.String("error", err.Error()),
			slog.String("word", word),
			slog.String("source_language", sourceLang),
			slog.String("target_language", targetLang))
		return err
	}

	log.Debug("translation cached",
		slog.String("word", word),
		slog.String("source_language", sourceLang),
		slog.String("target_language", targetLang))
	return nil
}
