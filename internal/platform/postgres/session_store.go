package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Brendennago/Syntagma/internal/domain"
	"github.com/Brendennago/Syntagma/internal/platform/logger"
	"github.com/Brendennago/Syntagma/internal/store"
	"github.com/google/uuid"
)

// PostgresSessionStore implements the store.SessionStore interface
// using a PostgreSQL database as the storage backend.
type PostgresSessionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSessionStore creates a new PostgreSQL implementation of the SessionStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresSessionStore(db store.DBTX, logger *slog.Logger) *PostgresSessionStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresSessionStore{
		db:     db,
		logger: logger.With(slog.String("component", "session_store")),
	}
}

// Ensure PostgresSessionStore implements store.SessionStore interface
var _ store.SessionStore = (*PostgresSessionStore)(nil)

// Save implements store.SessionStore.Save
// It writes the session, overwriting the learner's previous session for the
// same language. Returns validation errors from the domain ReadingSession if
// data is invalid.
func (s *PostgresSessionStore) Save(ctx context.Context, session *domain.ReadingSession) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := session.Validate(); err != nil {
		log.Warn("reading session validation failed during save",
			slog.String("error", err.Error()),
			slog.String("language", session.Language))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	words, err := json.Marshal(session.LookedUpWords)
	if err != nil {
		return fmt.Errorf("failed to marshal looked-up words: %w", err)
	}

	query := `
		INSERT INTO reading_sessions (learner_id, language, passage_text, looked_up_words, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (learner_id, language) DO UPDATE SET
			passage_text = EXCLUDED.passage_text,
			looked_up_words = EXCLUDED.looked_up_words,
			updated_at = EXCLUDED.updated_at
	`

	_, err = s.db.ExecContext(
		ctx,
		query,
		session.LearnerID,
		session.Language,
		session.PassageText,
		words,
		session.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to save reading session",
			slog.String("error", err.Error()),
			slog.String("language", session.Language))
		return err
	}

	log.Info("reading session saved",
		slog.String("language", session.Language),
		slog.Int("looked_up_words", len(session.LookedUpWords)))
	return nil
}

// Load implements store.SessionStore.Load
// It retrieves the latest session for the learner and language.
// Returns store.ErrSessionNotFound if none has been saved.
func (s *PostgresSessionStore) Load(
	ctx context.Context,
	learnerID uuid.UUID,
	language string,
) (*domain.ReadingSession, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT learner_id, language, passage_text, looked_up_words, updated_at
		FROM reading_sessions
		WHERE learner_id = $1 AND language = $2
	`

	var session domain.ReadingSession
	var words []byte

	err := s.db.QueryRowContext(ctx, query, learnerID, language).Scan(
		&session.LearnerID,
		&session.Language,
		&session.PassageText,
		&words,
		&session.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("reading session not found",
				slog.String("language", language))
			return nil, store.ErrSessionNotFound
		}
		log.Error("failed to load reading session",
			slog.String("error", err.Error()),
			slog.String("language", language))
		return nil, err
	}

	if err := json.Unmarshal(words, &session.LookedUpWords); err != nil {
		return nil, fmt.Errorf("failed to unmarshal looked-up words: %w", err)
	}

	return &session, nil
}
