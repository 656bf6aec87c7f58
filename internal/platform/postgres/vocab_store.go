package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Brendennago/Syntagma/internal/domain"
	"github.com/Brendennago/Syntagma/internal/platform/logger"
	"github.com/Brendennago/Syntagma/internal/store"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes
const (
	pgUniqueViolationCode = "23505"
	pgCheckViolationCode  = "23514"
)

// vocabColumns is the scan order shared by every SELECT in this store.
const vocabColumns = `learner_id, language, word, step, interval_days, next_review_at,
	status, successful_reads, lookup_count, is_target, target_order, created_at, updated_at`

// PostgresVocabStore implements the store.VocabStore interface
// using a PostgreSQL database as the storage backend.
type PostgresVocabStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresVocabStore creates a new PostgreSQL implementation of the VocabStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresVocabStore(db store.DBTX, logger *slog.Logger) *PostgresVocabStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresVocabStore{
		db:     db,
		logger: logger.With(slog.String("component", "vocab_store")),
	}
}

// Ensure PostgresVocabStore implements store.VocabStore interface
var _ store.VocabStore = (*PostgresVocabStore)(nil)

// WithTx implements store.VocabStore.WithTx
// It returns a store bound to the given transaction so batch operations share
// one atomic commit.
func (s *PostgresVocabStore) WithTx(tx *sql.Tx) store.VocabStore {
	return &PostgresVocabStore{
		db:     tx,
		logger: s.logger,
	}
}

// Get implements store.VocabStore.Get
// It retrieves a vocabulary entry by its (learner, language, word) key.
// Returns store.ErrVocabNotFound if the entry does not exist.
func (s *PostgresVocabStore) Get(
	ctx context.Context,
	learnerID uuid.UUID,
	language, word string,
) (*domain.VocabularyEntry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(`
		SELECT %s
		FROM vocabulary_entries
		WHERE learner_id = $1 AND language = $2 AND word = $3
	`, vocabColumns)

	row := s.db.QueryRowContext(ctx, query, learnerID, language, word)
	entry, err := scanVocabEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("vocabulary entry not found",
				slog.String("language", language),
				slog.String("word", word))
			return nil, store.ErrVocabNotFound
		}
		log.Error("failed to get vocabulary entry",
			slog.String("error", err.Error()),
			slog.String("language", language),
			slog.String("word", word))
		return nil, err
	}

	return entry, nil
}

// List implements store.VocabStore.List
// It retrieves all entries for a learner and language ordered by
// next_review_at ascending. Returns an empty slice when none exist.
func (s *PostgresVocabStore) List(
	ctx context.Context,
	learnerID uuid.UUID,
	language string,
) ([]*domain.VocabularyEntry, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM vocabulary_entries
		WHERE learner_id = $1 AND language = $2
		ORDER BY next_review_at ASC, word ASC
	`, vocabColumns)

	return s.queryEntries(ctx, query, learnerID, language)
}

// ListDue implements store.VocabStore.ListDue
// It retrieves entries whose next review time has passed, soonest first.
func (s *PostgresVocabStore) ListDue(
	ctx context.Context,
	learnerID uuid.UUID,
	language string,
	now time.Time,
	limit int,
) ([]*domain.VocabularyEntry, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM vocabulary_entries
		WHERE learner_id = $1 AND language = $2 AND next_review_at <= $3
		ORDER BY next_review_at ASC, word ASC
		LIMIT $4
	`, vocabColumns)

	return s.queryEntries(ctx, query, learnerID, language, now, limit)
}

// ListTargets implements store.VocabStore.ListTargets
// It retrieves target-flagged entries ordered by their assigned target order.
func (s *PostgresVocabStore) ListTargets(
	ctx context.Context,
	learnerID uuid.UUID,
	language string,
	limit int,
) ([]*domain.VocabularyEntry, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM vocabulary_entries
		WHERE learner_id = $1 AND language = $2 AND is_target
		ORDER BY target_order ASC NULLS LAST, word ASC
		LIMIT $3
	`, vocabColumns)

	return s.queryEntries(ctx, query, learnerID, language, limit)
}

// CountDue implements store.VocabStore.CountDue
func (s *PostgresVocabStore) CountDue(
	ctx context.Context,
	learnerID uuid.UUID,
	language string,
	now time.Time,
) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT COUNT(*)
		FROM vocabulary_entries
		WHERE learner_id = $1 AND language = $2 AND next_review_at <= $3
	`

	var count int
	err := s.db.QueryRowContext(ctx, query, learnerID, language, now).Scan(&count)
	if err != nil {
		log.Error("failed to count due vocabulary entries",
			slog.String("error", err.Error()),
			slog.String("language", language))
		return 0, err
	}

	return count, nil
}

// Upsert implements store.VocabStore.Upsert
// It writes an entry, replacing any existing row with the same natural key.
// Returns validation errors from the domain VocabularyEntry if data is invalid.
func (s *PostgresVocabStore) Upsert(ctx context.Context, entry *domain.VocabularyEntry) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := entry.Validate(); err != nil {
		log.Warn("vocabulary entry validation failed during upsert",
			slog.String("error", err.Error()),
			slog.String("language", entry.Language),
			slog.String("word", entry.Word))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO vocabulary_entries (
			learner_id, language, word, step, interval_days, next_review_at,
			status, successful_reads, lookup_count, is_target, target_order,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (learner_id, language, word) DO UPDATE SET
			step = EXCLUDED.step,
			interval_days = EXCLUDED.interval_days,
			next_review_at = EXCLUDED.next_review_at,
			status = EXCLUDED.status,
			successful_reads = EXCLUDED.successful_reads,
			lookup_count = EXCLUDED.lookup_count,
			is_target = EXCLUDED.is_target,
			target_order = EXCLUDED.target_order,
			updated_at = EXCLUDED.updated_at
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		entry.LearnerID,
		entry.Language,
		entry.Word,
		entry.Step,
		entry.IntervalDays,
		entry.NextReviewAt,
		entry.Status,
		entry.SuccessfulReads,
		entry.LookupCount,
		entry.IsTarget,
		entry.TargetOrder,
		entry.CreatedAt,
		entry.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgCheckViolationCode {
			log.Warn("check constraint violation during vocabulary upsert",
				slog.String("error", err.Error()),
				slog.String("word", entry.Word))
			return fmt.Errorf("%w: %s", store.ErrInvalidEntity, pgErr.ConstraintName)
		}

		log.Error("failed to upsert vocabulary entry",
			slog.String("error", err.Error()),
			slog.String("language", entry.Language),
			slog.String("word", entry.Word))
		return err
	}

	log.Debug("vocabulary entry upserted",
		slog.String("language", entry.Language),
		slog.String("word", entry.Word),
		slog.Int("step", entry.Step))
	return nil
}

// Delete implements store.VocabStore.Delete
// It removes an entry by its natural key.
// Returns store.ErrVocabNotFound if the entry does not exist.
func (s *PostgresVocabStore) Delete(
	ctx context.Context,
	learnerID uuid.UUID,
	language, word string,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM vocabulary_entries
		WHERE learner_id = $1 AND language = $2 AND word = $3
	`

	result, err := s.db.ExecContext(ctx, query, learnerID, language, word)
	if err != nil {
		log.Error("failed to delete vocabulary entry",
			slog.String("error", err.Error()),
			slog.String("language", language),
			slog.String("word", word))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("word", word))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("vocabulary entry not found for delete",
			slog.String("language", language),
			slog.String("word", word))
		return store.ErrVocabNotFound
	}

	log.Debug("vocabulary entry deleted",
		slog.String("language", language),
		slog.String("word", word))
	return nil
}

// MaxTargetOrder implements store.VocabStore.MaxTargetOrder
// It returns the highest assigned target order, or 0 when no target words
// exist. Run inside the transaction that consumes the next order so the
// sequence survives restarts and concurrent batches.
func (s *PostgresVocabStore) MaxTargetOrder(
	ctx context.Context,
	learnerID uuid.UUID,
	language string,
) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT COALESCE(MAX(target_order), 0)
		FROM vocabulary_entries
		WHERE learner_id = $1 AND language = $2 AND is_target
	`

	var max int
	err := s.db.QueryRowContext(ctx, query, learnerID, language).Scan(&max)
	if err != nil {
		log.Error("failed to get max target order",
			slog.String("error", err.Error()),
			slog.String("language", language))
		return 0, err
	}

	return max, nil
}

// queryEntries runs a multi-row query and scans the results.
func (s *PostgresVocabStore) queryEntries(
	ctx context.Context,
	query string,
	args ...any,
) ([]*domain.VocabularyEntry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query vocabulary entries",
			slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var entries []*domain.VocabularyEntry
	for rows.Next() {
		entry, err := scanVocabEntry(rows)
		if err != nil {
			log.Error("failed to scan vocabulary entry row",
				slog.String("error", err.Error()))
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	if entries == nil {
		entries = []*domain.VocabularyEntry{}
	}

	return entries, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanVocabEntry scans one row in vocabColumns order.
func scanVocabEntry(row rowScanner) (*domain.VocabularyEntry, error) {
	var entry domain.VocabularyEntry
	var status string
	var targetOrder sql.NullInt64

	err := row.Scan(
		&entry.LearnerID,
		&entry.Language,
		&entry.Word,
		&entry.Step,
		&entry.IntervalDays,
		&entry.NextReviewAt,
		&status,
		&entry.SuccessfulReads,
		&entry.LookupCount,
		&entry.IsTarget,
		&targetOrder,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	entry.Status = domain.LearningStatus(status)
	if targetOrder.Valid {
		order := int(targetOrder.Int64)
		entry.TargetOrder = &order
	}

	return &entry, nil
}
