package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/Brendennago/Syntagma/internal/domain"
	"github.com/google/uuid"
)

// VocabStore defines the interface for vocabulary entry persistence.
type VocabStore interface {
	// Get retrieves an entry by its natural key. The word must already be
	// normalized. Returns ErrVocabNotFound if no entry exists.
	Get(ctx context.Context, learnerID uuid.UUID, language, word string) (*domain.VocabularyEntry, error)

	// List retrieves all entries for a learner and language ordered by
	// next_review_at ascending. Returns an empty slice when none exist.
	List(ctx context.Context, learnerID uuid.UUID, language string) ([]*domain.VocabularyEntry, error)

	// ListDue retrieves entries due at the given time, soonest first,
	// capped at limit.
	ListDue(ctx context.Context, learnerID uuid.UUID, language string, now time.Time, limit int) ([]*domain.VocabularyEntry, error)

	// ListTargets retrieves target-flagged entries ordered by target_order
	// ascending, capped at limit.
	ListTargets(ctx context.Context, learnerID uuid.UUID, language string, limit int) ([]*domain.VocabularyEntry, error)

	// CountDue reports how many entries are due at the given time.
	CountDue(ctx context.Context, learnerID uuid.UUID, language string, now time.Time) (int, error)

	// Upsert writes the entry, replacing any existing row with the same
	// natural key. It handles domain validation internally.
	Upsert(ctx context.Context, entry *domain.VocabularyEntry) error

	// Delete removes an entry by its natural key.
	// Returns ErrVocabNotFound if the entry does not exist.
	Delete(ctx context.Context, learnerID uuid.UUID, language, word string) error

	// MaxTargetOrder returns the highest target_order currently assigned for
	// the learner and language, or 0 when no target words exist. Callers
	// compute the next order as max+1 inside the same transaction as the
	// write that consumes it.
	MaxTargetOrder(ctx context.Context, learnerID uuid.UUID, language string) (int, error)

	// WithTx returns a new VocabStore instance that uses the provided transaction.
	// This allows for multiple operations to be executed within a single transaction.
	WithTx(tx *sql.Tx) VocabStore
}
