package store

import (
	"context"

	"github.com/Brendennago/Syntagma/internal/domain"
	"github.com/google/uuid"
)

// SessionStore defines the interface for reading session persistence.
// At most one session is retained per (learner, language).
type SessionStore interface {
	// Save writes the session, overwriting the learner's previous session
	// for the same language. It handles domain validation internally.
	Save(ctx context.Context, session *domain.ReadingSession) error

	// Load retrieves the latest session for the learner and language.
	// Returns ErrSessionNotFound if none has been saved.
	Load(ctx context.Context, learnerID uuid.UUID, language string) (*domain.ReadingSession, error)
}
