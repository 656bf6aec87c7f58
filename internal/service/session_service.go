package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Brendennago/Syntagma/internal/domain"
	"github.com/Brendennago/Syntagma/internal/store"
	"github.com/google/uuid"
)

// SessionService persists and restores the learner's in-progress reading
// session, one per (learner, language).
type SessionService struct {
	sessionStore store.SessionStore
	learnerID    uuid.UUID
	logger       *slog.Logger
}

// NewSessionService creates a SessionService with the given dependencies.
func NewSessionService(
	sessionStore store.SessionStore,
	learnerID uuid.UUID,
	log *slog.Logger,
) (*SessionService, error) {
	if sessionStore == nil {
		return nil, errors.New("session store cannot be nil")
	}
	if learnerID == uuid.Nil {
		return nil, errors.New("learner ID cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &SessionService{
		sessionStore: sessionStore,
		learnerID:    learnerID,
		logger:       log.With(slog.String("component", "session_service")),
	}, nil
}

// SaveSession replaces the stored session for the language. Looked-up words
// are normalized and deduplicated; saving always overwrites.
func (s *SessionService) SaveSession(
	ctx context.Context,
	language, passage string,
	lookedUpWords []string,
	ref time.Time,
) (*domain.ReadingSession, error) {
	session, err := domain.NewReadingSession(s.learnerID, language, passage, lookedUpWords, ref)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	if err := s.sessionStore.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return session, nil
}

// LoadSession returns the stored session for the language, or
// store.ErrSessionNotFound when none has been saved.
func (s *SessionService) LoadSession(
	ctx context.Context,
	language string,
) (*domain.ReadingSession, error) {
	session, err := s.sessionStore.Load(ctx, s.learnerID, language)
	if err != nil {
		return nil, err
	}
	return session, nil
}
