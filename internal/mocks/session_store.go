package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/Brendennago/Syntagma/internal/domain"
	"github.com/Brendennago/Syntagma/internal/store"
	"github.com/google/uuid"
)

// MockSessionStore implements store.SessionStore with an in-memory map.
type MockSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*domain.ReadingSession

	SaveFn func(ctx context.Context, session *domain.ReadingSession) error
	LoadFn func(ctx context.Context, learnerID uuid.UUID, language string) (*domain.ReadingSession, error)
}

// NewMockSessionStore creates an empty in-memory session store.
func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{sessions: make(map[string]*domain.ReadingSession)}
}

func sessionKey(learnerID uuid.UUID, language string) string {
	return fmt.Sprintf("%s|%s", learnerID, language)
}

// Save implements store.SessionStore.
func (m *MockSessionStore) Save(ctx context.Context, session *domain.ReadingSession) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, session)
	}
	if err := session.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *session
	copied.LookedUpWords = append([]string(nil), session.LookedUpWords...)
	m.sessions[sessionKey(session.LearnerID, session.Language)] = &copied
	return nil
}

// Load implements store.SessionStore.
func (m *MockSessionStore) Load(
	ctx context.Context,
	learnerID uuid.UUID,
	language string,
) (*domain.ReadingSession, error) {
	if m.LoadFn != nil {
		return m.LoadFn(ctx, learnerID, language)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[sessionKey(learnerID, language)]
	if !ok {
		return nil, store.ErrSessionNotFound
	}
	copied := *session
	copied.LookedUpWords = append([]string(nil), session.LookedUpWords...)
	return &copied, nil
}
