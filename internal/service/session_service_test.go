package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/Brendennago/Syntagma/internal/mocks"
	"github.com/Brendennago/Syntagma/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionService(t *testing.T) (*SessionService, *mocks.MockSessionStore) {
	t.Helper()
	sessionStore := mocks.NewMockSessionStore()
	svc, err := NewSessionService(sessionStore, testLearner, slog.Default())
	require.NoError(t, err)
	return svc, sessionStore
}

func TestSaveSessionOverwrites(t *testing.T) {
	t.Parallel()
	svc, _ := newSessionService(t)

	_, err := svc.SaveSession(context.Background(), "es", "Primer texto.", []string{"gato"}, testRef)
	require.NoError(t, err)

	saved, err := svc.SaveSession(context.Background(), "es", "Segundo texto.",
		[]string{" Perro ", ""}, testRef.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []string{"perro"}, saved.LookedUpWords, "words are normalized, blanks dropped")

	loaded, err := svc.LoadSession(context.Background(), "es")
	require.NoError(t, err)
	assert.Equal(t, "Segundo texto.", loaded.PassageText)
	assert.Equal(t, []string{"perro"}, loaded.LookedUpWords)
}

func TestSaveSessionRejectsEmptyPassage(t *testing.T) {
	t.Parallel()
	svc, _ := newSessionService(t)

	_, err := svc.SaveSession(context.Background(), "es", "", nil, testRef)
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
}

func TestLoadSessionMissing(t *testing.T) {
	t.Parallel()
	svc, _ := newSessionService(t)

	_, err := svc.LoadSession(context.Background(), "fr")
	assert.ErrorIs(t, err, store.ErrSessionNotFound)
}

func TestSessionsAreSeparatePerLanguage(t *testing.T) {
	t.Parallel()
	svc, _ := newSessionService(t)

	_, err := svc.SaveSession(context.Background(), "es", "Texto.", nil, testRef)
	require.NoError(t, err)
	_, err = svc.SaveSession(context.Background(), "fr", "Texte.", nil, testRef)
	require.NoError(t, err)

	es, err := svc.LoadSession(context.Background(), "es")
	require.NoError(t, err)
	fr, err := svc.LoadSession(context.Background(), "fr")
	require.NoError(t, err)

	assert.Equal(t, "Texto.", es.PassageText)
	assert.Equal(t, "Texte.", fr.PassageText)
}
