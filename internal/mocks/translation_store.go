package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/Brendennago/Syntagma/internal/store"
)

// MockTranslationStore implements store.TranslationStore with an in-memory map.
type MockTranslationStore struct {
	mu      sync.Mutex
	entries map[string]string

	GetFn func(ctx context.Context, word, sourceLang, targetLang string) (string, error)
	PutFn func(ctx context.Context, word, sourceLang, targetLang, translation string) error

	GetCount int
	PutCount int
}

// NewMockTranslationStore creates an empty in-memory translation cache.
func NewMockTranslationStore() *MockTranslationStore {
	return &MockTranslationStore{entries: make(map[string]string)}
}

func translationKey(word, sourceLang, targetLang string) string {
	return fmt.Sprintf("%s|%s|%s", word, sourceLang, targetLang)
}

// Seed inserts cached translations directly, bypassing any overrides.
func (m *MockTranslationStore) Seed(word, sourceLang, targetLang, translation string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[translationKey(word, sourceLang, targetLang)] = translation
}

// Cached returns the stored translation and whether it exists.
func (m *MockTranslationStore) Cached(word, sourceLang, targetLang string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.entries[translationKey(word, sourceLang, targetLang)]
	return v, ok
}

// Get implements store.TranslationStore.
func (m *MockTranslationStore) Get(ctx context.Context, word, sourceLang, targetLang string) (string, error) {
	m.mu.Lock()
	m.GetCount++
	m.mu.Unlock()
	if m.GetFn != nil {
		return m.GetFn(ctx, word, sourceLang, targetLang)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	translation, ok := m.entries[translationKey(word, sourceLang, targetLang)]
	if !ok {
		return "", store.ErrTranslationNotFound
	}
	return translation, nil
}

// Put implements store.TranslationStore.
func (m *MockTranslationStore) Put(ctx context.Context, word, sourceLang, targetLang, translation string) error {
	m.mu.Lock()
	m.PutCount++
	m.mu.Unlock()
	if m.PutFn != nil {
		return m.PutFn(ctx, word, sourceLang, targetLang, translation)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[translationKey(word, sourceLang, targetLang)] = translation
	return nil
}
