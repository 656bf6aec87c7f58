package mocks

import (
	"context"
	"sync"

	"github.com/Brendennago/Syntagma/internal/translation"
)

// MockProvider implements translation.Provider for testing.
type MockProvider struct {
	TranslateFn func(ctx context.Context, word, sourceLang, targetLang string) (string, error)

	// Default response values used when TranslateFn is nil.
	Translation string
	Err         error

	// Call tracking for verification
	TranslateCalls struct {
		mu    sync.Mutex
		Count int
		Words []string
	}
}

// Translate implements the translation.Provider interface.
func (m *MockProvider) Translate(ctx context.Context, word, sourceLang, targetLang string) (string, error) {
	m.TranslateCalls.mu.Lock()
	m.TranslateCalls.Count++
	m.TranslateCalls.Words = append(m.TranslateCalls.Words, word)
	m.TranslateCalls.mu.Unlock()

	if m.TranslateFn != nil {
		return m.TranslateFn(ctx, word, sourceLang, targetLang)
	}
	return m.Translation, m.Err
}

var _ translation.Provider = (*MockProvider)(nil)
