package store

import "context"

// TranslationStore defines the interface for the durable translation cache.
// Entries are keyed by (word, source language, target language) and are only
// ever replaced, never explicitly deleted.
type TranslationStore interface {
	// Get retrieves a cached translation.
	// Returns ErrTranslationNotFound on a cache miss.
	Get(ctx context.Context, word, sourceLang, targetLang string) (string, error)

	// Put stores a translation, unconditionally overwriting any existing
	// value for the same key.
	Put(ctx context.Context, word, sourceLang, targetLang, translation string) error
}
