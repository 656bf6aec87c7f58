// Package translation defines the external translation provider boundary and
// its HTTP implementation. The provider is only consulted on a cache miss; the
// durable translation cache stays authoritative for repeat lookups.
package translation

import (
	"context"
	"errors"
)

// UnavailableText is the degraded translation returned to callers when the
// provider fails or times out. Word-state updates still commit; only the
// translation itself is sacrificed.
const UnavailableText = "Translation unavailable."

// Common errors returned by translation providers.
var (
	// ErrUnavailable is returned when the provider cannot be reached, times
	// out, or returns an unusable response.
	ErrUnavailable = errors.New("translation provider unavailable")

	// ErrEmptyWord is returned when the word to translate is empty.
	ErrEmptyWord = errors.New("word to translate cannot be empty")
)

// Provider defines the interface for resolving a single word's translation.
// Implementations must honor the context deadline; callers pass a short
// request-scoped timeout and degrade on expiry.
type Provider interface {
	// Translate returns the translation of word from sourceLang to
	// targetLang, or an error (usually ErrUnavailable) when it cannot.
	Translate(ctx context.Context, word, sourceLang, targetLang string) (string, error)
}
