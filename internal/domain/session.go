package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Session-specific validation errors
var (
	// ErrSessionLearnerEmpty is returned when a session's learner ID is empty or nil.
	ErrSessionLearnerEmpty = errors.New("reading session learner ID cannot be empty")

	// ErrSessionLanguageEmpty is returned when a session's language is empty.
	ErrSessionLanguageEmpty = errors.New("reading session language cannot be empty")

	// ErrSessionPassageEmpty is returned when a session's passage text is empty.
	ErrSessionPassageEmpty = errors.New("reading session passage text cannot be empty")
)

// ReadingSession holds the most recent passage a learner read in a language,
// together with the words they looked up while reading it. At most one session
// is retained per (learner, language); saving overwrites the previous one.
type ReadingSession struct {
	LearnerID     uuid.UUID `json:"learner_id"`
	Language      string    `json:"language"`
	PassageText   string    `json:"passage_text"`
	LookedUpWords []string  `json:"looked_up_words"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewReadingSession creates a session for the given learner and language.
// Looked-up words are normalized the same way vocabulary keys are.
func NewReadingSession(
	learnerID uuid.UUID,
	language, passageText string,
	lookedUpWords []string,
	now time.Time,
) (*ReadingSession, error) {
	words := make([]string, 0, len(lookedUpWords))
	for _, w := range lookedUpWords {
		if normalized := NormalizeWord(w); normalized != "" {
			words = append(words, normalized)
		}
	}

	session := &ReadingSession{
		LearnerID:     learnerID,
		Language:      language,
		PassageText:   passageText,
		LookedUpWords: words,
		UpdatedAt:     now,
	}

	if err := session.Validate(); err != nil {
		return nil, err
	}

	return session, nil
}

// Validate checks if the ReadingSession has valid data.
// Returns an error if any field fails validation.
func (s *ReadingSession) Validate() error {
	if s.LearnerID == uuid.Nil {
		return ErrSessionLearnerEmpty
	}

	if s.Language == "" {
		return ErrSessionLanguageEmpty
	}

	if s.PassageText == "" {
		return ErrSessionPassageEmpty
	}

	return nil
}
