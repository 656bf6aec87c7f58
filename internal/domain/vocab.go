package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LearningStatus represents where a word sits in its learning lifecycle.
type LearningStatus string

// Possible learning status values
const (
	StatusLearning LearningStatus = "learning"
	StatusLearned  LearningStatus = "learned"
)

// LearnedThreshold is the step at and above which a word counts as learned.
const LearnedThreshold = 6

// MaxStep is the highest position on the spaced-repetition ladder.
const MaxStep = 8

// Common validation errors for VocabularyEntry
var (
	ErrEmptyLearnerID   = errors.New("vocabulary entry learner ID cannot be empty")
	ErrEmptyLanguage    = errors.New("vocabulary entry language cannot be empty")
	ErrEmptyWord        = errors.New("vocabulary entry word cannot be empty")
	ErrInvalidStep      = errors.New("step must be between 0 and 8")
	ErrInvalidStatus    = errors.New("status must be learning or learned")
	ErrStatusStep       = errors.New("status learned requires step >= 6, learning requires step < 6")
	ErrNegativeCounters = errors.New("read and lookup counters cannot be negative")
	ErrOrphanOrder      = errors.New("target order requires the target flag")
)

// VocabularyEntry tracks a learner's progress on a single word in a target
// language. The (LearnerID, Language, Word) triple is the natural key; Word is
// always stored case-folded and trimmed.
type VocabularyEntry struct {
	LearnerID       uuid.UUID      `json:"learner_id"`
	Language        string         `json:"language"`
	Word            string         `json:"word"`
	Step            int            `json:"step"`
	IntervalDays    float64        `json:"interval_days"`
	NextReviewAt    time.Time      `json:"next_review_at"`
	Status          LearningStatus `json:"status"`
	SuccessfulReads int            `json:"successful_reads"`
	LookupCount     int            `json:"lookup_count"`
	IsTarget        bool           `json:"is_target"`
	TargetOrder     *int           `json:"target_order,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// NormalizeWord canonicalizes a word for use as a key: surrounding whitespace
// is dropped and the remainder is case-folded. An empty result means the input
// was not a usable word.
func NormalizeWord(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// StatusForStep derives the learning status from a ladder step.
// A word is learned iff its step has reached the learned threshold.
func StatusForStep(step int) LearningStatus {
	if step >= LearnedThreshold {
		return StatusLearned
	}
	return StatusLearning
}

// IsDue reports whether the entry is due for review at the given time.
func (e *VocabularyEntry) IsDue(now time.Time) bool {
	return !e.NextReviewAt.After(now)
}

// Clone returns a deep copy of the entry. Transition functions operate on
// copies so that callers can hold prior snapshots for undo.
func (e *VocabularyEntry) Clone() *VocabularyEntry {
	if e == nil {
		return nil
	}
	clone := *e
	if e.TargetOrder != nil {
		order := *e.TargetOrder
		clone.TargetOrder = &order
	}
	return &clone
}

// Validate checks if the VocabularyEntry has valid data.
// Returns an error if any field fails validation.
func (e *VocabularyEntry) Validate() error {
	if e.LearnerID == uuid.Nil {
		return ErrEmptyLearnerID
	}

	if e.Language == "" {
		return ErrEmptyLanguage
	}

	if e.Word == "" || e.Word != NormalizeWord(e.Word) {
		return ErrEmptyWord
	}

	if e.Step < 0 || e.Step > MaxStep {
		return ErrInvalidStep
	}

	if e.Status != StatusLearning && e.Status != StatusLearned {
		return ErrInvalidStatus
	}

	if e.Status != StatusForStep(e.Step) {
		return ErrStatusStep
	}

	if e.SuccessfulReads < 0 || e.LookupCount < 0 {
		return ErrNegativeCounters
	}

	if e.TargetOrder != nil && !e.IsTarget {
		return ErrOrphanOrder
	}

	return nil
}
