package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNormalizeWord(t *testing.T) {
	t.Parallel() // Enable parallel execution

	testCases := []struct {
		input    string
		expected string
	}{
		{"Gato", "gato"},
		{"  perro  ", "perro"},
		{"\tCASA\n", "casa"},
		{"  ", ""},
		{"", ""},
	}

	for _, tc := range testCases {
		if got := NormalizeWord(tc.input); got != tc.expected {
			t.Errorf("NormalizeWord(%q): expected %q, got %q", tc.input, tc.expected, got)
		}
	}
}

func TestStatusForStep(t *testing.T) {
	t.Parallel() // Enable parallel execution

	for step := 0; step <= MaxStep; step++ {
		expected := StatusLearning
		if step >= LearnedThreshold {
			expected = StatusLearned
		}
		if got := StatusForStep(step); got != expected {
			t.Errorf("StatusForStep(%d): expected %s, got %s", step, expected, got)
		}
	}
}

func TestVocabularyEntryClone(t *testing.T) {
	t.Parallel() // Enable parallel execution

	order := 5
	original := &VocabularyEntry{
		LearnerID:   uuid.New(),
		Language:    "es",
		Word:        "gato",
		Step:        3,
		IsTarget:    true,
		TargetOrder: &order,
	}

	clone := original.Clone()
	*clone.TargetOrder = 9
	clone.Step = 0

	if original.Step != 3 {
		t.Errorf("Expected clone mutation not to touch the original step, got %d", original.Step)
	}
	if *original.TargetOrder != 5 {
		t.Errorf("Expected deep-copied target order 5, got %d", *original.TargetOrder)
	}

	var nilEntry *VocabularyEntry
	if nilEntry.Clone() != nil {
		t.Error("Expected nil.Clone() to be nil")
	}
}

func TestVocabularyEntryIsDue(t *testing.T) {
	t.Parallel() // Enable parallel execution

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	entry := &VocabularyEntry{NextReviewAt: now}
	if !entry.IsDue(now) {
		t.Error("Expected entry due exactly at its review time")
	}

	entry.NextReviewAt = now.Add(time.Second)
	if entry.IsDue(now) {
		t.Error("Expected entry not due before its review time")
	}
}

func TestVocabularyEntryValidate(t *testing.T) {
	t.Parallel() // Enable parallel execution

	valid := func() *VocabularyEntry {
		return &VocabularyEntry{
			LearnerID:    uuid.New(),
			Language:     "es",
			Word:         "gato",
			Step:         3,
			NextReviewAt: time.Now(),
			Status:       StatusLearning,
		}
	}

	testCases := []struct {
		name     string
		mutate   func(*VocabularyEntry)
		expected error
	}{
		{
			name:     "valid entry passes",
			mutate:   func(e *VocabularyEntry) {},
			expected: nil,
		},
		{
			name:     "nil learner rejected",
			mutate:   func(e *VocabularyEntry) { e.LearnerID = uuid.Nil },
			expected: ErrEmptyLearnerID,
		},
		{
			name:     "empty language rejected",
			mutate:   func(e *VocabularyEntry) { e.Language = "" },
			expected: ErrEmptyLanguage,
		},
		{
			name:     "unnormalized word rejected",
			mutate:   func(e *VocabularyEntry) { e.Word = "Gato" },
			expected: ErrEmptyWord,
		},
		{
			name:     "step above ladder rejected",
			mutate:   func(e *VocabularyEntry) { e.Step = 9 },
			expected: ErrInvalidStep,
		},
		{
			name:     "negative step rejected",
			mutate:   func(e *VocabularyEntry) { e.Step = -1 },
			expected: ErrInvalidStep,
		},
		{
			name: "learned status requires the threshold step",
			mutate: func(e *VocabularyEntry) {
				e.Step = 2
				e.Status = StatusLearned
			},
			expected: ErrStatusStep,
		},
		{
			name: "learning status above the threshold rejected",
			mutate: func(e *VocabularyEntry) {
				e.Step = 7
				e.Status = StatusLearning
			},
			expected: ErrStatusStep,
		},
		{
			name:     "negative counters rejected",
			mutate:   func(e *VocabularyEntry) { e.LookupCount = -1 },
			expected: ErrNegativeCounters,
		},
		{
			name: "target order without target flag rejected",
			mutate: func(e *VocabularyEntry) {
				order := 1
				e.TargetOrder = &order
				e.IsTarget = false
			},
			expected: ErrOrphanOrder,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			entry := valid()
			tc.mutate(entry)
			if err := entry.Validate(); err != tc.expected {
				t.Errorf("Expected error %v, got %v", tc.expected, err)
			}
		})
	}
}

func TestNewReadingSession(t *testing.T) {
	t.Parallel() // Enable parallel execution

	learnerID := uuid.New()
	now := time.Now()

	session, err := NewReadingSession(learnerID, "es", "El gato duerme.", []string{" Gato ", "", "duerme"}, now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(session.LookedUpWords) != 2 {
		t.Fatalf("Expected 2 normalized words, got %v", session.LookedUpWords)
	}
	if session.LookedUpWords[0] != "gato" || session.LookedUpWords[1] != "duerme" {
		t.Errorf("Expected normalized words, got %v", session.LookedUpWords)
	}

	if _, err := NewReadingSession(learnerID, "es", "", nil, now); err != ErrSessionPassageEmpty {
		t.Errorf("Expected %v for empty passage, got %v", ErrSessionPassageEmpty, err)
	}
	if _, err := NewReadingSession(uuid.Nil, "es", "texto", nil, now); err != ErrSessionLearnerEmpty {
		t.Errorf("Expected %v for nil learner, got %v", ErrSessionLearnerEmpty, err)
	}
}
