package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Brendennago/Syntagma/internal/domain"
	"github.com/Brendennago/Syntagma/internal/generation"
	"github.com/Brendennago/Syntagma/internal/platform/logger"
	"github.com/Brendennago/Syntagma/internal/store"
	"github.com/google/uuid"
)

// Word-selection limits for passage generation. A reading with more review
// words than maxReviewWords stops being a passage and becomes a word list.
const (
	maxReviewWords      = 60
	targetWordsSparse   = 30
	targetWordsDense    = 15
	sparseDueThreshold  = 30
	reinforceDueMinimum = 60
)

// PassageService selects the words a generated passage should exercise and
// drives the generation provider. Glossary entries for selected target words
// are written through to the translation cache on success.
type PassageService struct {
	vocabStore       store.VocabStore
	translationStore store.TranslationStore
	generator        generation.Generator
	learnerID        uuid.UUID
	nativeLanguage   string
	logger           *slog.Logger
}

// NewPassageService creates a PassageService with the given dependencies.
func NewPassageService(
	vocabStore store.VocabStore,
	translationStore store.TranslationStore,
	generator generation.Generator,
	learnerID uuid.UUID,
	nativeLanguage string,
	log *slog.Logger,
) (*PassageService, error) {
	if vocabStore == nil {
		return nil, errors.New("vocab store cannot be nil")
	}
	if translationStore == nil {
		return nil, errors.New("translation store cannot be nil")
	}
	if generator == nil {
		return nil, errors.New("generator cannot be nil")
	}
	if learnerID == uuid.Nil {
		return nil, errors.New("learner ID cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PassageService{
		vocabStore:       vocabStore,
		translationStore: translationStore,
		generator:        generator,
		learnerID:        learnerID,
		nativeLanguage:   nativeLanguage,
		logger:           log.With(slog.String("component", "passage_service")),
	}, nil
}

// GeneratePassage selects review and target words for the language at the
// reference time and asks the generator for a passage. When few words are
// due, more target words are worked in and the passage introduces them; once
// the review load is heavy the passage reinforces instead.
func (s *PassageService) GeneratePassage(
	ctx context.Context,
	language, level string,
	ref time.Time,
) (*generation.PassageResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	due, err := s.vocabStore.ListDue(ctx, s.learnerID, language, ref, maxReviewWords)
	if err != nil {
		return nil, fmt.Errorf("failed to list due entries: %w", err)
	}

	targetLimit := targetWordsDense
	if len(due) < sparseDueThreshold {
		targetLimit = targetWordsSparse
	}

	targetEntries, err := s.vocabStore.ListTargets(ctx, s.learnerID, language, targetLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list target entries: %w", err)
	}
	targets := wordsOf(targetEntries)

	mode := generation.ModeReinforcement
	if len(due) < reinforceDueMinimum {
		mode = generation.ModeIntroduction
	}

	params := generation.PromptParams{
		Language:       language,
		Level:          level,
		Mode:           mode,
		ReviewWords:    wordsOf(due),
		TargetWords:    targets,
		NativeLanguage: s.nativeLanguage,
	}

	result, err := s.generator.GeneratePassage(ctx, params)
	if err != nil {
		return nil, err
	}

	cached := s.cacheGlossary(ctx, result.Glossary, targets, language)

	log.Info("passage generated",
		slog.String("language", language),
		slog.String("mode", string(mode)),
		slog.Int("review_words", len(due)),
		slog.Int("target_words", len(targets)),
		slog.Int("glossary_cached", cached))

	return result, nil
}

// cacheGlossary writes through glossary entries that match a selected target
// word, comparing case-insensitively. Entries for words the generator chose
// on its own are discarded. Returns the number of entries cached.
func (s *PassageService) cacheGlossary(
	ctx context.Context,
	glossary []generation.GlossaryEntry,
	targets []string,
	language string,
) int {
	log := logger.FromContextOrDefault(ctx, s.logger)

	selected := make(map[string]struct{}, len(targets))
	for _, t := range targets {
		selected[strings.ToLower(t)] = struct{}{}
	}

	cached := 0
	for _, entry := range glossary {
		word := domain.NormalizeWord(entry.Word)
		if _, ok := selected[word]; !ok {
			continue
		}
		if entry.Translation == "" {
			continue
		}
		if err := s.translationStore.Put(ctx, word, language, s.nativeLanguage, entry.Translation); err != nil {
			log.Error("glossary cache write failed",
				slog.String("error", err.Error()),
				slog.String("word", word))
			continue
		}
		cached++
	}
	return cached
}

func wordsOf(entries []*domain.VocabularyEntry) []string {
	words := make([]string, 0, len(entries))
	for _, e := range entries {
		words = append(words, e.Word)
	}
	return words
}
