package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Brendennago/Syntagma/internal/domain"
	"github.com/Brendennago/Syntagma/internal/domain/progress"
	"github.com/Brendennago/Syntagma/internal/platform/logger"
	"github.com/Brendennago/Syntagma/internal/store"
	"github.com/Brendennago/Syntagma/internal/translation"
	"github.com/google/uuid"
)

// BulkActionType selects what a bulk action does to each word.
type BulkActionType string

// Possible bulk action values
const (
	BulkActionDelete BulkActionType = "delete"
	BulkActionReset  BulkActionType = "reset"
)

// EntryWithDue is a vocabulary entry annotated with its derived due state.
type EntryWithDue struct {
	*domain.VocabularyEntry
	IsDue bool `json:"is_due"`
}

// LookupResult is the outcome of a word lookup: the resolved translation and
// the state snapshot from before the lookup, which callers hold for undo.
// A nil Prior means the lookup created the entry.
type LookupResult struct {
	Translation string
	Prior       *domain.VocabularyEntry
}

// ImportOptions mirrors progress.ImportOptions at the service boundary.
type ImportOptions = progress.ImportOptions

// VocabService coordinates vocabulary progress transitions. Every multi-word
// operation runs as one all-or-nothing transaction with a single shared
// reference time, and words within a batch are applied sequentially so a
// duplicate word observes the effect of its first occurrence.
type VocabService struct {
	db               *sql.DB
	vocabStore       store.VocabStore
	translationStore store.TranslationStore
	provider         translation.Provider
	learnerID        uuid.UUID
	nativeLanguage   string
	logger           *slog.Logger

	// runTx executes a function inside a database transaction. Tests swap
	// in a pass-through so operations run against in-memory stores.
	runTx func(ctx context.Context, db *sql.DB, fn store.TxFn) error
}

// NewVocabService creates a VocabService with the given dependencies.
func NewVocabService(
	db *sql.DB,
	vocabStore store.VocabStore,
	translationStore store.TranslationStore,
	provider translation.Provider,
	learnerID uuid.UUID,
	nativeLanguage string,
	log *slog.Logger,
) (*VocabService, error) {
	if db == nil {
		return nil, errors.New("db cannot be nil")
	}
	if vocabStore == nil {
		return nil, errors.New("vocab store cannot be nil")
	}
	if translationStore == nil {
		return nil, errors.New("translation store cannot be nil")
	}
	if provider == nil {
		return nil, errors.New("translation provider cannot be nil")
	}
	if learnerID == uuid.Nil {
		return nil, errors.New("learner ID cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &VocabService{
		db:               db,
		vocabStore:       vocabStore,
		translationStore: translationStore,
		provider:         provider,
		learnerID:        learnerID,
		nativeLanguage:   nativeLanguage,
		logger:           log.With(slog.String("component", "vocab_service")),
		runTx:            store.RunInTransaction,
	}, nil
}

// GetVocabularyList returns all entries for the language ordered by next
// review time, each annotated with whether it is due at the reference time.
func (s *VocabService) GetVocabularyList(
	ctx context.Context,
	language string,
	ref time.Time,
) ([]EntryWithDue, error) {
	entries, err := s.vocabStore.List(ctx, s.learnerID, language)
	if err != nil {
		return nil, fmt.Errorf("failed to list vocabulary: %w", err)
	}

	annotated := make([]EntryWithDue, 0, len(entries))
	for _, entry := range entries {
		annotated = append(annotated, EntryWithDue{
			VocabularyEntry: entry,
			IsDue:           entry.IsDue(ref),
		})
	}

	return annotated, nil
}

// LookupWord applies the lookup transition and resolves the word's
// translation. The state change commits in its own transaction before the
// cache and provider are consulted; a provider failure degrades the
// translation to a sentinel without affecting word state.
func (s *VocabService) LookupWord(
	ctx context.Context,
	word, language string,
	ref time.Time,
) (*LookupResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	normalized := domain.NormalizeWord(word)
	if normalized == "" {
		return nil, ErrEmptyWord
	}

	var prior *domain.VocabularyEntry
	err := s.runTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		vocab := s.vocabStore.WithTx(tx)

		current, err := s.getOrNil(ctx, vocab, language, normalized)
		if err != nil {
			return err
		}
		prior = current

		next := progress.ApplyLookup(current, s.learnerID, language, normalized, ref)
		return vocab.Upsert(ctx, next)
	})
	if err != nil {
		return nil, err
	}

	log.Debug("lookup transition committed",
		slog.String("language", language),
		slog.String("word", normalized),
		slog.Bool("created", prior == nil))

	return &LookupResult{
		Translation: s.resolveTranslation(ctx, normalized, language),
		Prior:       prior,
	}, nil
}

// UndoLookup restores the snapshot taken before a lookup. A nil snapshot
// means the lookup created the entry, so the entry is deleted.
func (s *VocabService) UndoLookup(
	ctx context.Context,
	word, language string,
	prior *domain.VocabularyEntry,
	ref time.Time,
) error {
	normalized := domain.NormalizeWord(word)
	if normalized == "" {
		return ErrEmptyWord
	}

	if prior != nil && (prior.Word != normalized || prior.Language != language) {
		return ErrSnapshotMismatch
	}

	return s.runTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		vocab := s.vocabStore.WithTx(tx)

		restored := progress.ApplyUndoLookup(prior, ref)
		if restored == nil {
			err := vocab.Delete(ctx, s.learnerID, language, normalized)
			if errors.Is(err, store.ErrVocabNotFound) {
				// The lookup's entry is already gone; undo is idempotent.
				return nil
			}
			return err
		}
		return vocab.Upsert(ctx, restored)
	})
}

// PassWordsBatch applies the pass transition to each word under one batch
// transaction. Blank words are skipped; unchanged entries are not rewritten.
func (s *VocabService) PassWordsBatch(
	ctx context.Context,
	words []string,
	language string,
	ref time.Time,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	normalized := normalizeBatch(words)
	if len(normalized) == 0 {
		return ErrNoWords
	}

	err := s.runTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		vocab := s.vocabStore.WithTx(tx)

		for _, word := range normalized {
			current, err := s.getOrNil(ctx, vocab, language, word)
			if err != nil {
				return err
			}

			next, changed := progress.ApplyPass(current, s.learnerID, language, word, ref)
			if !changed {
				continue
			}
			if err := vocab.Upsert(ctx, next); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info("pass batch committed",
		slog.String("language", language),
		slog.Int("words", len(normalized)))
	return nil
}

// BulkAction deletes or resets each word under one batch transaction.
// Words that no longer exist are skipped rather than failing the batch.
func (s *VocabService) BulkAction(
	ctx context.Context,
	words []string,
	action BulkActionType,
	language string,
	ref time.Time,
) error {
	if action != BulkActionDelete && action != BulkActionReset {
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	normalized := normalizeBatch(words)
	if len(normalized) == 0 {
		return ErrNoWords
	}

	return s.runTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		vocab := s.vocabStore.WithTx(tx)

		for _, word := range normalized {
			switch action {
			case BulkActionDelete:
				err := vocab.Delete(ctx, s.learnerID, language, word)
				if err != nil && !errors.Is(err, store.ErrVocabNotFound) {
					return err
				}
			case BulkActionReset:
				current, err := s.getOrNil(ctx, vocab, language, word)
				if err != nil {
					return err
				}
				if current == nil {
					continue
				}
				if err := vocab.Upsert(ctx, progress.ApplyReset(current, ref)); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// ResetWord deletes or resets a single word. Unlike the bulk variant, a
// missing word surfaces as store.ErrVocabNotFound.
func (s *VocabService) ResetWord(
	ctx context.Context,
	word string,
	action BulkActionType,
	language string,
	ref time.Time,
) error {
	if action != BulkActionDelete && action != BulkActionReset {
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	normalized := domain.NormalizeWord(word)
	if normalized == "" {
		return ErrEmptyWord
	}

	return s.runTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		vocab := s.vocabStore.WithTx(tx)

		if action == BulkActionDelete {
			return vocab.Delete(ctx, s.learnerID, language, normalized)
		}

		current, err := vocab.Get(ctx, s.learnerID, language, normalized)
		if err != nil {
			return err
		}
		return vocab.Upsert(ctx, progress.ApplyReset(current, ref))
	})
}

// ImportWords upserts each word under one batch transaction. Target orders
// are assigned from max+1 inside the same transaction, strictly increasing
// across the batch and never reassigned to a word that already has one.
func (s *VocabService) ImportWords(
	ctx context.Context,
	words []string,
	language string,
	opts ImportOptions,
	ref time.Time,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	normalized := normalizeBatch(words)
	if len(normalized) == 0 {
		return ErrNoWords
	}

	err := s.runTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		vocab := s.vocabStore.WithTx(tx)

		nextOrder := 0
		if opts.MakeTargetList {
			maxOrder, err := vocab.MaxTargetOrder(ctx, s.learnerID, language)
			if err != nil {
				return err
			}
			nextOrder = maxOrder + 1
		}

		for _, word := range normalized {
			current, err := s.getOrNil(ctx, vocab, language, word)
			if err != nil {
				return err
			}

			next, orderConsumed := progress.ApplyImport(
				current, s.learnerID, language, word, opts, nextOrder, ref)
			if err := vocab.Upsert(ctx, next); err != nil {
				return err
			}
			if orderConsumed {
				nextOrder++
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info("import batch committed",
		slog.String("language", language),
		slog.Int("words", len(normalized)),
		slog.Bool("make_target_list", opts.MakeTargetList),
		slog.Bool("make_due_now", opts.MakeDueNow))
	return nil
}

// resolveTranslation answers from the cache when possible and falls back to
// the external provider, writing successful results through. Provider calls
// happen strictly outside word-state transactions; on failure the sentinel
// text is returned and nothing is cached.
func (s *VocabService) resolveTranslation(ctx context.Context, word, language string) string {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cached, err := s.translationStore.Get(ctx, word, language, s.nativeLanguage)
	if err == nil {
		return cached
	}
	if !errors.Is(err, store.ErrTranslationNotFound) {
		log.Error("translation cache read failed",
			slog.String("error", err.Error()),
			slog.String("word", word))
	}

	translated, err := s.provider.Translate(ctx, word, language, s.nativeLanguage)
	if err != nil {
		log.Warn("translation degraded to sentinel",
			slog.String("error", err.Error()),
			slog.String("word", word))
		return translation.UnavailableText
	}

	// A failed cache write just means the next lookup pays for the provider
	// again; the translation itself is still returned.
	if err := s.translationStore.Put(ctx, word, language, s.nativeLanguage, translated); err != nil {
		log.Error("translation cache write failed",
			slog.String("error", err.Error()),
			slog.String("word", word))
	}

	return translated
}

// getOrNil reads an entry, mapping not-found to nil for the transition engine.
func (s *VocabService) getOrNil(
	ctx context.Context,
	vocab store.VocabStore,
	language, word string,
) (*domain.VocabularyEntry, error) {
	entry, err := vocab.Get(ctx, s.learnerID, language, word)
	if errors.Is(err, store.ErrVocabNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// normalizeBatch canonicalizes a word list, silently dropping words that are
// empty after trimming. Duplicates are preserved; within one batch the second
// occurrence must observe the first one's transition.
func normalizeBatch(words []string) []string {
	normalized := make([]string, 0, len(words))
	for _, word := range words {
		if w := domain.NormalizeWord(word); w != "" {
			normalized = append(normalized, w)
		}
	}
	return normalized
}
