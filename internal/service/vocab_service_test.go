package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/Brendennago/Syntagma/internal/domain"
	"github.com/Brendennago/Syntagma/internal/domain/progress"
	"github.com/Brendennago/Syntagma/internal/mocks"
	"github.com/Brendennago/Syntagma/internal/store"
	"github.com/Brendennago/Syntagma/internal/translation"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testLearner = uuid.MustParse("aaaaaaaa-bbbb-4ccc-8ddd-eeeeeeeeeeee")
	testRef     = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
)

// rollbackTx emulates transactional rollback against the in-memory store:
// on error the store is restored to its pre-transaction contents.
func rollbackTx(vs *mocks.MockVocabStore) func(ctx context.Context, db *sql.DB, fn store.TxFn) error {
	return func(ctx context.Context, db *sql.DB, fn store.TxFn) error {
		snapshot := vs.Snapshot()
		if err := fn(ctx, nil); err != nil {
			vs.Restore(snapshot)
			return err
		}
		return nil
	}
}

type vocabFixture struct {
	svc        *VocabService
	vocabStore *mocks.MockVocabStore
	cache      *mocks.MockTranslationStore
	provider   *mocks.MockProvider
}

func newVocabFixture() *vocabFixture {
	vs := mocks.NewMockVocabStore()
	cache := mocks.NewMockTranslationStore()
	provider := &mocks.MockProvider{Translation: "cat"}

	svc := &VocabService{
		vocabStore:       vs,
		translationStore: cache,
		provider:         provider,
		learnerID:        testLearner,
		nativeLanguage:   "en",
		logger:           slog.Default(),
		runTx:            rollbackTx(vs),
	}
	return &vocabFixture{svc: svc, vocabStore: vs, cache: cache, provider: provider}
}

func dueEntry(word string, step int, ref time.Time) *domain.VocabularyEntry {
	return &domain.VocabularyEntry{
		LearnerID:    testLearner,
		Language:     "es",
		Word:         word,
		Step:         step,
		IntervalDays: progress.IntervalDays(step),
		NextReviewAt: ref.Add(-time.Minute),
		Status:       domain.StatusForStep(step),
		CreatedAt:    ref.Add(-time.Hour),
		UpdatedAt:    ref.Add(-time.Hour),
	}
}

func TestLookupWordCreatesEntry(t *testing.T) {
	t.Parallel()
	f := newVocabFixture()

	result, err := f.svc.LookupWord(context.Background(), " Gato ", "es", testRef)
	require.NoError(t, err)

	assert.Equal(t, "cat", result.Translation)
	assert.Nil(t, result.Prior, "a created entry has no prior snapshot")

	entry, err := f.vocabStore.Get(context.Background(), testLearner, "es", "gato")
	require.NoError(t, err)
	assert.Equal(t, 0, entry.Step)
	assert.Equal(t, 1, entry.LookupCount)
	assert.True(t, entry.IsDue(testRef))

	cached, ok := f.cache.Cached("gato", "es", "en")
	assert.True(t, ok, "successful translation should be cached")
	assert.Equal(t, "cat", cached)
}

func TestLookupWordResetsExistingEntry(t *testing.T) {
	t.Parallel()
	f := newVocabFixture()
	f.vocabStore.Seed(dueEntry("gato", 7, testRef))

	result, err := f.svc.LookupWord(context.Background(), "gato", "es", testRef)
	require.NoError(t, err)

	require.NotNil(t, result.Prior)
	assert.Equal(t, 7, result.Prior.Step, "prior snapshot keeps the pre-lookup state")

	entry, err := f.vocabStore.Get(context.Background(), testLearner, "es", "gato")
	require.NoError(t, err)
	assert.Equal(t, 0, entry.Step)
	assert.Equal(t, domain.StatusLearning, entry.Status)
}

func TestLookupWordEmptyWord(t *testing.T) {
	t.Parallel()
	f := newVocabFixture()

	_, err := f.svc.LookupWord(context.Background(), "   ", "es", testRef)
	assert.ErrorIs(t, err, ErrEmptyWord)
}

func TestLookupReadThroughCache(t *testing.T) {
	t.Parallel()
	f := newVocabFixture()

	_, err := f.svc.LookupWord(context.Background(), "gato", "es", testRef)
	require.NoError(t, err)
	_, err = f.svc.LookupWord(context.Background(), "gato", "es", testRef.Add(time.Minute))
	require.NoError(t, err)

	assert.Equal(t, 1, f.provider.TranslateCalls.Count,
		"second lookup should be served from the cache")
}

func TestLookupProviderFailureDegradesToSentinel(t *testing.T) {
	t.Parallel()
	f := newVocabFixture()
	f.provider.Translation = ""
	f.provider.Err = translation.ErrUnavailable

	result, err := f.svc.LookupWord(context.Background(), "gato", "es", testRef)
	require.NoError(t, err, "a provider failure must not fail the lookup")

	assert.Equal(t, translation.UnavailableText, result.Translation)

	// The word-state transition still committed.
	entry, err := f.vocabStore.Get(context.Background(), testLearner, "es", "gato")
	require.NoError(t, err)
	assert.Equal(t, 1, entry.LookupCount)

	// Failures are never cached.
	_, ok := f.cache.Cached("gato", "es", "en")
	assert.False(t, ok)
}

func TestUndoLookupRestoresSnapshot(t *testing.T) {
	t.Parallel()
	f := newVocabFixture()
	f.vocabStore.Seed(dueEntry("gato", 6, testRef))

	result, err := f.svc.LookupWord(context.Background(), "gato", "es", testRef)
	require.NoError(t, err)

	err = f.svc.UndoLookup(context.Background(), "gato", "es", result.Prior, testRef.Add(time.Second))
	require.NoError(t, err)

	entry, err := f.vocabStore.Get(context.Background(), testLearner, "es", "gato")
	require.NoError(t, err)
	assert.Equal(t, 6, entry.Step)
	assert.Equal(t, domain.StatusLearned, entry.Status)
}

func TestUndoLookupDeletesCreatedEntry(t *testing.T) {
	t.Parallel()
	f := newVocabFixture()

	result, err := f.svc.LookupWord(context.Background(), "gato", "es", testRef)
	require.NoError(t, err)
	require.Nil(t, result.Prior)

	err = f.svc.UndoLookup(context.Background(), "gato", "es", nil, testRef)
	require.NoError(t, err)

	_, err = f.vocabStore.Get(context.Background(), testLearner, "es", "gato")
	assert.ErrorIs(t, err, store.ErrVocabNotFound)
}

func TestUndoLookupSnapshotMismatch(t *testing.T) {
	t.Parallel()
	f := newVocabFixture()

	snapshot := dueEntry("perro", 3, testRef)
	err := f.svc.UndoLookup(context.Background(), "gato", "es", snapshot, testRef)
	assert.ErrorIs(t, err, ErrSnapshotMismatch)
}

// The canonical lookup-then-read flow: a looked-up word starts at the bottom
// and earns one step when it is next read in a passage.
func TestLookupThenPassScenario(t *testing.T) {
	t.Parallel()
	f := newVocabFixture()

	_, err := f.svc.LookupWord(context.Background(), "gato", "es", testRef)
	require.NoError(t, err)

	err = f.svc.PassWordsBatch(context.Background(), []string{"gato"}, "es", testRef.Add(time.Minute))
	require.NoError(t, err)

	entry, err := f.vocabStore.Get(context.Background(), testLearner, "es", "gato")
	require.NoError(t, err)
	assert.Equal(t, 1, entry.Step)
	assert.Equal(t, 1, entry.SuccessfulReads)
	assert.Equal(t, domain.StatusLearning, entry.Status)
}

// A target-list word read without a lookup jumps straight to mastery.
func TestImportThenPassScenario(t *testing.T) {
	t.Parallel()
	f := newVocabFixture()

	err := f.svc.ImportWords(context.Background(), []string{"perro"}, "es",
		ImportOptions{MakeTargetList: true}, testRef)
	require.NoError(t, err)

	err = f.svc.PassWordsBatch(context.Background(), []string{"perro"}, "es", testRef.Add(time.Hour))
	require.NoError(t, err)

	entry, err := f.vocabStore.Get(context.Background(), testLearner, "es", "perro")
	require.NoError(t, err)
	assert.Equal(t, domain.MaxStep, entry.Step)
	assert.Equal(t, domain.StatusLearned, entry.Status)
	assert.False(t, entry.IsTarget)
	assert.Nil(t, entry.TargetOrder)
}

func TestPassWordsBatchAtomicity(t *testing.T) {
	t.Parallel()
	f := newVocabFixture()
	f.vocabStore.Seed(dueEntry("gato", 1, testRef), dueEntry("perro", 2, testRef))

	boom := errors.New("disk full")
	calls := 0
	f.vocabStore.UpsertFn = func(ctx context.Context, entry *domain.VocabularyEntry) error {
		calls++
		if calls >= 2 {
			return boom
		}
		f.vocabStore.Seed(entry) // first write lands before the failure
		return nil
	}

	err := f.svc.PassWordsBatch(context.Background(), []string{"gato", "perro"}, "es", testRef)
	require.ErrorIs(t, err, boom)

	// The first word's write must have been rolled back with the batch.
	entry, err := f.vocabStore.Get(context.Background(), testLearner, "es", "gato")
	require.NoError(t, err)
	assert.Equal(t, 1, entry.Step, "no partial writes may survive a failed batch")
}

func TestPassWordsBatchDuplicateWord(t *testing.T) {
	t.Parallel()
	f := newVocabFixture()
	f.vocabStore.Seed(dueEntry("gato", 0, testRef))

	err := f.svc.PassWordsBatch(context.Background(), []string{"gato", "gato"}, "es", testRef)
	require.NoError(t, err)

	// The second occurrence observes the first one's transition: the word is
	// no longer due, so it advances exactly once.
	entry, err := f.vocabStore.Get(context.Background(), testLearner, "es", "gato")
	require.NoError(t, err)
	assert.Equal(t, 1, entry.Step)
	assert.Equal(t, 1, entry.SuccessfulReads)
}

func TestPassWordsBatchSkipsBlankWords(t *testing.T) {
	t.Parallel()
	f := newVocabFixture()

	err := f.svc.PassWordsBatch(context.Background(), []string{"  ", ""}, "es", testRef)
	assert.ErrorIs(t, err, ErrNoWords)
}

func TestBulkActionReset(t *testing.T) {
	t.Parallel()
	f := newVocabFixture()
	f.vocabStore.Seed(dueEntry("gato", 5, testRef))

	err := f.svc.BulkAction(context.Background(),
		[]string{"gato", "fantasma"}, BulkActionReset, "es", testRef)
	require.NoError(t, err, "missing words are skipped, not fatal")

	entry, err := f.vocabStore.Get(context.Background(), testLearner, "es", "gato")
	require.NoError(t, err)
	assert.Equal(t, 0, entry.Step)
}

func TestBulkActionDelete(t *testing.T) {
	t.Parallel()
	f := newVocabFixture()
	f.vocabStore.Seed(dueEntry("gato", 5, testRef))

	err := f.svc.BulkAction(context.Background(),
		[]string{"gato", "fantasma"}, BulkActionDelete, "es", testRef)
	require.NoError(t, err)

	_, err = f.vocabStore.Get(context.Background(), testLearner, "es", "gato")
	assert.ErrorIs(t, err, store.ErrVocabNotFound)
}

func TestBulkActionUnknown(t *testing.T) {
	t.Parallel()
	f := newVocabFixture()

	err := f.svc.BulkAction(context.Background(), []string{"gato"}, BulkActionType("obliterate"), "es", testRef)
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestResetWordMissing(t *testing.T) {
	t.Parallel()
	f := newVocabFixture()

	err := f.svc.ResetWord(context.Background(), "fantasma", BulkActionReset, "es", testRef)
	assert.ErrorIs(t, err, store.ErrVocabNotFound,
		"unlike the bulk variant, a single reset surfaces the missing word")
}

func TestImportWordsAssignsIncreasingOrders(t *testing.T) {
	t.Parallel()
	f := newVocabFixture()

	err := f.svc.ImportWords(context.Background(), []string{"uno", "dos"}, "es",
		ImportOptions{MakeTargetList: true}, testRef)
	require.NoError(t, err)

	err = f.svc.ImportWords(context.Background(), []string{"dos", "tres"}, "es",
		ImportOptions{MakeTargetList: true}, testRef.Add(time.Minute))
	require.NoError(t, err)

	expectOrder := func(word string, order int) {
		entry, err := f.vocabStore.Get(context.Background(), testLearner, "es", word)
		require.NoError(t, err)
		require.NotNil(t, entry.TargetOrder, "word %s should carry an order", word)
		assert.Equal(t, order, *entry.TargetOrder, "word %s", word)
	}

	expectOrder("uno", 1)
	expectOrder("dos", 2) // re-import keeps the original order
	expectOrder("tres", 3)
}

func TestGetVocabularyListAnnotatesDue(t *testing.T) {
	t.Parallel()
	f := newVocabFixture()

	overdue := dueEntry("gato", 2, testRef)
	upcoming := dueEntry("perro", 2, testRef)
	upcoming.NextReviewAt = testRef.Add(time.Hour)
	f.vocabStore.Seed(overdue, upcoming)

	entries, err := f.svc.GetVocabularyList(context.Background(), "es", testRef)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "gato", entries[0].Word, "due entries sort first")
	assert.True(t, entries[0].IsDue)
	assert.Equal(t, "perro", entries[1].Word)
	assert.False(t, entries[1].IsDue)
}
