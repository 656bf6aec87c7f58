package mocks

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Brendennago/Syntagma/internal/domain"
	"github.com/Brendennago/Syntagma/internal/store"
	"github.com/google/uuid"
)

// MockVocabStore implements store.VocabStore with an in-memory map.
// Individual methods can be overridden through the Fn fields; Snapshot and
// Restore let a fake transaction runner emulate rollback on error.
type MockVocabStore struct {
	mu      sync.Mutex
	entries map[string]*domain.VocabularyEntry

	GetFn            func(ctx context.Context, learnerID uuid.UUID, language, word string) (*domain.VocabularyEntry, error)
	UpsertFn         func(ctx context.Context, entry *domain.VocabularyEntry) error
	DeleteFn         func(ctx context.Context, learnerID uuid.UUID, language, word string) error
	MaxTargetOrderFn func(ctx context.Context, learnerID uuid.UUID, language string) (int, error)

	UpsertCount int
	DeleteCount int
}

// NewMockVocabStore creates an empty in-memory vocab store.
func NewMockVocabStore() *MockVocabStore {
	return &MockVocabStore{entries: make(map[string]*domain.VocabularyEntry)}
}

func vocabKey(learnerID uuid.UUID, language, word string) string {
	return fmt.Sprintf("%s|%s|%s", learnerID, language, word)
}

// Seed inserts entries directly, bypassing any overrides.
func (m *MockVocabStore) Seed(entries ...*domain.VocabularyEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range entries {
		m.entries[vocabKey(e.LearnerID, e.Language, e.Word)] = e.Clone()
	}
}

// Snapshot returns a deep copy of the current contents.
func (m *MockVocabStore) Snapshot() map[string]*domain.VocabularyEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	snapshot := make(map[string]*domain.VocabularyEntry, len(m.entries))
	for k, v := range m.entries {
		snapshot[k] = v.Clone()
	}
	return snapshot
}

// Restore replaces the contents with a previously taken snapshot.
func (m *MockVocabStore) Restore(snapshot map[string]*domain.VocabularyEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]*domain.VocabularyEntry, len(snapshot))
	for k, v := range snapshot {
		m.entries[k] = v.Clone()
	}
}

// Get implements store.VocabStore.
func (m *MockVocabStore) Get(
	ctx context.Context,
	learnerID uuid.UUID,
	language, word string,
) (*domain.VocabularyEntry, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, learnerID, language, word)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[vocabKey(learnerID, language, word)]
	if !ok {
		return nil, store.ErrVocabNotFound
	}
	return entry.Clone(), nil
}

// List implements store.VocabStore.
func (m *MockVocabStore) List(
	ctx context.Context,
	learnerID uuid.UUID,
	language string,
) ([]*domain.VocabularyEntry, error) {
	return m.collect(learnerID, language, func(e *domain.VocabularyEntry) bool {
		return true
	}, byNextReview), nil
}

// ListDue implements store.VocabStore.
func (m *MockVocabStore) ListDue(
	ctx context.Context,
	learnerID uuid.UUID,
	language string,
	now time.Time,
	limit int,
) ([]*domain.VocabularyEntry, error) {
	due := m.collect(learnerID, language, func(e *domain.VocabularyEntry) bool {
		return e.IsDue(now)
	}, byNextReview)
	if len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

// ListTargets implements store.VocabStore.
func (m *MockVocabStore) ListTargets(
	ctx context.Context,
	learnerID uuid.UUID,
	language string,
	limit int,
) ([]*domain.VocabularyEntry, error) {
	targets := m.collect(learnerID, language, func(e *domain.VocabularyEntry) bool {
		return e.IsTarget
	}, byTargetOrder)
	if len(targets) > limit {
		targets = targets[:limit]
	}
	return targets, nil
}

// CountDue implements store.VocabStore.
func (m *MockVocabStore) CountDue(
	ctx context.Context,
	learnerID uuid.UUID,
	language string,
	now time.Time,
) (int, error) {
	due := m.collect(learnerID, language, func(e *domain.VocabularyEntry) bool {
		return e.IsDue(now)
	}, byNextReview)
	return len(due), nil
}

// Upsert implements store.VocabStore.
func (m *MockVocabStore) Upsert(ctx context.Context, entry *domain.VocabularyEntry) error {
	m.mu.Lock()
	m.UpsertCount++
	m.mu.Unlock()
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, entry)
	}
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[vocabKey(entry.LearnerID, entry.Language, entry.Word)] = entry.Clone()
	return nil
}

// Delete implements store.VocabStore.
func (m *MockVocabStore) Delete(
	ctx context.Context,
	learnerID uuid.UUID,
	language, word string,
) error {
	m.mu.Lock()
	m.DeleteCount++
	m.mu.Unlock()
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, learnerID, language, word)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := vocabKey(learnerID, language, word)
	if _, ok := m.entries[key]; !ok {
		return store.ErrVocabNotFound
	}
	delete(m.entries, key)
	return nil
}

// MaxTargetOrder implements store.VocabStore.
func (m *MockVocabStore) MaxTargetOrder(
	ctx context.Context,
	learnerID uuid.UUID,
	language string,
) (int, error) {
	if m.MaxTargetOrderFn != nil {
		return m.MaxTargetOrderFn(ctx, learnerID, language)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	max := 0
	for _, e := range m.entries {
		if e.LearnerID == learnerID && e.Language == language &&
			e.TargetOrder != nil && *e.TargetOrder > max {
			max = *e.TargetOrder
		}
	}
	return max, nil
}

// WithTx implements store.VocabStore. The mock has no transaction state, so
// it returns itself.
func (m *MockVocabStore) WithTx(tx *sql.Tx) store.VocabStore {
	return m
}

type entrySort func(a, b *domain.VocabularyEntry) bool

func byNextReview(a, b *domain.VocabularyEntry) bool {
	if a.NextReviewAt.Equal(b.NextReviewAt) {
		return a.Word < b.Word
	}
	return a.NextReviewAt.Before(b.NextReviewAt)
}

func byTargetOrder(a, b *domain.VocabularyEntry) bool {
	ao, bo := orderValue(a), orderValue(b)
	if ao == bo {
		return a.Word < b.Word
	}
	return ao < bo
}

func orderValue(e *domain.VocabularyEntry) int {
	if e.TargetOrder == nil {
		return int(^uint(0) >> 1)
	}
	return *e.TargetOrder
}

func (m *MockVocabStore) collect(
	learnerID uuid.UUID,
	language string,
	keep func(*domain.VocabularyEntry) bool,
	less entrySort,
) []*domain.VocabularyEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	matched := make([]*domain.VocabularyEntry, 0, len(m.entries))
	for _, e := range m.entries {
		if e.LearnerID == learnerID && e.Language == language && keep(e) {
			matched = append(matched, e.Clone())
		}
	}
	sort.Slice(matched, func(i, j int) bool { return less(matched[i], matched[j]) })
	return matched
}
