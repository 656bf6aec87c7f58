package progress

import (
	"time"

	"github.com/Brendennago/Syntagma/internal/domain"
	"github.com/google/uuid"
)

// Import scheduling constants. A due-now import is backdated slightly so the
// word is already past its review time; a plain import lands shortly in the
// future; a target-list import is pushed out until the word is encountered in
// a passage or explicitly looked up.
const (
	importDueBackdate   = 10 * time.Minute
	importShortDelay    = time.Minute
	importTargetDelayed = 365 * 24 * time.Hour
)

// ImportOptions controls how ApplyImport treats the words of one import batch.
// Each option only touches the fields it governs.
type ImportOptions struct {
	// MakeTargetList flags the imported words as deliberate targets for
	// upcoming passages and assigns them a presentation order.
	MakeTargetList bool

	// MakeDueNow backdates the next review so the word is immediately due.
	MakeDueNow bool
}

// ApplyLookup computes the state after a learner looks a word up. A lookup
// always drops the word back to step 0 and makes it immediately due again,
// clearing any target marking. The caller keeps the prior entry (or nil) as
// the undo snapshot; this function never mutates it.
func ApplyLookup(
	prior *domain.VocabularyEntry,
	learnerID uuid.UUID,
	language, word string,
	ref time.Time,
) *domain.VocabularyEntry {
	next := freshEntry(prior, learnerID, language, word, ref)
	next.Step = 0
	next.IntervalDays = IntervalDays(0)
	next.NextReviewAt = ref
	next.Status = domain.StatusForStep(0)
	next.IsTarget = false
	next.TargetOrder = nil
	next.LookupCount++
	next.UpdatedAt = ref
	return next
}

// ApplyPass computes the state after a word was read in a passage without a
// lookup. The returned bool reports whether the entry changed; re-reading a
// word that is neither a target nor due confers no additional progress.
//
// Transition rules:
//   - absent word: created at the top of the ladder, already mastered
//   - target word: jumps straight to the top regardless of its current step
//   - due word: advances one step, capped at the top
func ApplyPass(
	prior *domain.VocabularyEntry,
	learnerID uuid.UUID,
	language, word string,
	ref time.Time,
) (*domain.VocabularyEntry, bool) {
	if prior == nil {
		next := freshEntry(nil, learnerID, language, word, ref)
		next.Step = domain.MaxStep
		next.IntervalDays = IntervalDays(domain.MaxStep)
		next.NextReviewAt = NextReviewAt(domain.MaxStep, ref)
		next.Status = domain.StatusForStep(domain.MaxStep)
		next.SuccessfulReads = 1
		return next, true
	}

	if !prior.IsTarget && !prior.IsDue(ref) {
		return prior.Clone(), false
	}

	next := prior.Clone()
	if prior.IsTarget {
		// Reading a target word without needing a lookup counts as mastery.
		next.Step = domain.MaxStep
	} else if next.Step < domain.MaxStep {
		next.Step++
	}
	next.IntervalDays = IntervalDays(next.Step)
	next.NextReviewAt = NextReviewAt(next.Step, ref)
	next.Status = domain.StatusForStep(next.Step)
	next.SuccessfulReads++
	next.IsTarget = false
	next.TargetOrder = nil
	next.UpdatedAt = ref
	return next, true
}

// ApplyReset computes the state after an explicit reset. The shape matches a
// fresh lookup's write, except the lookup counter is left untouched.
func ApplyReset(prior *domain.VocabularyEntry, ref time.Time) *domain.VocabularyEntry {
	next := prior.Clone()
	next.Step = 0
	next.IntervalDays = IntervalDays(0)
	next.NextReviewAt = ref
	next.Status = domain.StatusForStep(0)
	next.IsTarget = false
	next.TargetOrder = nil
	next.UpdatedAt = ref
	return next
}

// ApplyImport computes the state after importing a word with the given
// options. Import has upsert semantics: absent words are created at step 0,
// existing words keep their step and status. nextOrder is the target order to
// assign when the word joins the target list; a word that already carries an
// order keeps it, so re-importing never reshuffles the list. The returned bool
// reports whether nextOrder was consumed.
func ApplyImport(
	prior *domain.VocabularyEntry,
	learnerID uuid.UUID,
	language, word string,
	opts ImportOptions,
	nextOrder int,
	ref time.Time,
) (*domain.VocabularyEntry, bool) {
	var next *domain.VocabularyEntry
	created := prior == nil
	if created {
		next = freshEntry(nil, learnerID, language, word, ref)
		next.Step = 0
		next.IntervalDays = IntervalDays(0)
		next.Status = domain.StatusForStep(0)
	} else {
		next = prior.Clone()
	}
	next.UpdatedAt = ref

	orderConsumed := false
	if opts.MakeTargetList {
		next.IsTarget = true
		if next.TargetOrder == nil {
			order := nextOrder
			next.TargetOrder = &order
			orderConsumed = true
		}
	}

	switch {
	case opts.MakeDueNow:
		next.NextReviewAt = ref.Add(-importDueBackdate)
	case opts.MakeTargetList:
		next.NextReviewAt = ref.Add(importTargetDelayed)
	case created:
		next.NextReviewAt = ref.Add(importShortDelay)
	}

	return next, orderConsumed
}

// ApplyUndoLookup restores the snapshot taken before a lookup. A nil snapshot
// means the lookup created the entry, so the caller should delete it; that is
// signaled by a nil return. The lookup counter is decremented but floored at
// zero in case the snapshot predates counter tracking.
func ApplyUndoLookup(snapshot *domain.VocabularyEntry, ref time.Time) *domain.VocabularyEntry {
	if snapshot == nil {
		return nil
	}
	restored := snapshot.Clone()
	if restored.LookupCount < 0 {
		restored.LookupCount = 0
	}
	restored.UpdatedAt = ref
	return restored
}

// freshEntry builds the shared skeleton for transitions that may create an
// entry. When prior exists its identity and counters carry over.
func freshEntry(
	prior *domain.VocabularyEntry,
	learnerID uuid.UUID,
	language, word string,
	ref time.Time,
) *domain.VocabularyEntry {
	if prior != nil {
		return prior.Clone()
	}
	return &domain.VocabularyEntry{
		LearnerID: learnerID,
		Language:  language,
		Word:      word,
		CreatedAt: ref,
		UpdatedAt: ref,
	}
}
