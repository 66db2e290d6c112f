package history

import "fmt"

// BatchChange is an ordered composite undone/redone as one unit: one user
// gesture that produced several independent records (both drag axes, a
// multi-selection nudge, a bulk image swap).
//
// A batch is opaque to merging: it never coalesces with anything and its
// members never leak back out once batched.
type BatchChange struct {
	meta
	changes []Change
}

// NewBatchChange wraps an ordered set of changes. The slice is copied so the
// caller's buffer can be reused.
func NewBatchChange(changes []Change) *BatchChange {
	owned := make([]Change, len(changes))
	copy(owned, changes)
	return &BatchChange{meta: newMeta(), changes: owned}
}

func (b *BatchChange) Kind() Kind { return KindBatch }

// Len reports the number of member changes.
func (b *BatchChange) Len() int { return len(b.changes) }

// Apply replays members in original order. If a member fails, the ones
// already applied are reverted so no partial state is observable.
func (b *BatchChange) Apply() error {
	for i, c := range b.changes {
		if err := c.Apply(); err != nil {
			for j := i - 1; j >= 0; j-- {
				_ = b.changes[j].Revert()
			}
			return fmt.Errorf("batch member %d (%s) failed: %w", i, c.Kind(), err)
		}
	}
	return nil
}

// Revert replays member inverses in reverse order, rolling forward again on
// a mid-batch failure.
func (b *BatchChange) Revert() error {
	for i := len(b.changes) - 1; i >= 0; i-- {
		if err := b.changes[i].Revert(); err != nil {
			for j := i + 1; j < len(b.changes); j++ {
				_ = b.changes[j].Apply()
			}
			return fmt.Errorf("batch member %d (%s) failed: %w", i, b.changes[i].Kind(), err)
		}
	}
	return nil
}

func (b *BatchChange) CanMergeWith(next Change) bool { return false }

func (b *BatchChange) MergeWith(next Change) Change { return b }

func (b *BatchChange) String() string {
	return fmt.Sprintf("batch of %d", len(b.changes))
}
