// Package history provides undo/redo functionality via a change history stack.
//
// Every mutating tool records what it did as a Change: an atomic, reversible
// description carrying the already-captured old and new values. The manager
// replays those descriptions without knowing which tool produced them.
package history

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Kind discriminates change variants for logging and history display.
type Kind int

const (
	KindStyle Kind = iota
	KindAttribute
	KindText
	KindStructural
	KindBatch
)

func (k Kind) String() string {
	switch k {
	case KindStyle:
		return "style"
	case KindAttribute:
		return "attribute"
	case KindText:
		return "text"
	case KindStructural:
		return "structural"
	case KindBatch:
		return "batch"
	default:
		return "unknown"
	}
}

// Change is a single, reversible mutation description.
//
// Apply is the forward direction (redo), Revert the inverse (undo). Both must
// be silent no-ops when the target element has left the document: tools may
// legitimately undo past a structural delete recorded later in the stack.
// Old and new values are captured at construction; apply paths never re-read
// current DOM state except to check attachment.
type Change interface {
	ID() ulid.ULID
	Kind() Kind
	CreatedAt() time.Time
	Apply() error
	Revert() error

	// CanMergeWith reports whether next can be coalesced into this change.
	// The manager has already verified the merge window; implementations
	// only check semantic compatibility (same target, same property).
	CanMergeWith(next Change) bool
	// MergeWith returns the coalesced change. Identity when not mergeable.
	MergeWith(next Change) Change

	String() string
}

// meta carries the identity and timestamp every variant embeds.
type meta struct {
	id        ulid.ULID
	createdAt time.Time
}

func newMeta() meta {
	return meta{id: ulid.Make(), createdAt: time.Now()}
}

func (m meta) ID() ulid.ULID        { return m.id }
func (m meta) CreatedAt() time.Time { return m.createdAt }
