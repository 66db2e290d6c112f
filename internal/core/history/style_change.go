package history

import (
	"fmt"

	"github.com/forma-editor/forma/internal/dom"
)

// StyleChange records one inline-style property edit on one element.
// An empty value means the property was not set; applying an empty value
// removes the declaration rather than writing "prop: ;".
//
// Two StyleChanges for the same element and property coalesce within the
// manager's merge window, so a rapid drag or a burst of nudges collapses to
// a single undo step keeping the first old value and the last new value.
type StyleChange struct {
	meta
	target   *dom.Element
	property string
	oldValue string
	newValue string
}

// NewStyleChange captures a committed style edit. Old and new values must be
// the already-observed pair; the change never re-reads them.
func NewStyleChange(target *dom.Element, property, oldValue, newValue string) *StyleChange {
	return &StyleChange{
		meta:     newMeta(),
		target:   target,
		property: property,
		oldValue: oldValue,
		newValue: newValue,
	}
}

func (c *StyleChange) Kind() Kind { return KindStyle }

// Apply sets the property to the new value (redo direction).
func (c *StyleChange) Apply() error {
	return c.set(c.newValue)
}

// Revert sets the property back to the old value (undo direction).
func (c *StyleChange) Revert() error {
	return c.set(c.oldValue)
}

func (c *StyleChange) set(value string) error {
	if !c.target.Attached() {
		return nil // detached target, nothing to mutate
	}
	c.target.SetStyleProperty(c.property, value)
	return nil
}

// CanMergeWith allows coalescing with a later StyleChange on the same
// element and property. The manager checks the time window.
func (c *StyleChange) CanMergeWith(next Change) bool {
	n, ok := next.(*StyleChange)
	return ok && n.target == c.target && n.property == c.property
}

// MergeWith keeps this change's old value and next's new value. The merged
// entry adopts next's identity and timestamp so a continuous burst keeps
// extending the window.
func (c *StyleChange) MergeWith(next Change) Change {
	n, ok := next.(*StyleChange)
	if !ok {
		return c
	}
	merged := *n
	merged.oldValue = c.oldValue
	return &merged
}

func (c *StyleChange) String() string {
	return fmt.Sprintf("style %s: %q -> %q on %s", c.property, c.oldValue, c.newValue, c.target.Path())
}
