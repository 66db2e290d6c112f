package history

import (
	"fmt"

	"github.com/forma-editor/forma/internal/dom"
	"golang.org/x/net/html"
)

// StructuralChange records an insert, move or removal of one element.
//
// Convention: a nil old parent means the change is an insertion (undo removes
// the element); a nil new parent means a removal (redo removes it). For a
// removal this struct holds the only live reference keeping the detached
// subtree recreatable on undo.
//
// Reinsertion prefers the recorded next-sibling node and falls back to
// appending when that sibling has itself left the document.
type StructuralChange struct {
	meta
	target    *dom.Element
	oldParent *dom.Element
	oldNext   *html.Node
	newParent *dom.Element
	newNext   *html.Node
}

// NewInsertChange records that target was inserted under parent, before next.
func NewInsertChange(target, parent *dom.Element, next *html.Node) *StructuralChange {
	return &StructuralChange{
		meta:      newMeta(),
		target:    target,
		newParent: parent,
		newNext:   next,
	}
}

// NewRemoveChange records that target was removed from parent, where it sat
// before next.
func NewRemoveChange(target, parent *dom.Element, next *html.Node) *StructuralChange {
	return &StructuralChange{
		meta:      newMeta(),
		target:    target,
		oldParent: parent,
		oldNext:   next,
	}
}

// NewMoveChange records a reparenting or reordering of target.
func NewMoveChange(target *dom.Element, oldParent *dom.Element, oldNext *html.Node, newParent *dom.Element, newNext *html.Node) *StructuralChange {
	return &StructuralChange{
		meta:      newMeta(),
		target:    target,
		oldParent: oldParent,
		oldNext:   oldNext,
		newParent: newParent,
		newNext:   newNext,
	}
}

func (c *StructuralChange) Kind() Kind { return KindStructural }

// Apply replays the forward direction: place under the new parent, or detach
// when the change is a removal.
func (c *StructuralChange) Apply() error {
	return c.place(c.newParent, c.newNext)
}

// Revert replays the inverse: place back under the old parent, or detach
// when the change was an insertion.
func (c *StructuralChange) Revert() error {
	return c.place(c.oldParent, c.oldNext)
}

func (c *StructuralChange) place(parent *dom.Element, next *html.Node) error {
	if parent == nil {
		c.target.Detach()
		return nil
	}
	if !parent.Attached() {
		return nil // destination left the document, nothing sane to do
	}
	c.target.InsertInto(parent, next)
	return nil
}

func (c *StructuralChange) CanMergeWith(next Change) bool { return false }

func (c *StructuralChange) MergeWith(next Change) Change { return c }

func (c *StructuralChange) String() string {
	switch {
	case c.oldParent == nil:
		return fmt.Sprintf("insert <%s>", c.target.Tag())
	case c.newParent == nil:
		return fmt.Sprintf("remove <%s>", c.target.Tag())
	default:
		return fmt.Sprintf("move <%s>", c.target.Tag())
	}
}
