package history

import (
	"fmt"

	"github.com/forma-editor/forma/internal/dom"
)

// AttributeChange records one attribute edit, with absence modeled
// explicitly: reverting to an absent old value removes the attribute instead
// of writing a sentinel string.
//
// Attribute changes never coalesce, even under rapid repeated swaps on the
// same element, so per-image src history keeps one entry per swap.
type AttributeChange struct {
	meta
	target   *dom.Element
	name     string
	oldValue dom.AttrValue
	newValue dom.AttrValue
}

// NewAttributeChange captures a committed attribute edit.
func NewAttributeChange(target *dom.Element, name string, oldValue, newValue dom.AttrValue) *AttributeChange {
	return &AttributeChange{
		meta:     newMeta(),
		target:   target,
		name:     name,
		oldValue: oldValue,
		newValue: newValue,
	}
}

func (c *AttributeChange) Kind() Kind { return KindAttribute }

func (c *AttributeChange) Apply() error {
	return c.set(c.newValue)
}

func (c *AttributeChange) Revert() error {
	return c.set(c.oldValue)
}

func (c *AttributeChange) set(v dom.AttrValue) error {
	if !c.target.Attached() {
		return nil
	}
	c.target.SetAttr(c.name, v)
	return nil
}

func (c *AttributeChange) CanMergeWith(next Change) bool { return false }

func (c *AttributeChange) MergeWith(next Change) Change { return c }

func (c *AttributeChange) String() string {
	return fmt.Sprintf("attribute %s: %s -> %s on %s", c.name, c.oldValue, c.newValue, c.target.Path())
}
