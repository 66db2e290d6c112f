package history

import (
	"fmt"

	"github.com/forma-editor/forma/internal/dom"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// TextChange records one text editing session against one element: the whole
// old text and the whole new text, captured at session end rather than per
// keystroke. Sessions never coalesce with each other.
type TextChange struct {
	meta
	target  *dom.Element
	oldText string
	newText string
}

// NewTextChange captures a committed editing session.
func NewTextChange(target *dom.Element, oldText, newText string) *TextChange {
	return &TextChange{
		meta:    newMeta(),
		target:  target,
		oldText: oldText,
		newText: newText,
	}
}

func (c *TextChange) Kind() Kind { return KindText }

func (c *TextChange) Apply() error {
	return c.set(c.newText)
}

func (c *TextChange) Revert() error {
	return c.set(c.oldText)
}

func (c *TextChange) set(text string) error {
	if !c.target.Attached() {
		return nil
	}
	c.target.SetText(text)
	return nil
}

func (c *TextChange) CanMergeWith(next Change) bool { return false }

func (c *TextChange) MergeWith(next Change) Change { return c }

// Summary reports the session's net rune delta, e.g. "+12/-3", for status
// messages and the history view.
func (c *TextChange) Summary() string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(c.oldText, c.newText, false)

	var inserted, deleted int
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			inserted += len([]rune(d.Text))
		case diffmatchpatch.DiffDelete:
			deleted += len([]rune(d.Text))
		}
	}
	return fmt.Sprintf("+%d/-%d", inserted, deleted)
}

func (c *TextChange) String() string {
	return fmt.Sprintf("text %s on %s", c.Summary(), c.target.Path())
}
