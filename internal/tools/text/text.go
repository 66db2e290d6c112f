// Package text edits element text content in sessions: the old text is
// captured when a session begins, keystrokes mutate the DOM live, and a
// single change is recorded when the session ends. Per-keystroke history is
// deliberately not kept.
package text

import (
	"fmt"

	"github.com/forma-editor/forma/internal/core/history"
	"github.com/forma-editor/forma/internal/dom"
	"github.com/forma-editor/forma/internal/logger"
)

// EditorInterface defines what the text tool needs from the editor.
type EditorInterface interface {
	History() *history.Manager
	MarkModified(path string)
}

// Tool runs at most one editing session at a time.
type Tool struct {
	editor  EditorInterface
	target  *dom.Element
	oldText string
	current []rune
}

// New creates the text tool; a nil editor is fatal at setup.
func New(editor EditorInterface) (*Tool, error) {
	if editor == nil {
		return nil, fmt.Errorf("text tool requires an editor")
	}
	return &Tool{editor: editor}, nil
}

// Active returns the element under edit, or nil outside a session.
func (t *Tool) Active() *dom.Element {
	return t.target
}

// BeginSession captures the pre-state and starts editing target. An open
// session on another element is committed first.
func (t *Tool) BeginSession(target *dom.Element) error {
	if target == nil {
		return fmt.Errorf("text session requires a target element")
	}
	if t.target != nil {
		t.EndSession()
	}
	t.target = target
	t.oldText = target.Text()
	t.current = []rune(t.oldText)
	logger.Debugf("Text: Session started on %s (%d runes)", target.Path(), len(t.current))
	return nil
}

// InsertRune appends a typed rune to the live text. No history writes.
func (t *Tool) InsertRune(r rune) {
	if t.target == nil {
		return
	}
	t.current = append(t.current, r)
	t.target.SetText(string(t.current))
	t.editor.MarkModified(t.target.Path())
}

// DeleteRune removes the last rune of the live text (backspace).
func (t *Tool) DeleteRune() {
	if t.target == nil || len(t.current) == 0 {
		return
	}
	t.current = t.current[:len(t.current)-1]
	t.target.SetText(string(t.current))
	t.editor.MarkModified(t.target.Path())
}

// EndSession commits the session: unchanged text records nothing, otherwise
// one change carrying the whole old/new pair is pushed. Returns true when a
// change was recorded.
func (t *Tool) EndSession() bool {
	if t.target == nil {
		return false
	}
	target := t.target
	oldText := t.oldText
	t.target = nil
	t.current = nil

	newText := target.Text()
	if newText == oldText {
		logger.Debugf("Text: Session ended unchanged")
		return false
	}

	change := history.NewTextChange(target, oldText, newText)
	t.editor.History().Push(change)
	t.editor.MarkModified(target.Path())
	logger.Debugf("Text: Session committed (%s)", change.Summary())
	return true
}

// CancelSession abandons the session, restoring the captured pre-state.
func (t *Tool) CancelSession() {
	if t.target == nil {
		return
	}
	t.target.SetText(t.oldText)
	t.editor.MarkModified(t.target.Path())
	t.target = nil
	t.current = nil
	logger.Debugf("Text: Session cancelled")
}
