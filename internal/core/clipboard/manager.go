// Package clipboard copies, cuts and pastes elements as serialized markup,
// recording structural changes through the shared history manager so every
// operation is undoable.
package clipboard

import (
	"fmt"

	sysclip "github.com/atotto/clipboard"
	"golang.org/x/net/html"

	"github.com/forma-editor/forma/internal/core/history"
	"github.com/forma-editor/forma/internal/core/selection"
	"github.com/forma-editor/forma/internal/dom"
	"github.com/forma-editor/forma/internal/logger"
)

// EditorInterface defines what the clipboard manager needs from the editor.
type EditorInterface interface {
	Document() *dom.Document
	Selection() *selection.Manager
	History() *history.Manager
	MarkModified(path string)
}

// Manager handles clipboard operations. With system clipboard enabled the
// markup round-trips through the OS clipboard; otherwise an internal
// register is used.
type Manager struct {
	editor   EditorInterface
	register string
	system   bool
}

// NewManager creates a clipboard manager.
func NewManager(editor EditorInterface, useSystem bool) (*Manager, error) {
	if editor == nil {
		return nil, fmt.Errorf("clipboard manager requires an editor")
	}
	return &Manager{editor: editor, system: useSystem}, nil
}

// Copy serializes the selected elements into the clipboard register.
// Returns false when nothing is selected.
func (m *Manager) Copy() (bool, error) {
	els := m.editor.Selection().All()
	if len(els) == 0 {
		return false, nil
	}

	var markup string
	for _, el := range els {
		s, err := el.Markup()
		if err != nil {
			return false, fmt.Errorf("failed to serialize element for copy: %w", err)
		}
		markup += s
	}

	if err := m.write(markup); err != nil {
		return false, err
	}
	logger.Debugf("Clipboard: Copied %d element(s), %d bytes", len(els), len(markup))
	return true, nil
}

// Cut copies the selection then deletes it, recording one removal per
// element (batched for a multi-selection) so a single undo restores all.
func (m *Manager) Cut() (bool, error) {
	ok, err := m.Copy()
	if err != nil || !ok {
		return ok, err
	}

	els := m.editor.Selection().All()
	changes := make([]history.Change, 0, len(els))
	for _, el := range els {
		if !el.Attached() {
			continue
		}
		parent := el.Parent()
		next := el.NextSibling()
		el.Detach()
		changes = append(changes, history.NewRemoveChange(el, parent, next))
	}
	if len(changes) == 0 {
		return false, nil
	}

	m.editor.History().PushGroup(changes)
	m.editor.Selection().Clear()
	m.editor.MarkModified("")
	logger.Debugf("Clipboard: Cut %d element(s)", len(changes))
	return true, nil
}

// Paste parses the register and inserts the elements before the primary
// selection, or at the end of the body when nothing is selected. Each
// insertion is recorded; multiple elements batch into one undo step.
func (m *Manager) Paste() (bool, error) {
	markup, err := m.read()
	if err != nil {
		return false, err
	}
	if markup == "" {
		return false, nil
	}

	doc := m.editor.Document()
	els, err := doc.ParseFragment(markup)
	if err != nil {
		return false, fmt.Errorf("clipboard does not hold usable markup: %w", err)
	}
	if len(els) == 0 {
		return false, nil
	}

	// Insert before the primary selection when there is one, otherwise at
	// the end of the body.
	parent := doc.Body()
	var anchor *html.Node
	if primary := m.editor.Selection().Primary(); primary != nil && primary.Attached() {
		if p := primary.Parent(); p != nil {
			parent = p
			anchor = primary.Node()
		}
	}

	changes := make([]history.Change, 0, len(els))
	for _, el := range els {
		el.InsertInto(parent, anchor)
		changes = append(changes, history.NewInsertChange(el, parent, el.NextSibling()))
	}

	m.editor.History().PushGroup(changes)
	m.editor.Selection().Set(els...)
	m.editor.MarkModified("")
	logger.Debugf("Clipboard: Pasted %d element(s)", len(els))
	return true, nil
}

func (m *Manager) write(markup string) error {
	if m.system {
		if err := sysclip.WriteAll(markup); err != nil {
			return fmt.Errorf("system clipboard write failed: %w", err)
		}
		return nil
	}
	m.register = markup
	return nil
}

func (m *Manager) read() (string, error) {
	if m.system {
		s, err := sysclip.ReadAll()
		if err != nil {
			return "", fmt.Errorf("system clipboard read failed: %w", err)
		}
		return s, nil
	}
	return m.register, nil
}
