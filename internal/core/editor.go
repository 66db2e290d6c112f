// internal/core/editor.go
package core

import (
	"fmt"

	"github.com/forma-editor/forma/internal/core/history"
	"github.com/forma-editor/forma/internal/core/selection"
	"github.com/forma-editor/forma/internal/dom"
	"github.com/forma-editor/forma/internal/event"
	"github.com/forma-editor/forma/internal/logger"
)

// Editor is the facade the host works through: one document, one selection,
// one shared history manager. Tools receive these collaborators at
// construction and coordinate only through them.
type Editor struct {
	doc          *dom.Document
	historyMgr   *history.Manager
	selectionMgr *selection.Manager
	eventManager *event.Manager
	modified     bool
}

// NewEditor assembles an editor around a parsed document.
func NewEditor(doc *dom.Document, events *event.Manager, opts history.Options) (*Editor, error) {
	if doc == nil {
		return nil, fmt.Errorf("editor requires a document")
	}
	if doc.Body() == nil {
		return nil, fmt.Errorf("document has no body to edit")
	}
	e := &Editor{
		doc:          doc,
		historyMgr:   history.NewManager(opts),
		selectionMgr: selection.NewManager(events),
		eventManager: events,
	}
	if events != nil {
		e.historyMgr.Subscribe(func(st history.State) {
			events.Dispatch(event.TypeHistoryChanged, event.HistoryChangedData{
				CanUndo: st.CanUndo,
				CanRedo: st.CanRedo,
			})
		})
	}
	return e, nil
}

// Document returns the edited document.
func (e *Editor) Document() *dom.Document { return e.doc }

// History returns the shared history manager.
func (e *Editor) History() *history.Manager { return e.historyMgr }

// Selection returns the selection manager.
func (e *Editor) Selection() *selection.Manager { return e.selectionMgr }

// EventManager returns the event bus.
func (e *Editor) EventManager() *event.Manager { return e.eventManager }

// IsModified reports whether the document changed since load/save.
func (e *Editor) IsModified() bool { return e.modified }

// MarkModified flags the document dirty and tells listeners which element
// (by locator) changed; "" means the whole tree.
func (e *Editor) MarkModified(path string) {
	e.modified = true
	if e.eventManager != nil {
		e.eventManager.Dispatch(event.TypeDocumentModified, event.DocumentModifiedData{Path: path})
	}
}

// Undo reverts the most recent change and refreshes listeners on success.
func (e *Editor) Undo() bool {
	if !e.historyMgr.Undo() {
		return false
	}
	e.MarkModified("")
	return true
}

// Redo reapplies the most recently undone change.
func (e *Editor) Redo() bool {
	if !e.historyMgr.Redo() {
		return false
	}
	e.MarkModified("")
	return true
}

// DeleteSelected removes every selected element, recording one structural
// change per element; multi-element deletes are batched so one undo restores
// them all.
func (e *Editor) DeleteSelected() bool {
	els := e.selectionMgr.All()
	if len(els) == 0 {
		return false
	}

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
		return false
	}

	e.historyMgr.PushGroup(changes)
	e.selectionMgr.Clear()
	e.MarkModified("")
	logger.Debugf("Editor: Deleted %d element(s)", len(changes))
	return true
}

// Save serializes the document back to its file.
func (e *Editor) Save() error {
	if err := e.doc.Save(""); err != nil {
		return err
	}
	e.modified = false
	if e.eventManager != nil {
		e.eventManager.Dispatch(event.TypeDocumentSaved, event.DocumentSavedData{FilePath: e.doc.FilePath()})
	}
	return nil
}
