// internal/app/events.go
package app

import (
	"github.com/forma-editor/forma/internal/core/selection"
	"github.com/forma-editor/forma/internal/event"
)

// Event handlers keeping the status bar and preview in sync. All return
// false so other subscribers still run.

func (a *App) handleSelectionChanged(e event.Event) bool {
	a.observePrimary()
	a.updateStatusBarContent()
	a.requestRedraw()
	return false
}

// observePrimary follows the primary selected element's geometry so the
// status bar label tracks path changes and detachment between selection
// events.
func (a *App) observePrimary() {
	sel := a.editor.Selection()
	primary := sel.Primary()
	if primary == a.observedPrimary {
		return
	}
	if a.observedPrimary != nil {
		sel.Unobserve(a.observedPrimary)
	}
	a.observedPrimary = primary
	if primary == nil {
		return
	}
	sel.Observe(primary, func(g selection.Geometry) {
		label := g.Path
		if !g.Attached {
			label = ""
		}
		a.statusBar.SetSelectionInfo(label, sel.Len())
		a.requestRedraw()
	})
}

func (a *App) handleHistoryChanged(e event.Event) bool {
	if data, ok := e.Data.(event.HistoryChangedData); ok {
		a.statusBar.SetHistoryInfo(data.CanUndo, data.CanRedo)
	}
	a.requestRedraw()
	return false
}

func (a *App) handleDocumentModified(e event.Event) bool {
	// The markup manager subscribes on its own; here we only refresh chrome.
	a.updateStatusBarContent()
	a.requestRedraw()
	return false
}

func (a *App) handleDocumentSaved(e event.Event) bool {
	if data, ok := e.Data.(event.DocumentSavedData); ok {
		a.statusBar.SetTemporaryMessage("Saved %s", data.FilePath)
	}
	a.updateStatusBarContent()
	a.requestRedraw()
	return false
}

func (a *App) handleModeChanged(e event.Event) bool {
	if data, ok := e.Data.(event.ModeChangedData); ok {
		a.statusBar.SetEditorMode(data.Mode)
	}
	a.requestRedraw()
	return false
}
