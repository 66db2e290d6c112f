// internal/modehandler/action.go
package modehandler

import (
	"github.com/forma-editor/forma/internal/input"
	"github.com/forma-editor/forma/internal/logger"
)

// handleActionNormal handles actions when in ModeNormal.
func (mh *ModeHandler) handleActionNormal(actionEvent input.ActionEvent) bool {
	actionProcessed := true
	action := actionEvent.Action

	switch action {
	// --- Meta ---
	case input.ActionQuit:
		mh.requestQuit(false)
	case input.ActionForceQuit:
		mh.requestQuit(true)
	case input.ActionSave:
		if err := mh.editor.Save(); err != nil {
			mh.statusBar.SetTemporaryMessage("Save failed: %v", err)
			logger.Warnf("Save error: %v", err)
			actionProcessed = false
		} else {
			mh.statusBar.SetTemporaryMessage("Saved %s", mh.editor.Document().FilePath())
		}

	// --- History ---
	case input.ActionUndo:
		if mh.editor.Undo() {
			mh.statusBar.SetTemporaryMessage("Undo")
		} else {
			mh.statusBar.SetTemporaryMessage("Nothing to undo")
			actionProcessed = false
		}
	case input.ActionRedo:
		if mh.editor.Redo() {
			mh.statusBar.SetTemporaryMessage("Redo")
		} else {
			mh.statusBar.SetTemporaryMessage("Nothing to redo")
			actionProcessed = false
		}

	// --- Selection ---
	case input.ActionSelectNext:
		actionProcessed = mh.cycleSelection(1, false)
	case input.ActionSelectPrev:
		actionProcessed = mh.cycleSelection(-1, false)
	case input.ActionSelectAdd:
		actionProcessed = mh.cycleSelection(1, true)
	case input.ActionClearSelection:
		if mh.editor.Selection().Len() > 0 {
			mh.editor.Selection().Clear()
		} else {
			// Esc with nothing selected asks to quit, like the modified check
			mh.requestQuit(false)
		}

	// --- Position ---
	case input.ActionNudgeLeft:
		actionProcessed = mh.positionTool.Nudge(-1, 0)
	case input.ActionNudgeRight:
		actionProcessed = mh.positionTool.Nudge(1, 0)
	case input.ActionNudgeUp:
		actionProcessed = mh.positionTool.Nudge(0, -1)
	case input.ActionNudgeDown:
		actionProcessed = mh.positionTool.Nudge(0, 1)

	// --- Element Manipulation ---
	case input.ActionDeleteElement:
		if !mh.editor.DeleteSelected() {
			mh.statusBar.SetTemporaryMessage("Nothing selected to delete")
			actionProcessed = false
		}

	// --- Clipboard ---
	case input.ActionCopy:
		copied, err := mh.clipboard.Copy()
		if err != nil {
			mh.statusBar.SetTemporaryMessage("Copy failed: %v", err)
			actionProcessed = false
		} else if copied {
			mh.statusBar.SetTemporaryMessage("Copied %d element(s)", mh.editor.Selection().Len())
		} else {
			mh.statusBar.SetTemporaryMessage("Nothing selected to copy")
			actionProcessed = false
		}
	case input.ActionCut:
		cut, err := mh.clipboard.Cut()
		if err != nil {
			mh.statusBar.SetTemporaryMessage("Cut failed: %v", err)
			actionProcessed = false
		} else if !cut {
			mh.statusBar.SetTemporaryMessage("Nothing selected to cut")
			actionProcessed = false
		}
	case input.ActionPaste:
		pasted, err := mh.clipboard.Paste()
		if err != nil {
			mh.statusBar.SetTemporaryMessage("Paste failed: %v", err)
			actionProcessed = false
		} else if !pasted {
			mh.statusBar.SetTemporaryMessage("Clipboard empty - nothing to paste")
			actionProcessed = false
		}

	// --- Font ---
	case input.ActionFontSizeUp:
		actionProcessed = mh.fontTool.AdjustSize(1)
	case input.ActionFontSizeDown:
		actionProcessed = mh.fontTool.AdjustSize(-1)
	case input.ActionLetterSpacingUp:
		actionProcessed = mh.fontTool.AdjustLetterSpacing(1)
	case input.ActionLetterSpacingDown:
		actionProcessed = mh.fontTool.AdjustLetterSpacing(-1)
	case input.ActionCycleWeight:
		actionProcessed = mh.fontTool.CycleWeight()
	case input.ActionCycleAlignment:
		actionProcessed = mh.fontTool.CycleAlignment()

	// --- Mode Switches ---
	case input.ActionEnterTextMode:
		target := mh.editor.Selection().Primary()
		if target == nil {
			mh.statusBar.SetTemporaryMessage("Select an element to edit its text")
			actionProcessed = false
			break
		}
		if err := mh.textTool.BeginSession(target); err != nil {
			mh.statusBar.SetTemporaryMessage("Cannot edit text: %v", err)
			actionProcessed = false
			break
		}
		mh.setMode(ModeText)
	case input.ActionEnterCommandMode:
		mh.setMode(ModeCommand)
		mh.cmdBuffer = ""
		mh.statusBar.SetTemporaryMessage(":")

	case input.ActionUnknown:
		actionProcessed = false
	default:
		actionProcessed = false
	}

	// Any successful non-quit action invalidates a pending force quit
	if action != input.ActionQuit && action != input.ActionClearSelection &&
		action != input.ActionUnknown && actionProcessed {
		mh.forceQuitPending = false
	}

	return actionProcessed
}

// cycleSelection moves the selection forward or backward through the body's
// elements in document order. With add set, the next element joins the
// selection instead of replacing it.
func (mh *ModeHandler) cycleSelection(dir int, add bool) bool {
	doc := mh.editor.Document()
	els := doc.Elements(doc.Body())
	if len(els) == 0 {
		return false
	}

	next := 0
	if primary := mh.editor.Selection().Primary(); primary != nil {
		for i, el := range els {
			if el.Node() == primary.Node() {
				next = (i + dir + len(els)) % len(els)
				break
			}
		}
	} else if dir < 0 {
		next = len(els) - 1
	}

	if add {
		mh.editor.Selection().Add(els[next])
	} else {
		mh.editor.Selection().Set(els[next])
	}
	return true
}
