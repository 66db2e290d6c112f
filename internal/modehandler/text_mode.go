// internal/modehandler/text_mode.go
package modehandler

import (
	"github.com/forma-editor/forma/internal/input"
	"github.com/forma-editor/forma/internal/logger"
)

// handleActionText handles actions when in ModeText. Keys that switch modes
// elsewhere are reinterpreted here: Enter commits the session, Escape
// abandons it.
func (mh *ModeHandler) handleActionText(actionEvent input.ActionEvent) bool {
	actionProcessed := true

	switch actionEvent.Action {
	case input.ActionInsertRune:
		mh.textTool.InsertRune(actionEvent.Rune)

	case input.ActionDeleteCharBackward:
		mh.textTool.DeleteRune()

	case input.ActionEnterTextMode: // Enter: commit the session
		if mh.textTool.EndSession() {
			mh.statusBar.SetTemporaryMessage("Text updated")
		} else {
			mh.statusBar.SetTemporaryMessage("")
		}
		mh.setMode(ModeNormal)
		logger.Debugf("ModeHandler: Text session committed via Enter")

	case input.ActionClearSelection: // Escape: cancel the session
		mh.textTool.CancelSession()
		mh.statusBar.SetTemporaryMessage("Text edit cancelled")
		mh.setMode(ModeNormal)
		logger.Debugf("ModeHandler: Text session cancelled via Escape")

	default:
		// Mapped runes ('u', 'y', ...) arrive as their normal-mode actions;
		// recover the literal rune so typing them works.
		if actionEvent.Rune != 0 {
			mh.textTool.InsertRune(actionEvent.Rune)
		} else {
			actionProcessed = false
		}
	}

	return actionProcessed
}
