// internal/modehandler/command_mode.go
package modehandler

import (
	"strings"

	"github.com/forma-editor/forma/internal/input"
	"github.com/forma-editor/forma/internal/logger"
)

// handleActionCommand handles actions when in ModeCommand.
func (mh *ModeHandler) handleActionCommand(actionEvent input.ActionEvent) bool {
	actionProcessed := true
	needsUpdate := false // Track if status bar text needs update

	switch actionEvent.Action {
	case input.ActionDeleteCharBackward: // Backspace
		if len(mh.cmdBuffer) > 0 {
			mh.cmdBuffer = mh.cmdBuffer[:len(mh.cmdBuffer)-1]
			needsUpdate = true
		} else {
			mh.setMode(ModeNormal)
			mh.statusBar.SetTemporaryMessage("")
			logger.Debugf("ModeHandler: Exiting Command Mode via Backspace")
		}

	case input.ActionEnterTextMode: // Enter: Execute command
		mh.executeCommand()
		mh.setMode(ModeNormal)

	case input.ActionClearSelection: // Escape: Cancel command
		mh.setMode(ModeNormal)
		mh.cmdBuffer = ""
		mh.statusBar.SetTemporaryMessage("")
		logger.Debugf("ModeHandler: Canceled Command Mode via Escape")

	default:
		// Every printable key appends, including runes bound to normal-mode
		// actions.
		if actionEvent.Rune != 0 {
			mh.cmdBuffer += string(actionEvent.Rune)
			needsUpdate = true
		} else {
			actionProcessed = false
		}
	}

	// Update status bar display if buffer changed
	if needsUpdate && mh.currentMode == ModeCommand {
		mh.statusBar.SetTemporaryMessage(":%s", mh.cmdBuffer)
	}

	return actionProcessed
}

// executeCommand parses and runs the command in cmdBuffer.
func (mh *ModeHandler) executeCommand() {
	if mh.cmdBuffer == "" {
		mh.statusBar.SetTemporaryMessage("")
		return
	}
	cmdStr := mh.cmdBuffer // Copy buffer before clearing
	mh.cmdBuffer = ""

	parts := strings.Fields(cmdStr)
	cmdName := parts[0]
	var args []string
	if len(parts) > 1 {
		args = parts[1:]
	}

	if cmdFunc, exists := mh.commands[cmdName]; exists {
		logger.Debugf("ModeHandler: Executing command ':%s' with args %v", cmdName, args)
		if err := cmdFunc(args); err != nil {
			mh.statusBar.SetTemporaryMessage("Error executing command '%s': %v", cmdName, err)
		}
		// Success message usually set by the command itself
	} else {
		mh.statusBar.SetTemporaryMessage("Unknown command: %s", cmdName)
	}
}
