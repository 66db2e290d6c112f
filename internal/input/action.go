// internal/input/action.go
package input

// Action represents a command or operation to be performed by the editor.
type Action int

// Define the set of possible editor actions.
const (
	// --- Meta Actions ---
	ActionUnknown Action = iota // Default/invalid action
	ActionQuit
	ActionForceQuit // Quit without checking modified status
	ActionSave

	// --- History ---
	ActionUndo
	ActionRedo

	// --- Selection ---
	ActionSelectNext // next element in document order
	ActionSelectPrev // previous element
	ActionSelectAdd  // extend selection with next element
	ActionClearSelection

	// --- Element Manipulation ---
	ActionNudgeLeft
	ActionNudgeRight
	ActionNudgeUp
	ActionNudgeDown
	ActionDeleteElement

	// --- Clipboard ---
	ActionCopy
	ActionCut
	ActionPaste

	// --- Font ---
	ActionFontSizeUp
	ActionFontSizeDown
	ActionLetterSpacingUp
	ActionLetterSpacingDown
	ActionCycleWeight
	ActionCycleAlignment

	// --- Text Mode ---
	ActionEnterTextMode
	ActionInsertRune         // Requires Rune argument
	ActionDeleteCharBackward // Backspace key
	ActionCommitText         // Enter in text mode
	ActionCancelText         // Esc in text mode

	// --- Command Mode ---
	ActionEnterCommandMode  // Special action for ':'
	ActionExecuteCommand    // Special action for Enter in Command Mode
	ActionCancelCommand     // Special action for Esc in Command Mode
	ActionAppendCommand     // Special action for runes in Command Mode
	ActionDeleteCommandChar // Special action for Backspace in Command Mode
)

// ActionEvent represents a decoded input event resulting in an action.
// It might carry payload data needed for the action (like the rune to insert).
type ActionEvent struct {
	Action Action
	Rune   rune // Used for ActionInsertRune / ActionAppendCommand
}
