// internal/modehandler/modehandler.go
package modehandler

import (
	"github.com/gdamore/tcell/v2"

	"github.com/forma-editor/forma/internal/core"
	"github.com/forma-editor/forma/internal/core/clipboard"
	"github.com/forma-editor/forma/internal/event"
	"github.com/forma-editor/forma/internal/input"
	"github.com/forma-editor/forma/internal/logger"
	"github.com/forma-editor/forma/internal/statusbar"
	"github.com/forma-editor/forma/internal/tools/font"
	"github.com/forma-editor/forma/internal/tools/image"
	"github.com/forma-editor/forma/internal/tools/position"
	"github.com/forma-editor/forma/internal/tools/text"
)

// InputMode defines the different states for user input.
type InputMode int

const (
	ModeNormal InputMode = iota
	ModeText
	ModeCommand
)

// CommandFunc is the signature of a registered ':' command.
type CommandFunc func(args []string) error

// ModeHandler manages input modes, tool dispatch, and command execution.
type ModeHandler struct {
	// Dependencies (references to components managed by App)
	editor         *core.Editor
	positionTool   *position.Tool
	textTool       *text.Tool
	fontTool       *font.Tool
	imageTool      *image.Tool
	clipboard      *clipboard.Manager
	inputProcessor *input.InputProcessor
	eventManager   *event.Manager
	statusBar      *statusbar.StatusBar
	quitSignal     chan<- struct{} // Channel to signal app termination

	// Internal State
	currentMode      InputMode
	cmdBuffer        string
	commands         map[string]CommandFunc
	forceQuitPending bool
}

// Config holds dependencies for the ModeHandler.
type Config struct {
	Editor         *core.Editor
	PositionTool   *position.Tool
	TextTool       *text.Tool
	FontTool       *font.Tool
	ImageTool      *image.Tool
	Clipboard      *clipboard.Manager
	InputProcessor *input.InputProcessor
	EventManager   *event.Manager
	StatusBar      *statusbar.StatusBar
	QuitSignal     chan<- struct{} // Write-only channel to signal quit
}

// New creates a new ModeHandler.
func New(cfg Config) *ModeHandler {
	if cfg.Editor == nil || cfg.InputProcessor == nil || cfg.EventManager == nil ||
		cfg.StatusBar == nil || cfg.QuitSignal == nil {
		// Panic indicates a programming error during setup
		panic("modehandler.New: Missing required dependencies in Config")
	}
	return &ModeHandler{
		editor:         cfg.Editor,
		positionTool:   cfg.PositionTool,
		textTool:       cfg.TextTool,
		fontTool:       cfg.FontTool,
		imageTool:      cfg.ImageTool,
		clipboard:      cfg.Clipboard,
		inputProcessor: cfg.InputProcessor,
		eventManager:   cfg.EventManager,
		statusBar:      cfg.StatusBar,
		quitSignal:     cfg.QuitSignal,
		currentMode:    ModeNormal,
		commands:       make(map[string]CommandFunc),
	}
}

// HandleKeyEvent decides what to do based on current mode and key event.
// Returns true if the event resulted in an action requiring redraw.
func (mh *ModeHandler) HandleKeyEvent(ev *tcell.EventKey) bool {
	actionEvent := mh.inputProcessor.ProcessEvent(ev)

	var actionProcessed bool
	switch mh.currentMode {
	case ModeNormal:
		actionProcessed = mh.handleActionNormal(actionEvent)
	case ModeText:
		actionProcessed = mh.handleActionText(actionEvent)
	case ModeCommand:
		actionProcessed = mh.handleActionCommand(actionEvent)
	default:
		logger.Debugf("ModeHandler: Unknown input mode: %v", mh.currentMode)
		actionProcessed = false
	}

	return actionProcessed || (actionEvent.Action == input.ActionQuit && mh.forceQuitPending)
}

// RegisterCommand adds a named ':' command. Later registrations win.
func (mh *ModeHandler) RegisterCommand(name string, fn CommandFunc) {
	if _, exists := mh.commands[name]; exists {
		logger.Warnf("ModeHandler: Command ':%s' re-registered", name)
	}
	mh.commands[name] = fn
}

// GetCurrentMode returns the active input mode.
func (mh *ModeHandler) GetCurrentMode() InputMode {
	return mh.currentMode
}

// GetCurrentModeString returns the mode name for the status bar.
func (mh *ModeHandler) GetCurrentModeString() string {
	switch mh.currentMode {
	case ModeText:
		return "TEXT"
	case ModeCommand:
		return "COMMAND"
	default:
		return ""
	}
}

// GetCommandBuffer returns the in-progress ':' command line.
func (mh *ModeHandler) GetCommandBuffer() string {
	return mh.cmdBuffer
}

// setMode switches modes and announces the change.
func (mh *ModeHandler) setMode(mode InputMode) {
	if mh.currentMode == mode {
		return
	}
	mh.currentMode = mode
	mh.eventManager.Dispatch(event.TypeModeChanged, event.ModeChangedData{Mode: mh.GetCurrentModeString()})
}

// HandleQuitRequest runs the normal quit path, including the
// unsaved-changes confirmation. Used by ':' commands.
func (mh *ModeHandler) HandleQuitRequest() {
	mh.requestQuit(false)
}

// requestQuit signals termination, honoring unsaved changes unless forced.
func (mh *ModeHandler) requestQuit(force bool) {
	if !force && mh.editor.IsModified() && !mh.forceQuitPending {
		mh.forceQuitPending = true
		mh.statusBar.SetTemporaryMessage("Unsaved changes! Press again to quit without saving")
		return
	}
	select {
	case mh.quitSignal <- struct{}{}:
	default: // quit already pending
	}
}
