// internal/app/app.go
package app

import (
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/forma-editor/forma/internal/commands"
	"github.com/forma-editor/forma/internal/config"
	"github.com/forma-editor/forma/internal/core"
	"github.com/forma-editor/forma/internal/core/clipboard"
	"github.com/forma-editor/forma/internal/core/history"
	"github.com/forma-editor/forma/internal/dom"
	"github.com/forma-editor/forma/internal/event"
	"github.com/forma-editor/forma/internal/input"
	"github.com/forma-editor/forma/internal/logger"
	"github.com/forma-editor/forma/internal/markup"
	"github.com/forma-editor/forma/internal/modehandler"
	"github.com/forma-editor/forma/internal/statusbar"
	"github.com/forma-editor/forma/internal/theme"
	"github.com/forma-editor/forma/internal/tools/font"
	"github.com/forma-editor/forma/internal/tools/image"
	"github.com/forma-editor/forma/internal/tools/position"
	"github.com/forma-editor/forma/internal/tools/text"
	"github.com/forma-editor/forma/internal/tui"
)

const emptyDocument = `<!DOCTYPE html><html><head><title>Untitled</title></head><body></body></html>`

// App encapsulates the core components and main loop of the editor.
type App struct {
	tuiManager    *tui.TUI
	editor        *core.Editor
	statusBar     *statusbar.StatusBar
	eventManager  *event.Manager
	modeHandler   *modehandler.ModeHandler
	markupManager *markup.Manager
	themeManager  *theme.Manager
	clipboard     *clipboard.Manager
	positionTool  *position.Tool
	textTool      *text.Tool
	fontTool      *font.Tool
	imageTool     *image.Tool
	filePath      string
	cfg           *config.Config

	// Channels managed by the App
	quit          chan struct{}
	redrawRequest chan struct{}

	layout tui.Layout

	// Mouse drag state: which outline row started the press
	dragActive bool

	// Primary selected element whose geometry feeds the status bar label.
	observedPrimary *dom.Element
}

// NewApp creates and initializes a new application instance.
func NewApp(filePath string, cfg *config.Config) (*App, error) {
	tuiManager, err := tui.New()
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}

	doc, err := loadDocument(filePath)
	if err != nil {
		tuiManager.Close()
		return nil, err
	}

	eventManager := event.NewManager()
	editor, err := core.NewEditor(doc, eventManager, history.Options{
		MaxSize:     cfg.Editor.MaxHistory,
		MergeWindow: time.Duration(cfg.Editor.MergeWindowMS) * time.Millisecond,
	})
	if err != nil {
		tuiManager.Close()
		return nil, fmt.Errorf("editor initialization failed: %w", err)
	}

	inputProcessor := input.NewInputProcessor()
	statusBar := statusbar.New(statusbar.DefaultConfig())
	themeManager := theme.NewManager()
	quitChan := make(chan struct{}, 1)

	clipboardMgr, err := clipboard.NewManager(editor, cfg.Editor.SystemClipboard)
	if err != nil {
		tuiManager.Close()
		return nil, fmt.Errorf("clipboard initialization failed: %w", err)
	}

	positionTool, err := position.New(editor, cfg.Editor.DragThresholdPx, cfg.Editor.NudgeStepPx)
	if err != nil {
		tuiManager.Close()
		return nil, err
	}
	textTool, err := text.New(editor)
	if err != nil {
		tuiManager.Close()
		return nil, err
	}
	fontTool, err := font.New(editor)
	if err != nil {
		tuiManager.Close()
		return nil, err
	}
	imageTool, err := image.New(editor)
	if err != nil {
		tuiManager.Close()
		return nil, err
	}

	modeHandler := modehandler.New(modehandler.Config{
		Editor:         editor,
		PositionTool:   positionTool,
		TextTool:       textTool,
		FontTool:       fontTool,
		ImageTool:      imageTool,
		Clipboard:      clipboardMgr,
		InputProcessor: inputProcessor,
		EventManager:   eventManager,
		StatusBar:      statusBar,
		QuitSignal:     quitChan,
	})

	appInstance := &App{
		tuiManager:    tuiManager,
		editor:        editor,
		statusBar:     statusBar,
		eventManager:  eventManager,
		modeHandler:   modeHandler,
		themeManager:  themeManager,
		clipboard:     clipboardMgr,
		positionTool:  positionTool,
		textTool:      textTool,
		fontTool:      fontTool,
		imageTool:     imageTool,
		filePath:      filePath,
		cfg:           cfg,
		quit:          quitChan,
		redrawRequest: make(chan struct{}, 1),
	}

	markupManager, err := markup.NewManager(doc, eventManager, appInstance.requestRedraw)
	if err != nil {
		tuiManager.Close()
		return nil, fmt.Errorf("markup preview initialization failed: %w", err)
	}
	appInstance.markupManager = markupManager

	// --- Register Built-in Commands ---
	api := newEditorAPI(appInstance)
	commands.RegisterAppCommands(api)
	commands.RegisterThemeCommands(api, api)

	// --- Subscribe Core Components (App level wiring) ---
	eventManager.Subscribe(event.TypeSelectionChanged, appInstance.handleSelectionChanged)
	eventManager.Subscribe(event.TypeHistoryChanged, appInstance.handleHistoryChanged)
	eventManager.Subscribe(event.TypeDocumentModified, appInstance.handleDocumentModified)
	eventManager.Subscribe(event.TypeDocumentSaved, appInstance.handleDocumentSaved)
	eventManager.Subscribe(event.TypeModeChanged, appInstance.handleModeChanged)

	// Initial preview render
	eventManager.Dispatch(event.TypeDocumentLoaded, event.DocumentLoadedData{FilePath: filePath})

	return appInstance, nil
}

// loadDocument opens filePath, or builds an empty document bound to that
// path when the file does not exist yet.
func loadDocument(filePath string) (*dom.Document, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		doc, parseErr := dom.ParseString(emptyDocument)
		if parseErr != nil {
			return nil, parseErr
		}
		doc.SetFilePath(filePath)
		logger.Infof("App: '%s' does not exist, starting empty document", filePath)
		return doc, nil
	}
	return dom.ParseFile(filePath)
}

// Run starts the application's main event and drawing loops.
func (a *App) Run() error {
	defer a.tuiManager.Close()

	go a.eventLoop()

	a.eventManager.Dispatch(event.TypeAppReady, event.AppReadyData{})
	a.statusBar.SetTemporaryMessage("Forma - Tab select | arrows nudge | : commands | Ctrl+S save")
	a.requestRedraw()

	for {
		select {
		case <-a.quit:
			a.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{})
			if a.editor.IsModified() {
				logger.Warnf("Exited with unsaved changes.")
			}
			return nil
		case <-a.redrawRequest:
			a.draw()
		}
	}
}

// eventLoop handles TUI events, delegating key events to ModeHandler.
func (a *App) eventLoop() {
	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return
		}

		needsRedraw := false

		switch eventData := ev.(type) {
		case *tcell.EventResize:
			a.tuiManager.GetScreen().Sync()
			needsRedraw = true

		case *tcell.EventKey:
			needsRedraw = a.modeHandler.HandleKeyEvent(eventData)

		case *tcell.EventMouse:
			needsRedraw = a.handleMouseEvent(eventData)
		}

		if needsRedraw {
			a.requestRedraw()
		}
	}
}

// handleMouseEvent maps outline clicks to selection and button-down motion
// to the position tool's drag gesture.
func (a *App) handleMouseEvent(ev *tcell.EventMouse) bool {
	x, y := ev.Position()
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.Button1 != 0 && !a.dragActive:
		doc := a.editor.Document()
		els := doc.Elements(doc.Body())
		row := a.layout.OutlineRow(x, y, len(els))
		if row < 0 {
			return false
		}
		target := els[row]
		a.editor.Selection().Set(target)
		if err := a.positionTool.BeginDrag(target, x, y); err != nil {
			logger.Debugf("App: BeginDrag failed: %v", err)
			return true
		}
		a.dragActive = true
		return true

	case buttons&tcell.Button1 != 0 && a.dragActive:
		a.positionTool.DragTo(x, y)
		return true

	case buttons == tcell.ButtonNone && a.dragActive:
		a.dragActive = false
		if a.positionTool.EndDrag(x, y) {
			a.statusBar.SetTemporaryMessage("Moved %s", a.editor.Selection().Primary().Path())
		}
		return true
	}

	return false
}

// draw renders all panes.
func (a *App) draw() {
	a.updateStatusBarContent()

	screen := a.tuiManager.GetScreen()
	width, height := a.tuiManager.Size()
	activeTheme := a.themeManager.Current()

	a.layout = tui.ComputeLayout(width, height, a.cfg.Editor.StatusBarHeight)

	a.tuiManager.Clear()
	tui.DrawOutline(a.tuiManager, a.editor.Document(), a.editor.Selection().All(), activeTheme, a.layout)
	tui.DrawPreview(a.tuiManager, a.markupManager, activeTheme, a.layout)
	a.statusBar.Draw(screen, width, height)
	a.tuiManager.Show()
}

// updateStatusBarContent pushes current editor state to the status bar component.
func (a *App) updateStatusBarContent() {
	a.statusBar.SetFileInfo(a.editor.Document().FilePath(), a.editor.IsModified())
	a.statusBar.SetEditorMode(a.modeHandler.GetCurrentModeString())

	primaryPath := ""
	if primary := a.editor.Selection().Primary(); primary != nil {
		primaryPath = primary.Path()
	}
	a.statusBar.SetSelectionInfo(primaryPath, a.editor.Selection().Len())

	hist := a.editor.History()
	a.statusBar.SetHistoryInfo(hist.CanUndo(), hist.CanRedo())

	if a.modeHandler.GetCurrentMode() == modehandler.ModeCommand {
		a.statusBar.SetTemporaryMessage(":%s", a.modeHandler.GetCommandBuffer())
	}
}

// requestRedraw sends a redraw signal non-blockingly.
func (a *App) requestRedraw() {
	select {
	case a.redrawRequest <- struct{}{}:
	default: // Don't block if a redraw is already pending
	}
}
