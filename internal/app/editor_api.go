// internal/app/editor_api.go
package app

import (
	"fmt"

	"github.com/forma-editor/forma/internal/modehandler"
	"github.com/forma-editor/forma/internal/theme"
)

// editorAPI adapts the App for the commands package, satisfying both
// commands.EditorAPI and commands.ThemeAPI.
type editorAPI struct {
	app *App
}

func newEditorAPI(app *App) *editorAPI {
	return &editorAPI{app: app}
}

func (api *editorAPI) RegisterCommand(name string, fn modehandler.CommandFunc) {
	api.app.modeHandler.RegisterCommand(name, fn)
}

func (api *editorAPI) SaveDocument() error {
	return api.app.editor.Save()
}

func (api *editorAPI) SwapImage(src string) bool {
	return api.app.imageTool.SwapSelected(src)
}

// HistoryEntries formats the undo stack oldest first, one "<id> <summary>"
// line per change.
func (api *editorAPI) HistoryEntries() []string {
	changes := api.app.editor.History().History()
	out := make([]string, len(changes))
	for i, c := range changes {
		out[i] = fmt.Sprintf("%s %s", c.ID(), c)
	}
	return out
}

func (api *editorAPI) ClearHistory() {
	api.app.editor.History().Clear()
}

func (api *editorAPI) Quit(force bool) {
	if force {
		select {
		case api.app.quit <- struct{}{}:
		default:
		}
		return
	}
	// Respect the unsaved-changes confirmation path
	api.app.modeHandler.HandleQuitRequest()
}

func (api *editorAPI) SetStatusMessage(format string, args ...interface{}) {
	api.app.statusBar.SetTemporaryMessage(format, args...)
}

// --- commands.ThemeAPI ---

func (api *editorAPI) GetTheme() *theme.Theme {
	return api.app.themeManager.Current()
}

func (api *editorAPI) SetTheme(name string) error {
	if err := api.app.themeManager.SetTheme(name); err != nil {
		return err
	}
	api.app.requestRedraw()
	return nil
}

func (api *editorAPI) ListThemes() []string {
	return api.app.themeManager.ListThemes()
}
