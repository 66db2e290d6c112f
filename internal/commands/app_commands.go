package commands

import (
	"fmt"
	"strings"

	"github.com/forma-editor/forma/internal/modehandler"
)

// EditorAPI is the surface commands run against. The app implements it.
type EditorAPI interface {
	RegisterCommand(name string, fn modehandler.CommandFunc)
	SaveDocument() error
	SwapImage(src string) bool
	HistoryEntries() []string
	ClearHistory()
	Quit(force bool)
	SetStatusMessage(format string, args ...interface{})
}

// RegisterAppCommands registers the built-in ':' commands.
func RegisterAppCommands(api EditorAPI) {
	api.RegisterCommand("w", func(args []string) error {
		if err := api.SaveDocument(); err != nil {
			return err
		}
		api.SetStatusMessage("Saved")
		return nil
	})

	api.RegisterCommand("q", func(args []string) error {
		api.Quit(false)
		return nil
	})

	api.RegisterCommand("q!", func(args []string) error {
		api.Quit(true)
		return nil
	})

	api.RegisterCommand("wq", func(args []string) error {
		if err := api.SaveDocument(); err != nil {
			return err
		}
		api.Quit(false)
		return nil
	})

	// :img <src> swaps the source of every selected image element.
	api.RegisterCommand("img", func(args []string) error {
		if len(args) == 0 {
			return fmt.Errorf("usage: img <src>")
		}
		src := strings.Join(args, " ") // Allow URLs with spaces when quoted poorly
		if !api.SwapImage(src) {
			return fmt.Errorf("no selected image to update")
		}
		api.SetStatusMessage("Image source set to %s", src)
		return nil
	})

	// :history lists the newest undo entries with their identifiers.
	api.RegisterCommand("history", func(args []string) error {
		if len(args) == 1 && args[0] == "clear" {
			api.ClearHistory()
			api.SetStatusMessage("History cleared")
			return nil
		}
		entries := api.HistoryEntries()
		if len(entries) == 0 {
			api.SetStatusMessage("History empty")
			return nil
		}
		recent := entries
		if len(recent) > 3 {
			recent = recent[len(recent)-3:]
		}
		api.SetStatusMessage("%d undo entr(ies): %s", len(entries), strings.Join(recent, " | "))
		return nil
	})
}
