package commands

import (
	"fmt"
	"strings"

	"github.com/forma-editor/forma/internal/theme"
)

// ThemeAPI exposes theme operations to ':' commands.
type ThemeAPI interface {
	GetTheme() *theme.Theme
	SetTheme(name string) error
	ListThemes() []string
	SetStatusMessage(format string, args ...interface{})
}

// RegisterThemeCommands registers :theme and :themes.
func RegisterThemeCommands(api EditorAPI, themeAPI ThemeAPI) {
	api.RegisterCommand("theme", func(args []string) error {
		if len(args) == 0 {
			themeAPI.SetStatusMessage("Current theme: %s", themeAPI.GetTheme().Name)
			return nil
		}

		themeName := strings.Join(args, " ") // Allow theme names with spaces
		if err := themeAPI.SetTheme(themeName); err != nil {
			return fmt.Errorf("theme '%s' not found. Available: %s", themeName, strings.Join(themeAPI.ListThemes(), ", "))
		}
		themeAPI.SetStatusMessage("Theme set to: %s", themeName)
		return nil
	})

	api.RegisterCommand("themes", func(args []string) error {
		themeAPI.SetStatusMessage("Available themes: %s", strings.Join(themeAPI.ListThemes(), ", "))
		return nil
	})
}
