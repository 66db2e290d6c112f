// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/forma-editor/forma/internal/logger"
)

// Theme maps style names to tcell styles.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle resolves a style name, falling back to its base name (the part
// before the first dot) and then to "Default".
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}

	baseName := name
	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		baseName = name[:dotIndex]
		if style, ok := t.Styles[baseName]; ok {
			return style
		}
	}

	if defStyle, ok := t.Styles["Default"]; ok {
		if name != "Default" {
			logger.Debugf("Theme '%s': Style '%s' not found, falling back to 'Default'", t.Name, name)
		}
		return defStyle
	}

	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// --- Forma Dark Theme Definition ---

var FormaDark Theme

func init() {
	// --- Palette ---
	fdBackground := tcell.NewHexColor(0x2a2f38) // Muted dark blue/grey (StatusBar BG)
	fdForeground := tcell.NewHexColor(0xc5cdd9) // Soft off-white (Default Text)
	fdComment := tcell.NewHexColor(0x5c6370)    // Muted Grey (Comments, Punctuation)
	fdYellow := tcell.NewHexColor(0xe5c07b)     // Soft Yellow (Attributes)
	fdGreen := tcell.NewHexColor(0x98c379)      // Soft Green (Strings)
	fdCyan := tcell.NewHexColor(0x56b6c2)       // Soft Cyan (Element paths)
	fdBlue := tcell.NewHexColor(0x61afef)       // Soft Blue (Tags, Keywords)

	baseStyle := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(fdForeground)

	FormaDark = Theme{
		Name:   "Forma Dark",
		IsDark: true,
		Styles: map[string]tcell.Style{
			// --- UI Elements ---
			"Default":          baseStyle,
			"Selection":        baseStyle.Reverse(true),
			"SelectionPrimary": baseStyle.Reverse(true).Bold(true),
			"OutlinePath":      baseStyle.Foreground(fdCyan),
			"OutlineText":      baseStyle.Foreground(fdComment),
			"PaneTitle":        baseStyle.Foreground(fdYellow).Bold(true),

			"StatusBar":         tcell.StyleDefault.Background(fdBackground).Foreground(fdForeground),
			"StatusBarModified": tcell.StyleDefault.Background(fdBackground).Foreground(fdYellow),
			"StatusBarMessage":  tcell.StyleDefault.Background(fdBackground).Foreground(fdForeground).Bold(true),

			// --- Markup Highlighting ---
			"tag":       baseStyle.Foreground(fdBlue).Bold(true),
			"attribute": baseStyle.Foreground(fdYellow),
			"string":    baseStyle.Foreground(fdGreen),
			"comment":   baseStyle.Foreground(fdComment).Italic(true),
			"keyword":   baseStyle.Foreground(fdBlue).Bold(true),
		},
	}

	CurrentTheme = &FormaDark
}

// CurrentTheme is the process-wide active theme.
var CurrentTheme *Theme

func GetCurrentTheme() *Theme {
	if CurrentTheme == nil {
		CurrentTheme = &FormaDark
	}
	return CurrentTheme
}

func SetCurrentTheme(theme *Theme) {
	if theme != nil {
		CurrentTheme = theme
		logger.Infof("Theme switched to: %s", theme.Name)
	}
}
