// internal/tui/drawing.go
package tui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/forma-editor/forma/internal/dom"
	"github.com/forma-editor/forma/internal/markup"
	"github.com/forma-editor/forma/internal/theme"
)

// OutlineWidthFraction is how much of the screen the outline pane takes;
// the markup preview gets the rest.
const OutlineWidthFraction = 0.45

// Layout describes the pane split for one frame. The app uses it for mouse
// hit-testing against the outline rows.
type Layout struct {
	OutlineX, OutlineY, OutlineW, OutlineH int
	PreviewX, PreviewY, PreviewW, PreviewH int
}

// ComputeLayout splits the screen into outline and preview panes, reserving
// statusHeight rows at the bottom.
func ComputeLayout(width, height, statusHeight int) Layout {
	contentH := height - statusHeight - 1 // one row for pane titles
	if contentH < 0 {
		contentH = 0
	}
	outlineW := int(float64(width) * OutlineWidthFraction)
	if outlineW < 1 {
		outlineW = 1
	}
	return Layout{
		OutlineX: 0, OutlineY: 1, OutlineW: outlineW, OutlineH: contentH,
		PreviewX: outlineW + 1, PreviewY: 1, PreviewW: width - outlineW - 1, PreviewH: contentH,
	}
}

// OutlineRow maps a screen row inside the outline pane back to the element
// index it displays, or -1 when the row is empty.
func (l Layout) OutlineRow(x, y, elementCount int) int {
	if x < l.OutlineX || x >= l.OutlineX+l.OutlineW {
		return -1
	}
	idx := y - l.OutlineY
	if idx < 0 || idx >= l.OutlineH || idx >= elementCount {
		return -1
	}
	return idx
}

// DrawOutline renders the document's elements as one row each, marking
// selected elements and the primary selection.
func DrawOutline(t *TUI, doc *dom.Document, selected []*dom.Element, activeTheme *theme.Theme, l Layout) {
	screen := t.GetScreen()
	pathStyle := activeTheme.GetStyle("OutlinePath")
	textStyle := activeTheme.GetStyle("OutlineText")
	titleStyle := activeTheme.GetStyle("PaneTitle")

	drawText(screen, l.OutlineX, 0, l.OutlineW, "Document", titleStyle)

	els := doc.Elements(doc.Body())
	for i, el := range els {
		if i >= l.OutlineH {
			break
		}
		y := l.OutlineY + i

		style := pathStyle
		for j, sel := range selected {
			if sel.Node() == el.Node() {
				if j == 0 {
					style = activeTheme.GetStyle("SelectionPrimary")
				} else {
					style = activeTheme.GetStyle("Selection")
				}
				break
			}
		}

		label := outlineLabel(el)
		x := drawText(screen, l.OutlineX, y, l.OutlineW, label, style)

		snippet := strings.TrimSpace(el.Text())
		if snippet != "" && x < l.OutlineX+l.OutlineW-1 {
			drawText(screen, x+1, y, l.OutlineX+l.OutlineW-x-1, snippet, textStyle)
		}
	}
}

// outlineLabel is the short form shown per row: tag#id with the indent
// tracking tree depth.
func outlineLabel(el *dom.Element) string {
	depth := 0
	for p := el.Parent(); p != nil && p.Tag() != "body"; p = p.Parent() {
		depth++
	}
	label := el.Tag()
	if id := el.Attr("id"); id.Present && id.Val != "" {
		label = fmt.Sprintf("%s#%s", label, id.Val)
	}
	return strings.Repeat("  ", depth) + label
}

// DrawPreview renders the serialized markup with its syntax highlights.
func DrawPreview(t *TUI, mgr *markup.Manager, activeTheme *theme.Theme, l Layout) {
	screen := t.GetScreen()
	defaultStyle := activeTheme.GetStyle("Default")
	titleStyle := activeTheme.GetStyle("PaneTitle")

	drawText(screen, l.PreviewX, 0, l.PreviewW, "Markup", titleStyle)

	lines := mgr.Lines()
	for i, line := range lines {
		if i >= l.PreviewH {
			break
		}
		y := l.PreviewY + i
		ranges := mgr.LineHighlights(i)

		col := 0        // rune column within the line
		x := l.PreviewX // screen column
		gr := uniseg.NewGraphemes(line)
		for gr.Next() {
			width := gr.Width()
			if x+width > l.PreviewX+l.PreviewW {
				break
			}

			style := defaultStyle
			for _, r := range ranges {
				if col >= r.StartCol && col < r.EndCol {
					style = activeTheme.GetStyle(r.StyleName)
					break
				}
			}

			runes := gr.Runes()
			if len(runes) > 0 {
				var combining []rune
				if len(runes) > 1 {
					combining = runes[1:]
				}
				screen.SetContent(x, y, runes[0], combining, style)
			}

			x += width
			col += len(runes)
		}
	}
}

// drawText writes a clipped string and returns the x position after the last
// cell drawn.
func drawText(screen tcell.Screen, x, y, maxWidth int, text string, style tcell.Style) int {
	gr := uniseg.NewGraphemes(text)
	cur := x
	for gr.Next() {
		width := gr.Width()
		if cur+width > x+maxWidth {
			break
		}
		runes := gr.Runes()
		if len(runes) > 0 {
			var combining []rune
			if len(runes) > 1 {
				combining = runes[1:]
			}
			screen.SetContent(cur, y, runes[0], combining, style)
		}
		cur += width
	}
	return cur
}
