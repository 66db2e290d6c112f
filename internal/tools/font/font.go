// Package font restyles text through discrete stepped adjustments: size and
// letter-spacing nudges, weight and alignment cycling. Every keypress pushes
// one style change per selected element; repeated adjustments of the same
// property on the same element coalesce in the manager's merge window, so a
// burst of taps costs one undo step.
package font

import (
	"fmt"

	"github.com/forma-editor/forma/internal/core/history"
	"github.com/forma-editor/forma/internal/core/selection"
	"github.com/forma-editor/forma/internal/dom"
	"github.com/forma-editor/forma/internal/utils"
)

// EditorInterface defines what the font tool needs from the editor.
type EditorInterface interface {
	Selection() *selection.Manager
	History() *history.Manager
	MarkModified(path string)
}

const (
	defaultFontSize   = 16 // browsers default to 16px when unset
	minFontSize       = 1
	letterSpacingStep = 0.5
)

var weightCycle = []string{"normal", "bold", "lighter"}
var alignCycle = []string{"left", "center", "right", "justify"}

// Tool implements the font adjustments.
type Tool struct {
	editor EditorInterface
}

// New creates the font tool; a nil editor is fatal at setup.
func New(editor EditorInterface) (*Tool, error) {
	if editor == nil {
		return nil, fmt.Errorf("font tool requires an editor")
	}
	return &Tool{editor: editor}, nil
}

// AdjustSize steps font-size by delta px on every selected element.
func (t *Tool) AdjustSize(delta int) bool {
	return t.apply("font-size", func(old string) string {
		size := utils.PxValue(old)
		if size == 0 {
			size = defaultFontSize
		}
		size += delta
		if size < minFontSize {
			size = minFontSize
		}
		return utils.Px(size)
	})
}

// AdjustLetterSpacing steps letter-spacing by direction half-pixels.
func (t *Tool) AdjustLetterSpacing(direction int) bool {
	return t.apply("letter-spacing", func(old string) string {
		spacing := utils.FloatPxValue(old)
		spacing += float64(direction) * letterSpacingStep
		if spacing == 0 {
			return "" // back to unset rather than "0px"
		}
		return utils.FloatPx(spacing)
	})
}

// CycleWeight advances font-weight through normal -> bold -> lighter.
func (t *Tool) CycleWeight() bool {
	return t.apply("font-weight", func(old string) string {
		return nextInCycle(weightCycle, old)
	})
}

// CycleAlignment advances text-align through left -> center -> right -> justify.
func (t *Tool) CycleAlignment() bool {
	return t.apply("text-align", func(old string) string {
		return nextInCycle(alignCycle, old)
	})
}

// apply runs one discrete adjustment against the whole selection, following
// the shared tool contract: capture old, mutate live, push the committed
// pair. Multi-selections wrap the keypress in a batch so one undo restores
// every element.
func (t *Tool) apply(property string, step func(old string) string) bool {
	els := t.editor.Selection().All()
	if len(els) == 0 {
		return false
	}

	hist := t.editor.History()
	batched := len(els) > 1
	if batched {
		hist.BeginBatch()
	}

	pushed := false
	for _, el := range els {
		if !el.Attached() {
			continue
		}
		old := el.StyleProperty(property)
		next := step(old)
		if next == old {
			continue
		}
		el.SetStyleProperty(property, next)
		hist.Push(history.NewStyleChange(el, property, old, next))
		t.editor.MarkModified(el.Path())
		pushed = true
	}

	if batched {
		hist.EndBatch()
	}
	return pushed
}

// SelectedTextElements filters the selection down to elements that carry
// text, for hosts that want to grey the tool out.
func (t *Tool) SelectedTextElements() []*dom.Element {
	var out []*dom.Element
	for _, el := range t.editor.Selection().All() {
		if el.Attached() && el.Text() != "" {
			out = append(out, el)
		}
	}
	return out
}

func nextInCycle(cycle []string, current string) string {
	for i, v := range cycle {
		if v == current {
			return cycle[(i+1)%len(cycle)]
		}
	}
	// Unset or unrecognized: move to the second state, the first being the
	// effective default.
	return cycle[1]
}
