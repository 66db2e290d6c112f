// Package position moves elements by editing their inline left/top styles.
//
// It follows the shared tool contract: capture pre-state at gesture start,
// mutate the DOM live during the gesture without touching history, then at
// commit compare captured state to the live state and push only the net
// result. Drags batch both axes into one undo step; keyboard nudges push one
// change per keypress per element and rely on the manager's merge window to
// collapse bursts.
package position

import (
	"fmt"

	"github.com/forma-editor/forma/internal/core/history"
	"github.com/forma-editor/forma/internal/core/selection"
	"github.com/forma-editor/forma/internal/dom"
	"github.com/forma-editor/forma/internal/logger"
	"github.com/forma-editor/forma/internal/utils"
)

// EditorInterface defines what the position tool needs from the editor.
type EditorInterface interface {
	Selection() *selection.Manager
	History() *history.Manager
	MarkModified(path string)
}

type dragState int

const (
	stateIdle dragState = iota
	stateDragging
)

// Tool implements dragging and nudging.
type Tool struct {
	editor    EditorInterface
	threshold int // px of net movement below which a drag is a click
	step      int // px per keyboard nudge

	state     dragState
	target    *dom.Element
	startLeft string // raw captured style values; "" means not set
	startTop  string
	originX   int
	originY   int
}

// New creates the position tool. A nil editor is a setup error, surfaced
// immediately rather than deferred to the first gesture.
func New(editor EditorInterface, threshold, step int) (*Tool, error) {
	if editor == nil {
		return nil, fmt.Errorf("position tool requires an editor")
	}
	if threshold < 0 {
		threshold = 0
	}
	if step <= 0 {
		step = 1
	}
	return &Tool{editor: editor, threshold: threshold, step: step}, nil
}

// Dragging reports whether a drag gesture is in progress.
func (t *Tool) Dragging() bool {
	return t.state == stateDragging
}

// BeginDrag captures the pre-state synchronously at pointer-down and enters
// the dragging state. Beginning while already dragging abandons the stale
// gesture first.
func (t *Tool) BeginDrag(target *dom.Element, x, y int) error {
	if target == nil {
		return fmt.Errorf("drag requires a target element")
	}
	if t.state == stateDragging {
		t.cancelDrag()
	}
	t.state = stateDragging
	t.target = target
	t.startLeft = target.StyleProperty("left")
	t.startTop = target.StyleProperty("top")
	t.originX = x
	t.originY = y
	logger.Debugf("Position: Drag started at (%d,%d) on %s", x, y, target.Path())
	return nil
}

// DragTo live-mutates the target's position. No history writes happen here;
// history records only committed results.
func (t *Tool) DragTo(x, y int) {
	if t.state != stateDragging {
		return
	}
	t.target.SetStyleProperty("left", utils.Px(utils.PxValue(t.startLeft)+(x-t.originX)))
	t.target.SetStyleProperty("top", utils.Px(utils.PxValue(t.startTop)+(y-t.originY)))
	t.editor.MarkModified(t.target.Path())
}

// EndDrag commits the gesture at pointer-up. Net movement under the
// threshold is reinterpreted as a click: the captured pre-state is restored
// and nothing reaches history. Otherwise the committed delta becomes one
// change per moved axis, batched when both moved.
func (t *Tool) EndDrag(x, y int) bool {
	if t.state != stateDragging {
		return false
	}
	target := t.target
	t.state = stateIdle
	t.target = nil

	dx := x - t.originX
	dy := y - t.originY
	if utils.Abs(dx) < t.threshold && utils.Abs(dy) < t.threshold {
		// A click, not a drag. Put the captured pre-state back so the DOM
		// matches the (unwritten) history.
		t.restore(target)
		logger.Debugf("Position: Drag under threshold, treated as click")
		return false
	}

	var changes []history.Change
	if dx != 0 {
		changes = append(changes, history.NewStyleChange(target, "left", t.startLeft, utils.Px(utils.PxValue(t.startLeft)+dx)))
	}
	if dy != 0 {
		changes = append(changes, history.NewStyleChange(target, "top", t.startTop, utils.Px(utils.PxValue(t.startTop)+dy)))
	}
	if len(changes) == 0 {
		return false
	}
	t.editor.History().PushGroup(changes)
	t.editor.MarkModified(target.Path())
	logger.Debugf("Position: Drag committed, delta (%d,%d)", dx, dy)
	return true
}

func (t *Tool) cancelDrag() {
	if t.target != nil {
		t.restore(t.target)
	}
	t.state = stateIdle
	t.target = nil
}

func (t *Tool) restore(target *dom.Element) {
	target.SetStyleProperty("left", t.startLeft)
	target.SetStyleProperty("top", t.startTop)
	t.editor.MarkModified(target.Path())
}

// Nudge shifts every selected element by (dx,dy) steps. One keypress, one
// change per element per moved axis; a multi-selection wraps the whole set
// in a batch so one undo restores all of them together.
func (t *Tool) Nudge(dx, dy int) bool {
	els := t.editor.Selection().All()
	if len(els) == 0 || (dx == 0 && dy == 0) {
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
		if dx != 0 {
			old := el.StyleProperty("left")
			val := utils.PxValue(old) + dx*t.step
			el.SetStyleProperty("left", utils.Px(val))
			hist.Push(history.NewStyleChange(el, "left", old, utils.Px(val)))
			pushed = true
		}
		if dy != 0 {
			old := el.StyleProperty("top")
			val := utils.PxValue(old) + dy*t.step
			el.SetStyleProperty("top", utils.Px(val))
			hist.Push(history.NewStyleChange(el, "top", old, utils.Px(val)))
			pushed = true
		}
		t.editor.MarkModified(el.Path())
	}

	if batched {
		hist.EndBatch()
	}
	return pushed
}
