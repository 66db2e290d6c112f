package font

import (
	"testing"
	"time"

	"github.com/go-playground/assert/v2"

	"github.com/forma-editor/forma/internal/core"
	"github.com/forma-editor/forma/internal/core/history"
	"github.com/forma-editor/forma/internal/dom"
	"github.com/forma-editor/forma/internal/event"
)

func testEditor(t *testing.T) *core.Editor {
	t.Helper()
	doc, err := dom.ParseString(`<html><body>
<p id="a" style="font-size: 20px">alpha</p>
<p id="b">beta</p>
<div id="empty"></div>
</body></html>`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	ed, err := core.NewEditor(doc, event.NewManager(), history.Options{MergeWindow: time.Second})
	if err != nil {
		t.Fatalf("NewEditor() error = %v", err)
	}
	return ed
}

func newTool(t *testing.T, ed *core.Editor) *Tool {
	t.Helper()
	tool, err := New(ed)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return tool
}

func TestNew_RequiresEditor(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatalf("New(nil) expected error")
	}
}

func TestAdjustSize(t *testing.T) {
	ed := testEditor(t)
	tool := newTool(t, ed)
	doc := ed.Document()
	a := doc.ElementByID("a")
	b := doc.ElementByID("b")

	// Explicit size steps from its current value.
	ed.Selection().Set(a)
	tool.AdjustSize(2)
	assert.Equal(t, "22px", a.StyleProperty("font-size"))

	// Unset size steps from the 16px default.
	ed.Selection().Set(b)
	tool.AdjustSize(2)
	assert.Equal(t, "18px", b.StyleProperty("font-size"))

	// Floor at 1px.
	tool.AdjustSize(-100)
	assert.Equal(t, "1px", b.StyleProperty("font-size"))
}

func TestAdjustSize_BurstCoalesces(t *testing.T) {
	ed := testEditor(t)
	tool := newTool(t, ed)
	a := ed.Document().ElementByID("a")
	ed.Selection().Set(a)

	tool.AdjustSize(1)
	tool.AdjustSize(1)
	tool.AdjustSize(1)
	assert.Equal(t, "23px", a.StyleProperty("font-size"))
	assert.Equal(t, 1, len(ed.History().History()))

	ed.Undo()
	assert.Equal(t, "20px", a.StyleProperty("font-size"))
}

func TestAdjustLetterSpacing_ZeroUnsets(t *testing.T) {
	ed := testEditor(t)
	tool := newTool(t, ed)
	a := ed.Document().ElementByID("a")
	ed.Selection().Set(a)

	tool.AdjustLetterSpacing(1)
	assert.Equal(t, "0.5px", a.StyleProperty("letter-spacing"))

	// Stepping back to zero removes the declaration instead of writing "0px".
	tool.AdjustLetterSpacing(-1)
	assert.Equal(t, "", a.StyleProperty("letter-spacing"))
}

func TestCycleWeight(t *testing.T) {
	ed := testEditor(t)
	tool := newTool(t, ed)
	a := ed.Document().ElementByID("a")
	ed.Selection().Set(a)

	// Unset is effectively "normal", so the first press lands on "bold".
	tool.CycleWeight()
	assert.Equal(t, "bold", a.StyleProperty("font-weight"))
	tool.CycleWeight()
	assert.Equal(t, "lighter", a.StyleProperty("font-weight"))
	tool.CycleWeight()
	assert.Equal(t, "normal", a.StyleProperty("font-weight"))
}

func TestCycleAlignment(t *testing.T) {
	ed := testEditor(t)
	tool := newTool(t, ed)
	a := ed.Document().ElementByID("a")
	ed.Selection().Set(a)

	got := []string{}
	for i := 0; i < 4; i++ {
		tool.CycleAlignment()
		got = append(got, a.StyleProperty("text-align"))
	}
	assert.Equal(t, []string{"center", "right", "justify", "left"}, got)
}

func TestApply_MultiSelectionBatches(t *testing.T) {
	ed := testEditor(t)
	tool := newTool(t, ed)
	doc := ed.Document()
	a := doc.ElementByID("a")
	b := doc.ElementByID("b")
	ed.Selection().Set(a, b)

	tool.CycleWeight()
	assert.Equal(t, "bold", a.StyleProperty("font-weight"))
	assert.Equal(t, "bold", b.StyleProperty("font-weight"))

	hist := ed.History().History()
	assert.Equal(t, 1, len(hist))
	if _, ok := hist[0].(*history.BatchChange); !ok {
		t.Fatalf("multi-selection keypress pushed %T, want *history.BatchChange", hist[0])
	}

	ed.Undo()
	assert.Equal(t, "", a.StyleProperty("font-weight"))
	assert.Equal(t, "", b.StyleProperty("font-weight"))
}

func TestApply_EmptySelection(t *testing.T) {
	ed := testEditor(t)
	tool := newTool(t, ed)

	assert.Equal(t, false, tool.AdjustSize(1))
	assert.Equal(t, false, ed.History().CanUndo())
}

func TestSelectedTextElements(t *testing.T) {
	ed := testEditor(t)
	tool := newTool(t, ed)
	doc := ed.Document()
	ed.Selection().Set(doc.ElementByID("a"), doc.ElementByID("empty"))

	els := tool.SelectedTextElements()
	assert.Equal(t, 1, len(els))
	assert.Equal(t, "alpha", els[0].Text())
}
