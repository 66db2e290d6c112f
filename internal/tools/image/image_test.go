package image

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
<img id="logo" src="a.png">
<img id="hero">
<p id="caption">text</p>
</body></html>`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	// A generous merge window, to prove swaps never coalesce regardless.
	ed, err := core.NewEditor(doc, event.NewManager(), history.Options{MergeWindow: time.Hour})
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

func TestSwap_RecordsOneChangePerDrop(t *testing.T) {
	ed := testEditor(t)
	tool := newTool(t, ed)
	logo := ed.Document().ElementByID("logo")
	ed.Selection().Set(logo)

	if !tool.SwapSelected("b.png") {
		t.Fatalf("SwapSelected() recorded nothing")
	}
	assert.Equal(t, dom.Attr("b.png"), logo.Attr("src"))
	assert.Equal(t, 1, len(ed.History().History()))

	ed.Undo()
	assert.Equal(t, dom.Attr("a.png"), logo.Attr("src"))
	ed.Redo()
	assert.Equal(t, dom.Attr("b.png"), logo.Attr("src"))
}

func TestSwap_RapidSwapsNeverCoalesce(t *testing.T) {
	ed := testEditor(t)
	tool := newTool(t, ed)
	logo := ed.Document().ElementByID("logo")
	ed.Selection().Set(logo)

	tool.SwapSelected("b.png")
	tool.SwapSelected("c.png")
	tool.SwapSelected("d.png")
	// Merge window is an hour; each drop is still its own undo step.
	assert.Equal(t, 3, len(ed.History().History()))

	ed.Undo()
	assert.Equal(t, dom.Attr("c.png"), logo.Attr("src"))
	ed.Undo()
	assert.Equal(t, dom.Attr("b.png"), logo.Attr("src"))
	ed.Undo()
	assert.Equal(t, dom.Attr("a.png"), logo.Attr("src"))
}

func TestSwap_MissingSrcRoundTripsAsAbsent(t *testing.T) {
	ed := testEditor(t)
	tool := newTool(t, ed)
	hero := ed.Document().ElementByID("hero")

	tool.Swap([]*dom.Element{hero}, "b.png")
	assert.Equal(t, dom.Attr("b.png"), hero.Attr("src"))

	// Undo removes the attribute entirely rather than writing src="".
	ed.Undo()
	assert.Equal(t, false, hero.Attr("src").Present)
}

func TestSwap_MultiTargetBatches(t *testing.T) {
	ed := testEditor(t)
	tool := newTool(t, ed)
	doc := ed.Document()
	logo := doc.ElementByID("logo")
	hero := doc.ElementByID("hero")
	ed.Selection().Set(logo, hero)

	tool.SwapSelected("b.png")
	hist := ed.History().History()
	assert.Equal(t, 1, len(hist))
	if _, ok := hist[0].(*history.BatchChange); !ok {
		t.Fatalf("multi-target swap pushed %T, want *history.BatchChange", hist[0])
	}

	ed.Undo()
	assert.Equal(t, dom.Attr("a.png"), logo.Attr("src"))
	assert.Equal(t, false, hero.Attr("src").Present)
}

func TestSwap_FiltersNonImages(t *testing.T) {
	ed := testEditor(t)
	tool := newTool(t, ed)
	doc := ed.Document()
	caption := doc.ElementByID("caption")
	ed.Selection().Set(caption)

	assert.Equal(t, false, tool.SwapSelected("b.png"))
	assert.Equal(t, false, caption.Attr("src").Present)
	assert.Equal(t, false, ed.History().CanUndo())
}

func TestSwap_UnchangedSrcRecordsNothing(t *testing.T) {
	ed := testEditor(t)
	tool := newTool(t, ed)
	logo := ed.Document().ElementByID("logo")
	ed.Selection().Set(logo)

	assert.Equal(t, false, tool.SwapSelected("a.png"))
	assert.Equal(t, false, ed.History().CanUndo())
}

func TestSwap_EmptyInputs(t *testing.T) {
	ed := testEditor(t)
	tool := newTool(t, ed)
	logo := ed.Document().ElementByID("logo")

	assert.Equal(t, false, tool.Swap(nil, "b.png"))
	assert.Equal(t, false, tool.Swap([]*dom.Element{logo}, ""))
}

func TestCache_PrefetchIgnoresLocalPaths(t *testing.T) {
	c := NewCache()
	c.Prefetch("a.png")
	c.Prefetch("file:///tmp/a.png")
	assert.Equal(t, 0, c.Len())
	if _, ok := c.Get("a.png"); ok {
		t.Fatalf("Get() returned an entry for an unfetchable source")
	}
}
