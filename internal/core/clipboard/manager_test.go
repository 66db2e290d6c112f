package clipboard

import (
	"testing"

	"github.com/go-playground/assert/v2"

	"github.com/forma-editor/forma/internal/core"
	"github.com/forma-editor/forma/internal/core/history"
	"github.com/forma-editor/forma/internal/dom"
	"github.com/forma-editor/forma/internal/event"
)

func testEditor(t *testing.T) *core.Editor {
	t.Helper()
	doc, err := dom.ParseString(`<html><body><div id="a">one</div><div id="b">two</div><div id="c">three</div></body></html>`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	ed, err := core.NewEditor(doc, event.NewManager(), history.Options{})
	if err != nil {
		t.Fatalf("NewEditor() error = %v", err)
	}
	return ed
}

// Tests run against the internal register; the system clipboard is not
// touched.
func newTestManager(t *testing.T, ed *core.Editor) *Manager {
	t.Helper()
	m, err := NewManager(ed, false)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	return m
}

func TestNewManager_RequiresEditor(t *testing.T) {
	if _, err := NewManager(nil, false); err == nil {
		t.Fatalf("NewManager(nil) expected error")
	}
}

func TestCopy_NothingSelected(t *testing.T) {
	ed := testEditor(t)
	m := newTestManager(t, ed)

	ok, err := m.Copy()
	if err != nil {
		t.Fatalf("Copy() error = %v", err)
	}
	assert.Equal(t, false, ok)
}

func TestCutThenUndoRestores(t *testing.T) {
	ed := testEditor(t)
	m := newTestManager(t, ed)
	doc := ed.Document()

	b := doc.ElementByID("b")
	ed.Selection().Set(b)

	ok, err := m.Cut()
	if err != nil || !ok {
		t.Fatalf("Cut() = %v, %v", ok, err)
	}
	assert.Equal(t, false, b.Attached())
	assert.Equal(t, `<div id="b">two</div>`, m.register)
	assert.Equal(t, true, ed.History().CanUndo())

	if !ed.Undo() {
		t.Fatalf("Undo() failed")
	}
	assert.Equal(t, true, b.Attached())

	// Back between a and c.
	var ids []string
	for _, el := range doc.Elements(doc.Body()) {
		ids = append(ids, el.Attr("id").Val)
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids)
}

func TestCutMultiSelectionIsOneUndoStep(t *testing.T) {
	ed := testEditor(t)
	m := newTestManager(t, ed)
	doc := ed.Document()

	a := doc.ElementByID("a")
	c := doc.ElementByID("c")
	ed.Selection().Set(a, c)

	if ok, err := m.Cut(); err != nil || !ok {
		t.Fatalf("Cut() = %v, %v", ok, err)
	}
	assert.Equal(t, 1, len(ed.History().History()))

	if !ed.Undo() {
		t.Fatalf("Undo() failed")
	}
	assert.Equal(t, true, a.Attached())
	assert.Equal(t, true, c.Attached())
}

func TestPasteInsertsBeforePrimarySelection(t *testing.T) {
	ed := testEditor(t)
	m := newTestManager(t, ed)
	doc := ed.Document()

	m.register = `<span id="new">pasted</span>`
	ed.Selection().Set(doc.ElementByID("b"))

	ok, err := m.Paste()
	if err != nil || !ok {
		t.Fatalf("Paste() = %v, %v", ok, err)
	}

	var ids []string
	for _, el := range doc.Elements(doc.Body()) {
		ids = append(ids, el.Attr("id").Val)
	}
	assert.Equal(t, []string{"a", "new", "b", "c"}, ids)

	// The pasted element becomes the selection and the insert is undoable.
	assert.Equal(t, "new", ed.Selection().Primary().Attr("id").Val)
	if !ed.Undo() {
		t.Fatalf("Undo() failed")
	}
	assert.Equal(t, false, doc.ElementByID("new") != nil && doc.ElementByID("new").Attached())
}

func TestPasteEmptyRegister(t *testing.T) {
	ed := testEditor(t)
	m := newTestManager(t, ed)

	ok, err := m.Paste()
	if err != nil {
		t.Fatalf("Paste() error = %v", err)
	}
	assert.Equal(t, false, ok)
}
