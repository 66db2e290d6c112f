package text

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
	doc, err := dom.ParseString(`<html><body>
<p id="a">hello</p>
<p id="b">world</p>
</body></html>`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	ed, err := core.NewEditor(doc, event.NewManager(), history.Options{})
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

func TestSession_CommitRecordsOneChange(t *testing.T) {
	ed := testEditor(t)
	tool := newTool(t, ed)
	a := ed.Document().ElementByID("a")

	if err := tool.BeginSession(a); err != nil {
		t.Fatalf("BeginSession() error = %v", err)
	}
	tool.InsertRune('!')
	tool.InsertRune('?')
	tool.DeleteRune()
	assert.Equal(t, "hello!", a.Text())
	// Keystrokes are live mutations, not history entries.
	assert.Equal(t, false, ed.History().CanUndo())

	if !tool.EndSession() {
		t.Fatalf("EndSession() recorded nothing")
	}
	assert.Equal(t, 1, len(ed.History().History()))

	ed.Undo()
	assert.Equal(t, "hello", a.Text())
	ed.Redo()
	assert.Equal(t, "hello!", a.Text())
}

func TestSession_UnchangedRecordsNothing(t *testing.T) {
	ed := testEditor(t)
	tool := newTool(t, ed)
	a := ed.Document().ElementByID("a")

	tool.BeginSession(a)
	tool.InsertRune('x')
	tool.DeleteRune()
	assert.Equal(t, false, tool.EndSession())
	assert.Equal(t, false, ed.History().CanUndo())
}

func TestSession_CancelRestoresPreState(t *testing.T) {
	ed := testEditor(t)
	tool := newTool(t, ed)
	a := ed.Document().ElementByID("a")

	tool.BeginSession(a)
	tool.InsertRune('z')
	tool.CancelSession()
	assert.Equal(t, "hello", a.Text())
	assert.Equal(t, false, ed.History().CanUndo())
	if tool.Active() != nil {
		t.Fatalf("Active() = %v after cancel, want nil", tool.Active())
	}
}

func TestSession_BeginCommitsOpenSession(t *testing.T) {
	ed := testEditor(t)
	tool := newTool(t, ed)
	doc := ed.Document()
	a := doc.ElementByID("a")
	b := doc.ElementByID("b")

	tool.BeginSession(a)
	tool.InsertRune('!')
	// Switching targets commits the first session first.
	tool.BeginSession(b)
	assert.Equal(t, 1, len(ed.History().History()))
	assert.Equal(t, b, tool.Active())

	tool.InsertRune('?')
	tool.EndSession()
	assert.Equal(t, 2, len(ed.History().History()))

	// Undo walks back in commit order.
	ed.Undo()
	assert.Equal(t, "world", b.Text())
	assert.Equal(t, "hello!", a.Text())
	ed.Undo()
	assert.Equal(t, "hello", a.Text())
}

func TestSession_DeleteOnEmptyText(t *testing.T) {
	ed := testEditor(t)
	tool := newTool(t, ed)
	a := ed.Document().ElementByID("a")

	tool.BeginSession(a)
	for i := 0; i < 10; i++ {
		tool.DeleteRune()
	}
	assert.Equal(t, "", a.Text())
	if !tool.EndSession() {
		t.Fatalf("EndSession() recorded nothing for cleared text")
	}
	ed.Undo()
	assert.Equal(t, "hello", a.Text())
}

func TestInsert_OutsideSessionIsNoop(t *testing.T) {
	ed := testEditor(t)
	tool := newTool(t, ed)
	a := ed.Document().ElementByID("a")

	tool.InsertRune('x')
	tool.DeleteRune()
	assert.Equal(t, "hello", a.Text())
	assert.Equal(t, false, tool.EndSession())
}
