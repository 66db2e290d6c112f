package history

import (
	"errors"
	"testing"

	"github.com/forma-editor/forma/internal/dom"
	"github.com/go-playground/assert/v2"
)

const testMarkup = `<html><body>
<div id="box" style="left: 0px; top: 10px">
  <p id="para">hello world</p>
</div>
<img id="logo" src="a.png">
<span id="plain">text</span>
</body></html>`

func testDoc(t *testing.T) *dom.Document {
	t.Helper()
	doc, err := dom.ParseString(testMarkup)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	return doc
}

func mustElement(t *testing.T, doc *dom.Document, id string) *dom.Element {
	t.Helper()
	el := doc.ElementByID(id)
	if el == nil {
		t.Fatalf("element #%s not found", id)
	}
	return el
}

func TestStyleChange_Invertibility(t *testing.T) {
	doc := testDoc(t)
	box := mustElement(t, doc, "box")

	box.SetStyleProperty("left", "40px")
	c := NewStyleChange(box, "left", "0px", "40px")

	if err := c.Revert(); err != nil {
		t.Fatalf("Revert() error = %v", err)
	}
	assert.Equal(t, "0px", box.StyleProperty("left"))

	if err := c.Apply(); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	assert.Equal(t, "40px", box.StyleProperty("left"))
	// Other declarations survive the round trip untouched.
	assert.Equal(t, "10px", box.StyleProperty("top"))
}

func TestStyleChange_EmptyOldValueRemovesProperty(t *testing.T) {
	doc := testDoc(t)
	plain := mustElement(t, doc, "plain")

	plain.SetStyleProperty("color", "red")
	c := NewStyleChange(plain, "color", "", "red")

	if err := c.Revert(); err != nil {
		t.Fatalf("Revert() error = %v", err)
	}
	assert.Equal(t, "", plain.StyleProperty("color"))
	assert.Equal(t, false, plain.Attr("style").Present)
}

func TestStyleChange_DetachedTargetIsNoOp(t *testing.T) {
	doc := testDoc(t)
	box := mustElement(t, doc, "box")
	c := NewStyleChange(box, "left", "0px", "40px")

	box.Detach()

	if err := c.Apply(); err != nil {
		t.Fatalf("Apply() on detached target error = %v", err)
	}
	if err := c.Revert(); err != nil {
		t.Fatalf("Revert() on detached target error = %v", err)
	}
	// The orphan subtree keeps whatever it had; nothing was mutated.
	assert.Equal(t, "0px", box.StyleProperty("left"))
}

func TestStyleChange_MergeSemantics(t *testing.T) {
	doc := testDoc(t)
	box := mustElement(t, doc, "box")

	first := NewStyleChange(box, "left", "0px", "1px")
	second := NewStyleChange(box, "left", "1px", "2px")
	otherProp := NewStyleChange(box, "top", "10px", "11px")
	otherTarget := NewStyleChange(mustElement(t, doc, "plain"), "left", "0px", "1px")

	assert.Equal(t, true, first.CanMergeWith(second))
	assert.Equal(t, false, first.CanMergeWith(otherProp))
	assert.Equal(t, false, first.CanMergeWith(otherTarget))

	merged, ok := first.MergeWith(second).(*StyleChange)
	if !ok {
		t.Fatalf("MergeWith() did not return a StyleChange")
	}
	assert.Equal(t, "0px", merged.oldValue)
	assert.Equal(t, "2px", merged.newValue)
	// Merged entry adopts the newer timestamp so bursts keep extending.
	assert.Equal(t, second.CreatedAt(), merged.CreatedAt())
}

func TestAttributeChange_AbsentRoundTrip(t *testing.T) {
	doc := testDoc(t)
	logo := mustElement(t, doc, "logo")

	// alt did not exist; the change introduces it.
	logo.SetAttr("alt", dom.Attr("a logo"))
	c := NewAttributeChange(logo, "alt", dom.Absent, dom.Attr("a logo"))

	if err := c.Revert(); err != nil {
		t.Fatalf("Revert() error = %v", err)
	}
	assert.Equal(t, false, logo.Attr("alt").Present)

	if err := c.Apply(); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	assert.Equal(t, dom.Attr("a logo"), logo.Attr("alt"))
}

func TestAttributeChange_NeverMerges(t *testing.T) {
	doc := testDoc(t)
	logo := mustElement(t, doc, "logo")

	a := NewAttributeChange(logo, "src", dom.Attr("a.png"), dom.Attr("b.png"))
	b := NewAttributeChange(logo, "src", dom.Attr("b.png"), dom.Attr("c.png"))

	assert.Equal(t, false, a.CanMergeWith(b))
	assert.Equal(t, Change(a), a.MergeWith(b))
}

func TestTextChange_Invertibility(t *testing.T) {
	doc := testDoc(t)
	para := mustElement(t, doc, "para")

	para.SetText("goodbye world")
	c := NewTextChange(para, "hello world", "goodbye world")

	if err := c.Revert(); err != nil {
		t.Fatalf("Revert() error = %v", err)
	}
	assert.Equal(t, "hello world", para.Text())

	if err := c.Apply(); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	assert.Equal(t, "goodbye world", para.Text())
}

func TestTextChange_Summary(t *testing.T) {
	doc := testDoc(t)
	para := mustElement(t, doc, "para")

	c := NewTextChange(para, "hello world", "hello brave world")
	assert.Equal(t, "+6/-0", c.Summary())
}

func TestStructuralChange_RemoveUndoRestoresPosition(t *testing.T) {
	doc := testDoc(t)
	body := doc.Body()
	box := mustElement(t, doc, "box")
	next := box.NextSibling()

	box.Detach()
	c := NewRemoveChange(box, body, next)

	if err := c.Revert(); err != nil {
		t.Fatalf("Revert() error = %v", err)
	}
	if !box.Attached() {
		t.Fatalf("undo of remove did not reattach the element")
	}
	// Reinserted before the recorded next-sibling: the img still follows.
	els := doc.Elements(body)
	var order []string
	for _, el := range els {
		if v := el.Attr("id"); v.Present {
			order = append(order, v.Val)
		}
	}
	assert.Equal(t, []string{"box", "para", "logo", "plain"}, order)

	if err := c.Apply(); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	assert.Equal(t, false, box.Attached())
}

func TestStructuralChange_ReinsertFallsBackToAppend(t *testing.T) {
	doc := testDoc(t)
	body := doc.Body()
	box := mustElement(t, doc, "box")
	logo := mustElement(t, doc, "logo")

	// Record the img element itself as the anchor so that detaching it
	// leaves the change with no attached sibling to reinsert before.
	box.Detach()
	c := NewRemoveChange(box, body, logo.Node())
	logo.Detach()

	if err := c.Revert(); err != nil {
		t.Fatalf("Revert() error = %v", err)
	}
	if !box.Attached() {
		t.Fatalf("undo of remove did not reattach the element")
	}
	els := doc.Elements(body)
	last := els[len(els)-1]
	// Appended at the end since its anchor is gone. The subtree's last
	// element in document order is box's paragraph child.
	assert.Equal(t, "para", last.Attr("id").Val)
}

func TestStructuralChange_InsertUndoRemoves(t *testing.T) {
	doc := testDoc(t)
	body := doc.Body()
	box := mustElement(t, doc, "box")

	c := NewInsertChange(box, body, box.NextSibling())

	if err := c.Revert(); err != nil {
		t.Fatalf("Revert() error = %v", err)
	}
	assert.Equal(t, false, box.Attached())

	if err := c.Apply(); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	assert.Equal(t, true, box.Attached())
}

func TestBatchChange_OrderAndAtomicity(t *testing.T) {
	var trace []string
	mk := func(name string) *stubChange {
		s := newStub()
		s.onApply = func() { trace = append(trace, name+"+") }
		s.onRevert = func() { trace = append(trace, name+"-") }
		return s
	}
	batch := NewBatchChange([]Change{mk("a"), mk("b"), mk("c")})

	if err := batch.Revert(); err != nil {
		t.Fatalf("Revert() error = %v", err)
	}
	assert.Equal(t, []string{"c-", "b-", "a-"}, trace)

	trace = nil
	if err := batch.Apply(); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	assert.Equal(t, []string{"a+", "b+", "c+"}, trace)
}

func TestBatchChange_RollsBackOnMemberFailure(t *testing.T) {
	good1, good2 := newStub(), newStub()
	bad := newStub()
	bad.applyErr = errors.New("malformed value")

	batch := NewBatchChange([]Change{good1, bad, good2})

	if err := batch.Apply(); err == nil {
		t.Fatalf("Apply() expected error from failing member")
	}
	// good1 was applied then reverted; good2 never ran.
	assert.Equal(t, 1, good1.applied)
	assert.Equal(t, 1, good1.reverted)
	assert.Equal(t, 0, good2.applied)
}

// stubChange is a controllable Change for manager and batch tests.
type stubChange struct {
	meta
	applyErr  error
	revertErr error
	panicOn   bool
	applied   int
	reverted  int
	onApply   func()
	onRevert  func()
}

func newStub() *stubChange {
	return &stubChange{meta: newMeta()}
}

func (s *stubChange) Kind() Kind { return KindStyle }

func (s *stubChange) Apply() error {
	if s.panicOn {
		panic("stub panic")
	}
	if s.applyErr != nil {
		return s.applyErr
	}
	s.applied++
	if s.onApply != nil {
		s.onApply()
	}
	return nil
}

func (s *stubChange) Revert() error {
	if s.panicOn {
		panic("stub panic")
	}
	if s.revertErr != nil {
		return s.revertErr
	}
	s.reverted++
	if s.onRevert != nil {
		s.onRevert()
	}
	return nil
}

func (s *stubChange) CanMergeWith(next Change) bool { return false }
func (s *stubChange) MergeWith(next Change) Change  { return s }
func (s *stubChange) String() string                { return "stub" }
