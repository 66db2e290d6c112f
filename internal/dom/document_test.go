package dom

import (
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"
)

const sampleMarkup = `<html><body>
<div id="a" class="card"><p id="a1">first</p><p id="a2">second</p></div>
<img id="pic" src="one.png">
</body></html>`

func sampleDoc(t *testing.T) *Document {
	t.Helper()
	doc, err := ParseString(sampleMarkup)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	return doc
}

func TestDocument_ContainsAndDetach(t *testing.T) {
	doc := sampleDoc(t)
	a := doc.ElementByID("a")
	a1 := doc.ElementByID("a1")

	assert.Equal(t, true, a.Attached())
	assert.Equal(t, true, a1.Attached())

	a.Detach()
	assert.Equal(t, false, a.Attached())
	// Descendants of a detached subtree are detached too.
	assert.Equal(t, false, a1.Attached())
	// The rest of the document is unaffected.
	assert.Equal(t, true, doc.ElementByID("pic").Attached())
}

func TestDocument_ElementsOrder(t *testing.T) {
	doc := sampleDoc(t)

	var ids []string
	for _, el := range doc.Elements(doc.Body()) {
		if v := el.Attr("id"); v.Present {
			ids = append(ids, v.Val)
		}
	}
	assert.Equal(t, []string{"a", "a1", "a2", "pic"}, ids)
}

func TestElement_AttrAbsence(t *testing.T) {
	doc := sampleDoc(t)
	pic := doc.ElementByID("pic")

	assert.Equal(t, Attr("one.png"), pic.Attr("src"))
	assert.Equal(t, false, pic.Attr("alt").Present)

	pic.SetAttr("alt", Attr(""))
	v := pic.Attr("alt")
	assert.Equal(t, true, v.Present) // empty string is present, not absent
	assert.Equal(t, "", v.Val)

	pic.SetAttr("alt", Absent)
	assert.Equal(t, false, pic.Attr("alt").Present)
}

func TestElement_TextRoundTrip(t *testing.T) {
	doc := sampleDoc(t)
	a1 := doc.ElementByID("a1")

	assert.Equal(t, "first", a1.Text())
	a1.SetText("changed")
	assert.Equal(t, "changed", a1.Text())

	markup, err := a1.Markup()
	if err != nil {
		t.Fatalf("Markup() error = %v", err)
	}
	assert.Equal(t, `<p id="a1">changed</p>`, markup)
}

func TestElement_InsertIntoPrefersSibling(t *testing.T) {
	doc := sampleDoc(t)
	a := doc.ElementByID("a")
	a1 := doc.ElementByID("a1")
	a2 := doc.ElementByID("a2")

	next := a1.NextSibling() // the a2 node
	a1.Detach()

	// Sibling anchor intact: reinserted before it.
	a1.InsertInto(a, next)
	var ids []string
	for _, el := range doc.Elements(a) {
		ids = append(ids, el.Attr("id").Val)
	}
	assert.Equal(t, []string{"a1", "a2"}, ids)

	// Anchor gone: appended instead.
	a1.Detach()
	a2.Detach()
	a1.InsertInto(a, a2.Node())
	els := doc.Elements(a)
	assert.Equal(t, 1, len(els))
	assert.Equal(t, "a1", els[0].Attr("id").Val)
	if a1.NextSibling() != nil {
		t.Fatalf("appended element should be last")
	}
}

func TestStyleProperty_OrderPreserved(t *testing.T) {
	doc := sampleDoc(t)
	a := doc.ElementByID("a")

	a.SetAttr("style", Attr("left: 0px; top: 10px; color: red"))
	a.SetStyleProperty("top", "20px")

	assert.Equal(t, "left: 0px; top: 20px; color: red", a.Attr("style").Val)
	assert.Equal(t, "20px", a.StyleProperty("top"))
}

func TestStyleProperty_AddAndRemove(t *testing.T) {
	doc := sampleDoc(t)
	a1 := doc.ElementByID("a1")

	assert.Equal(t, "", a1.StyleProperty("left"))

	a1.SetStyleProperty("left", "5px")
	assert.Equal(t, "left: 5px", a1.Attr("style").Val)

	a1.SetStyleProperty("top", "6px")
	a1.RemoveStyleProperty("left")
	assert.Equal(t, "top: 6px", a1.Attr("style").Val)

	// Removing the last declaration drops the attribute entirely.
	a1.RemoveStyleProperty("top")
	assert.Equal(t, false, a1.Attr("style").Present)

	// Setting an empty value removes rather than writing "prop: ;".
	a1.SetStyleProperty("left", "9px")
	a1.SetStyleProperty("left", "")
	assert.Equal(t, false, a1.Attr("style").Present)
}

func TestElement_Path(t *testing.T) {
	doc := sampleDoc(t)

	assert.Equal(t, "body > div#a > p#a1", doc.ElementByID("a1").Path())

	// The walk terminates at body with a bare segment, never positional.
	assert.Equal(t, "body", doc.Body().Path())

	// Without ids, positional segments are used.
	doc2, err := ParseString(`<html><body><div><span>x</span><span>y</span></div></body></html>`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	spans := doc2.Elements(doc2.Body())
	assert.Equal(t, "body > div > span:nth-child(2)", spans[2].Path())
}

func TestDocument_RenderRoundTrip(t *testing.T) {
	doc := sampleDoc(t)
	doc.ElementByID("pic").SetAttr("src", Attr("two.png"))

	markup, err := doc.Markup()
	if err != nil {
		t.Fatalf("Markup() error = %v", err)
	}
	if !strings.Contains(markup, `src="two.png"`) {
		t.Fatalf("rendered markup missing updated src: %s", markup)
	}
}
