package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// AttrValue is an explicit optional attribute value. Absent means the
// attribute does not exist on the element, which is distinct from an empty
// string. Undo paths rely on this to remove attributes that were never set
// instead of writing a sentinel.
type AttrValue struct {
	Present bool
	Val     string
}

// Attr builds a present value.
func Attr(val string) AttrValue {
	return AttrValue{Present: true, Val: val}
}

// Absent is the missing-attribute value.
var Absent = AttrValue{}

func (v AttrValue) String() string {
	if !v.Present {
		return "<absent>"
	}
	return v.Val
}

// Element is a shared, unowned reference to an element node. The host page
// (or another tool) may detach the node at any time; callers that must not
// mutate detached nodes check Attached first.
type Element struct {
	node *html.Node
	doc  *Document
}

// Node exposes the underlying node for structural bookkeeping.
func (e *Element) Node() *html.Node {
	return e.node
}

// Document returns the owning document.
func (e *Element) Document() *Document {
	return e.doc
}

// Attached reports whether the element is still part of its document.
func (e *Element) Attached() bool {
	return e.doc != nil && e.doc.Contains(e.node)
}

// Tag returns the element's tag name.
func (e *Element) Tag() string {
	return e.node.Data
}

// Attr looks up an attribute, reporting absence explicitly.
func (e *Element) Attr(name string) AttrValue {
	for _, a := range e.node.Attr {
		if a.Key == name {
			return Attr(a.Val)
		}
	}
	return Absent
}

// SetAttr writes or removes an attribute depending on v.Present.
func (e *Element) SetAttr(name string, v AttrValue) {
	if !v.Present {
		e.removeAttr(name)
		return
	}
	for i := range e.node.Attr {
		if e.node.Attr[i].Key == name {
			e.node.Attr[i].Val = v.Val
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: name, Val: v.Val})
}

func (e *Element) removeAttr(name string) {
	attrs := e.node.Attr[:0]
	for _, a := range e.node.Attr {
		if a.Key != name {
			attrs = append(attrs, a)
		}
	}
	e.node.Attr = attrs
}

// Text returns the concatenated text content of the element's subtree.
func (e *Element) Text() string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				sb.WriteString(c.Data)
			}
			walk(c)
		}
	}
	walk(e.node)
	return sb.String()
}

// SetText replaces the element's children with a single text node.
func (e *Element) SetText(text string) {
	for e.node.FirstChild != nil {
		e.node.RemoveChild(e.node.FirstChild)
	}
	e.node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// Parent returns the parent element, or nil at the top of the tree.
func (e *Element) Parent() *Element {
	p := e.node.Parent
	if p == nil || p.Type != html.ElementNode {
		return nil
	}
	return &Element{node: p, doc: e.doc}
}

// NextSibling returns the node immediately following this element, which is
// what structural changes record as the reinsertion point.
func (e *Element) NextSibling() *html.Node {
	return e.node.NextSibling
}

// Detach removes the element from its parent. A no-op when already detached.
func (e *Element) Detach() {
	if e.node.Parent != nil {
		e.node.Parent.RemoveChild(e.node)
	}
}

// InsertInto places the element under parent, before next when next is still
// a child of parent, appending otherwise. The fallback covers siblings that
// left the document between recording and replay.
func (e *Element) InsertInto(parent *Element, next *html.Node) {
	e.Detach()
	if next != nil && next.Parent == parent.node {
		parent.node.InsertBefore(e.node, next)
		return
	}
	parent.node.AppendChild(e.node)
}

// Markup serializes the element's subtree.
func (e *Element) Markup() (string, error) {
	var sb strings.Builder
	if err := html.Render(&sb, e.node); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Path builds a short CSS-like locator for logs and labels, e.g.
// "body > div:nth-child(2) > img#logo".
func (e *Element) Path() string {
	var parts []string
	for n := e.node; n != nil && n.Type == html.ElementNode; n = n.Parent {
		if n.Data == "body" {
			parts = append([]string{"body"}, parts...)
			break
		}
		parts = append([]string{segment(n)}, parts...)
	}
	return strings.Join(parts, " > ")
}

func segment(n *html.Node) string {
	for _, a := range n.Attr {
		if a.Key == "id" && a.Val != "" {
			return fmt.Sprintf("%s#%s", n.Data, a.Val)
		}
	}
	idx, count := 1, 0
	if n.Parent != nil {
		for c := n.Parent.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			count++
			if c == n {
				idx = count
			}
		}
	}
	if count > 1 {
		return fmt.Sprintf("%s:nth-child(%d)", n.Data, idx)
	}
	return n.Data
}
