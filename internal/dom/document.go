// Package dom wraps golang.org/x/net/html with the small mutable-document
// surface the editor needs: attachment checks, inline styles, explicit
// optional attributes and structural moves.
package dom

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document owns a parsed HTML tree. Elements hand out shared references into
// the tree; the document itself is only consulted for attachment checks and
// serialization.
type Document struct {
	root     *html.Node
	filePath string
}

// Parse reads an HTML document from r.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return &Document{root: root}, nil
}

// ParseString parses markup held in memory.
func ParseString(markup string) (*Document, error) {
	return Parse(strings.NewReader(markup))
}

// ParseFile loads and parses an HTML file from disk.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document '%s': %w", path, err)
	}
	defer f.Close()

	doc, err := Parse(f)
	if err != nil {
		return nil, err
	}
	doc.filePath = path
	return doc, nil
}

// FilePath returns the path the document was loaded from ("" when parsed
// from memory).
func (d *Document) FilePath() string {
	return d.filePath
}

// SetFilePath assigns the save destination for documents built in memory.
func (d *Document) SetFilePath(path string) {
	d.filePath = path
}

// Render serializes the current tree as markup.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// Markup returns the serialized document.
func (d *Document) Markup() (string, error) {
	var sb strings.Builder
	if err := d.Render(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Save writes the serialized document back to path (or the original file
// path when path is empty).
func (d *Document) Save(path string) error {
	if path == "" {
		path = d.filePath
	}
	if path == "" {
		return fmt.Errorf("no file path to save to")
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create '%s': %w", path, err)
	}
	defer f.Close()
	if err := d.Render(f); err != nil {
		return fmt.Errorf("failed to render document: %w", err)
	}
	return nil
}

// Body returns the document body element. html.Parse always synthesizes
// html/head/body, so this only fails on a hand-built tree.
func (d *Document) Body() *Element {
	n := findElement(d.root, "body")
	if n == nil {
		return nil
	}
	return &Element{node: n, doc: d}
}

// Contains reports whether n is still attached to this document. Changes
// call this before mutating so that undo/redo against removed elements
// stays a silent no-op.
func (d *Document) Contains(n *html.Node) bool {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur == d.root {
			return true
		}
	}
	return false
}

// ElementFor wraps a raw node as an Element of this document.
func (d *Document) ElementFor(n *html.Node) *Element {
	if n == nil || n.Type != html.ElementNode {
		return nil
	}
	return &Element{node: n, doc: d}
}

// Elements returns the element descendants of container in depth-first
// (document) order. The container itself is not included.
func (d *Document) Elements(container *Element) []*Element {
	var out []*Element
	if container == nil {
		return out
	}
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode {
				out = append(out, &Element{node: c, doc: d})
			}
			walk(c)
		}
	}
	walk(container.node)
	return out
}

// ParseFragment parses markup in body context and returns the top-level
// elements, unattached, ready to be inserted into this document.
func (d *Document) ParseFragment(markup string) ([]*Element, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fragment: %w", err)
	}
	var els []*Element
	for _, n := range nodes {
		if n.Type == html.ElementNode {
			els = append(els, &Element{node: n, doc: d})
		}
	}
	return els, nil
}

// ElementByID finds the attached element carrying the given id.
func (d *Document) ElementByID(id string) *Element {
	var found *html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if found != nil {
			return
		}
		if n.Type == html.ElementNode {
			for _, a := range n.Attr {
				if a.Key == "id" && a.Val == id {
					found = n
					return
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(d.root)
	if found == nil {
		return nil
	}
	return &Element{node: found, doc: d}
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}
