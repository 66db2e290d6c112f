// Package image swaps image sources. Each swap records one attribute change
// per element; swaps never coalesce, so every drop stays its own undo step
// even when the same image is re-targeted rapidly. Prefetching of the new
// source runs in the background and never touches recorded history.
package image

import (
	"fmt"

	"github.com/forma-editor/forma/internal/core/history"
	"github.com/forma-editor/forma/internal/core/selection"
	"github.com/forma-editor/forma/internal/dom"
	"github.com/forma-editor/forma/internal/logger"
)

// EditorInterface defines what the image tool needs from the editor.
type EditorInterface interface {
	Selection() *selection.Manager
	History() *history.Manager
	MarkModified(path string)
}

// Tool swaps the src attribute of img elements.
type Tool struct {
	editor EditorInterface
	cache  *Cache
}

// New creates the image tool with its own cache instance, so multiple
// editors on one host never share state.
func New(editor EditorInterface) (*Tool, error) {
	if editor == nil {
		return nil, fmt.Errorf("image tool requires an editor")
	}
	return &Tool{editor: editor, cache: NewCache()}, nil
}

// Cache exposes the tool's prefetch cache (for host preview widgets).
func (t *Tool) Cache() *Cache {
	return t.cache
}

// SwapSelected replaces the src of every selected img element.
func (t *Tool) SwapSelected(src string) bool {
	var imgs []*dom.Element
	for _, el := range t.editor.Selection().All() {
		if el.Attached() && el.Tag() == "img" {
			imgs = append(imgs, el)
		}
	}
	return t.Swap(imgs, src)
}

// Swap commits one src update per target. The change is pushed synchronously
// with whatever URL is available now; caching proceeds independently and
// only affects future reads, never already-pushed entries. Two or more
// targets wrap into one batch so a single undo restores the whole drop.
func (t *Tool) Swap(targets []*dom.Element, src string) bool {
	if len(targets) == 0 || src == "" {
		return false
	}

	changes := make([]history.Change, 0, len(targets))
	for _, el := range targets {
		if !el.Attached() {
			continue
		}
		old := el.Attr("src")
		if old.Present && old.Val == src {
			continue // unchanged, record nothing
		}
		el.SetAttr("src", dom.Attr(src))
		changes = append(changes, history.NewAttributeChange(el, "src", old, dom.Attr(src)))
		t.editor.MarkModified(el.Path())
	}
	if len(changes) == 0 {
		return false
	}

	t.editor.History().PushGroup(changes)
	t.cache.Prefetch(src)
	logger.Debugf("Image: Swapped src on %d element(s)", len(changes))
	return true
}
