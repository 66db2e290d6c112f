// Package selection tracks which elements are currently selected and keeps
// interested parties (labels, overlays, tools) informed when the selection
// or its geometry goes stale.
package selection

import (
	"github.com/forma-editor/forma/internal/dom"
	"github.com/forma-editor/forma/internal/event"
	"github.com/forma-editor/forma/internal/logger"
)

// Geometry is what presentational consumers need about an observed element.
// It is recomputed on document mutations, decoupled from change recording.
type Geometry struct {
	Path     string
	Attached bool
}

// Observer delivers geometry updates for one element.
type Observer func(Geometry)

// Manager owns the ordered selection. Tools re-target from here on every
// selection change; they never hold long-lived element references of their
// own across gestures.
type Manager struct {
	events   *event.Manager
	selected []*dom.Element

	observed map[*dom.Element][]Observer
}

// NewManager creates a selection manager wired to the event bus.
func NewManager(events *event.Manager) *Manager {
	m := &Manager{
		events:   events,
		observed: make(map[*dom.Element][]Observer),
	}
	if events != nil {
		events.Subscribe(event.TypeDocumentModified, func(event.Event) bool {
			m.Prune()
			m.refreshObservers()
			return false
		})
	}
	return m
}

// Set replaces the selection with the given elements, in order.
func (m *Manager) Set(els ...*dom.Element) {
	m.selected = m.selected[:0]
	for _, el := range els {
		if el != nil {
			m.selected = append(m.selected, el)
		}
	}
	logger.Debugf("Selection: Set to %d element(s)", len(m.selected))
	m.dispatch()
}

// Add extends the selection with one element, ignoring duplicates.
func (m *Manager) Add(el *dom.Element) {
	if el == nil {
		return
	}
	for _, cur := range m.selected {
		if cur.Node() == el.Node() {
			return
		}
	}
	m.selected = append(m.selected, el)
	m.dispatch()
}

// Clear empties the selection.
func (m *Manager) Clear() {
	if len(m.selected) == 0 {
		return
	}
	m.selected = m.selected[:0]
	logger.Debugf("Selection: Cleared")
	m.dispatch()
}

// Primary returns the first selected element, or nil.
func (m *Manager) Primary() *dom.Element {
	if len(m.selected) == 0 {
		return nil
	}
	return m.selected[0]
}

// All returns the ordered selection as a copy.
func (m *Manager) All() []*dom.Element {
	out := make([]*dom.Element, len(m.selected))
	copy(out, m.selected)
	return out
}

// Len reports the selection size.
func (m *Manager) Len() int {
	return len(m.selected)
}

// Prune drops selected elements that have left the document. Returns true
// when anything was removed.
func (m *Manager) Prune() bool {
	kept := m.selected[:0]
	for _, el := range m.selected {
		if el.Attached() {
			kept = append(kept, el)
		}
	}
	changed := len(kept) != len(m.selected)
	m.selected = kept
	if changed {
		m.dispatch()
	}
	return changed
}

// Observe registers a geometry observer for el. The observer fires once
// immediately and again after every document mutation.
func (m *Manager) Observe(el *dom.Element, obs Observer) {
	if el == nil || obs == nil {
		return
	}
	m.observed[el] = append(m.observed[el], obs)
	obs(geometryOf(el))
}

// Unobserve drops all observers for el.
func (m *Manager) Unobserve(el *dom.Element) {
	delete(m.observed, el)
}

func (m *Manager) refreshObservers() {
	for el, observers := range m.observed {
		g := geometryOf(el)
		for _, obs := range observers {
			obs(g)
		}
	}
}

func geometryOf(el *dom.Element) Geometry {
	return Geometry{
		Path:     el.Path(),
		Attached: el.Attached(),
	}
}

func (m *Manager) dispatch() {
	if m.events == nil {
		return
	}
	paths := make([]string, 0, len(m.selected))
	for _, el := range m.selected {
		paths = append(paths, el.Path())
	}
	m.events.Dispatch(event.TypeSelectionChanged, event.SelectionChangedData{Paths: paths})
}
