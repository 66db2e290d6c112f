package markup

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/forma-editor/forma/internal/event"
	"github.com/forma-editor/forma/internal/logger"
	"github.com/forma-editor/forma/internal/utils"
)

// DebouncePreviewDuration is how long the manager waits after the last
// document mutation before re-rendering the preview. Drag gestures fire
// mutations every pointer move; re-parsing on each would dominate the frame.
const DebouncePreviewDuration = 65 * time.Millisecond

// DocumentSource is what the manager needs from the document.
type DocumentSource interface {
	Markup() (string, error)
}

// Manager keeps a highlighted serialization of the document for the preview
// pane, refreshed on a debounce after document mutations.
type Manager struct {
	doc         DocumentSource
	highlighter *Highlighter
	redraw      func()
	debouncer   utils.Debouncer

	mu         sync.RWMutex
	lines      []string
	highlights Highlights
}

// NewManager builds the preview manager and wires it to document events.
// redraw may be nil for headless hosts.
func NewManager(doc DocumentSource, events *event.Manager, redraw func()) (*Manager, error) {
	hl, err := NewHighlighter()
	if err != nil {
		return nil, err
	}
	m := &Manager{doc: doc, highlighter: hl, redraw: redraw}

	if events != nil {
		events.Subscribe(event.TypeDocumentModified, func(event.Event) bool {
			m.ScheduleRefresh()
			return false
		})
		events.Subscribe(event.TypeDocumentLoaded, func(event.Event) bool {
			m.Refresh()
			return false
		})
	}
	return m, nil
}

// ScheduleRefresh re-renders the preview after the debounce window, folding
// bursts of mutations into one parse.
func (m *Manager) ScheduleRefresh() {
	m.debouncer.Debounce(DebouncePreviewDuration, m.Refresh)
}

// Refresh re-renders and re-highlights the preview synchronously.
func (m *Manager) Refresh() {
	source, err := m.doc.Markup()
	if err != nil {
		logger.Warnf("Markup: Serialization failed: %v", err)
		return
	}

	highlights, err := m.highlighter.Highlight(context.Background(), []byte(source))
	if err != nil {
		logger.Warnf("Markup: Highlighting failed: %v", err)
		highlights = make(Highlights)
	}

	m.mu.Lock()
	m.lines = strings.Split(source, "\n")
	m.highlights = highlights
	m.mu.Unlock()

	if m.redraw != nil {
		m.redraw()
	}
}

// Lines returns the current preview lines.
func (m *Manager) Lines() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lines
}

// LineHighlights returns the styled ranges for one preview line.
func (m *Manager) LineHighlights(line int) []StyledRange {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.highlights[line]
}
