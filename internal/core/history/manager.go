package history

import (
	"fmt"
	"sync"
	"time"

	"github.com/forma-editor/forma/internal/logger"
)

const (
	DefaultMaxSize     = 50
	DefaultMergeWindow = time.Second
)

// State is the {canUndo, canRedo} snapshot delivered to listeners after
// every successful stack mutation.
type State struct {
	CanUndo bool
	CanRedo bool
}

// Listener receives state snapshots. Failed undo/redo attempts are not
// notified; only successful mutations are.
type Listener func(State)

// Options bounds the manager at construction.
type Options struct {
	// MaxSize is the undo stack bound; oldest entries are evicted silently.
	MaxSize int
	// MergeWindow is the wall-clock span within which same-target
	// same-property changes coalesce. Zero disables coalescing.
	MergeWindow time.Duration
}

// Manager owns the undo and redo stacks. It is the single arbiter of global
// order across tools and the only component holding cross-tool state; it
// never touches the DOM except through a Change's own Apply/Revert.
type Manager struct {
	mu          sync.Mutex
	undoStack   []Change // most-recent last
	redoStack   []Change // most-recent last
	maxSize     int
	mergeWindow time.Duration
	batching    bool
	batchBuf    []Change
	listeners   []Listener
}

// NewManager creates a history manager. Non-positive MaxSize and negative
// MergeWindow fall back to the defaults.
func NewManager(opts Options) *Manager {
	if opts.MaxSize <= 0 {
		opts.MaxSize = DefaultMaxSize
	}
	if opts.MergeWindow < 0 {
		opts.MergeWindow = DefaultMergeWindow
	}
	return &Manager{
		undoStack:   make([]Change, 0, opts.MaxSize),
		maxSize:     opts.MaxSize,
		mergeWindow: opts.MergeWindow,
	}
}

// Subscribe registers a listener for state snapshots.
func (m *Manager) Subscribe(l Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, l)
}

// Push records a single change. While a batch is open the change only lands
// in the accumulation buffer. Otherwise the manager tries to coalesce it
// with the current top of the undo stack, pushes it as a new top when that
// fails, clears the redo stack and notifies.
func (m *Manager) Push(c Change) {
	if c == nil {
		return
	}
	m.mu.Lock()
	if m.batching {
		m.batchBuf = append(m.batchBuf, c)
		m.mu.Unlock()
		return
	}
	m.pushLocked(c, true)
	st := m.stateLocked()
	m.mu.Unlock()
	m.notify(st)
}

// PushGroup records several changes produced by one gesture. This is the
// explicit submission boundary: zero entries is a no-op, one entry is an
// ordinary Push, two or more are wrapped as a single BatchChange.
func (m *Manager) PushGroup(changes []Change) {
	switch len(changes) {
	case 0:
		return
	case 1:
		m.Push(changes[0])
		return
	}
	m.mu.Lock()
	if m.batching {
		m.batchBuf = append(m.batchBuf, changes...)
		m.mu.Unlock()
		return
	}
	m.pushLocked(NewBatchChange(changes), false)
	st := m.stateLocked()
	m.mu.Unlock()
	m.notify(st)
}

// pushLocked places c on the undo stack, coalescing with the top when
// allowed, evicting the oldest entry beyond the bound and invalidating any
// redo history.
func (m *Manager) pushLocked(c Change, allowMerge bool) {
	if allowMerge && len(m.undoStack) > 0 {
		top := m.undoStack[len(m.undoStack)-1]
		if m.withinWindow(top, c) && top.CanMergeWith(c) {
			m.undoStack[len(m.undoStack)-1] = top.MergeWith(c)
			m.redoStack = m.redoStack[:0]
			logger.Debugf("History: Coalesced %s into top entry. Count: %d", c.Kind(), len(m.undoStack))
			return
		}
	}

	m.undoStack = append(m.undoStack, c)
	if len(m.undoStack) > m.maxSize {
		// Oldest entries are evicted silently and irreversibly.
		m.undoStack = m.undoStack[len(m.undoStack)-m.maxSize:]
	}
	m.redoStack = m.redoStack[:0]
	logger.Debugf("History: Recorded %s. Count: %d", c.Kind(), len(m.undoStack))
}

func (m *Manager) withinWindow(top, next Change) bool {
	if m.mergeWindow <= 0 {
		return false
	}
	delta := next.CreatedAt().Sub(top.CreatedAt())
	if delta < 0 {
		delta = -delta
	}
	return delta <= m.mergeWindow
}

// BeginBatch opens batch scope: subsequent pushes accumulate until EndBatch.
// Batches do not nest; a BeginBatch while already batching is ignored.
func (m *Manager) BeginBatch() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.batching {
		logger.Debugf("History: BeginBatch while batching, ignored.")
		return
	}
	m.batching = true
	m.batchBuf = m.batchBuf[:0]
}

// EndBatch closes batch scope. An empty buffer pushes nothing and emits no
// notification; otherwise the buffer becomes one BatchChange pushed
// atomically, bypassing the merge step.
func (m *Manager) EndBatch() {
	m.mu.Lock()
	if !m.batching {
		m.mu.Unlock()
		return
	}
	m.batching = false
	buf := m.batchBuf
	m.batchBuf = nil
	if len(buf) == 0 {
		m.mu.Unlock()
		return
	}
	m.pushLocked(NewBatchChange(buf), false)
	st := m.stateLocked()
	m.mu.Unlock()
	m.notify(st)
}

// Undo reverts the most recent change. Returns false on an empty stack or a
// failed revert; in the failure case the entry is restored to the undo stack
// so history is never silently corrupted.
func (m *Manager) Undo() bool {
	m.mu.Lock()
	if len(m.undoStack) == 0 {
		m.mu.Unlock()
		logger.Debugf("History: Nothing to undo.")
		return false
	}
	c := m.undoStack[len(m.undoStack)-1]
	m.undoStack = m.undoStack[:len(m.undoStack)-1]

	if err := safeRevert(c); err != nil {
		m.undoStack = append(m.undoStack, c)
		m.mu.Unlock()
		logger.Errorf("History: Undo of %s failed: %v", c.Kind(), err)
		return false
	}

	m.redoStack = append(m.redoStack, c)
	st := m.stateLocked()
	m.mu.Unlock()
	logger.Debugf("History: Undid %s.", c)
	m.notify(st)
	return true
}

// Redo reapplies the most recently undone change. Same failure contract as
// Undo, with the entry restored to the redo stack.
func (m *Manager) Redo() bool {
	m.mu.Lock()
	if len(m.redoStack) == 0 {
		m.mu.Unlock()
		logger.Debugf("History: Nothing to redo.")
		return false
	}
	c := m.redoStack[len(m.redoStack)-1]
	m.redoStack = m.redoStack[:len(m.redoStack)-1]

	if err := safeApply(c); err != nil {
		m.redoStack = append(m.redoStack, c)
		m.mu.Unlock()
		logger.Errorf("History: Redo of %s failed: %v", c.Kind(), err)
		return false
	}

	m.undoStack = append(m.undoStack, c)
	st := m.stateLocked()
	m.mu.Unlock()
	logger.Debugf("History: Redid %s.", c)
	m.notify(st)
	return true
}

// Clear empties both stacks and any open batch buffer, forces batch mode off
// and notifies.
func (m *Manager) Clear() {
	m.mu.Lock()
	m.undoStack = m.undoStack[:0]
	m.redoStack = m.redoStack[:0]
	m.batchBuf = nil
	m.batching = false
	st := m.stateLocked()
	m.mu.Unlock()
	logger.Debugf("History: Cleared.")
	m.notify(st)
}

// CanUndo returns true if there are changes that can be undone.
func (m *Manager) CanUndo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.undoStack) > 0
}

// CanRedo returns true if there are changes that can be redone.
func (m *Manager) CanRedo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.redoStack) > 0
}

// History returns a copy of the undo stack in oldest-to-newest order.
func (m *Manager) History() []Change {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Change, len(m.undoStack))
	copy(out, m.undoStack)
	return out
}

func (m *Manager) stateLocked() State {
	return State{
		CanUndo: len(m.undoStack) > 0,
		CanRedo: len(m.redoStack) > 0,
	}
}

func (m *Manager) notify(st State) {
	m.mu.Lock()
	listeners := make([]Listener, len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()
	for _, l := range listeners {
		l(st)
	}
}

// safeRevert shields the stacks from a panicking Change: a single bad undo
// must not corrupt the rest of history.
func safeRevert(c Change) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("revert panicked: %v", r)
		}
	}()
	return c.Revert()
}

func safeApply(c Change) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("apply panicked: %v", r)
		}
	}()
	return c.Apply()
}
