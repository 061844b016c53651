package history

import (
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rsql-tui/rsql/internal/logger"
	"github.com/rsql-tui/rsql/internal/types"
)

// DefaultWindow is how long a batch may sit idle before the next edit
// starts a new one.
const DefaultWindow = 1000 * time.Millisecond

// Target is what the history replays edits against.
type Target interface {
	Insert(index int, text string)
	Remove(start, end int)
	SetCursor(types.Cursor)
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock sets the time source used for coalescing.
func WithClock(c clockwork.Clock) Option {
	return func(m *Manager) {
		if c != nil {
			m.clock = c
		}
	}
}

// WithWindow sets the idle window after which a batch is closed.
func WithWindow(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.window = d
		}
	}
}

// WithLimit caps the number of undo batches kept. Zero keeps all of them.
func WithLimit(n int) Option {
	return func(m *Manager) {
		if n >= 0 {
			m.limit = n
		}
	}
}

// Manager owns the undo stack, the redo stack and the open batch.
type Manager struct {
	clock  clockwork.Clock
	window time.Duration
	limit  int

	undo    []Batch // oldest first
	redo    []Batch
	current Batch
}

// NewManager creates a history manager using the wall clock by default.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		clock:  clockwork.NewRealClock(),
		window: DefaultWindow,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.current = Batch{Touched: m.clock.Now()}
	return m
}

// Record appends an edit to the open batch, closing it first if it has been
// idle longer than the window. Any new edit discards the redo stack.
func (m *Manager) Record(e Edit) {
	if m.clock.Since(m.current.Touched) > m.window {
		m.Commit()
	}
	m.current.Edits = append(m.current.Edits, e)
	m.current.Touched = m.clock.Now()
	if len(m.redo) > 0 {
		logger.DebugTagf("history", "dropping %d redo batch(es)", len(m.redo))
		m.redo = nil
	}
}

// Commit closes the open batch, pushing it onto the undo stack if it holds
// any edits. A fresh batch with a fresh timestamp replaces it either way.
func (m *Manager) Commit() {
	if !m.current.empty() {
		m.pushUndo(m.current)
		logger.DebugTagf("history", "closed batch of %d edit(s), undo depth %d", len(m.current.Edits), len(m.undo))
	}
	m.current = Batch{Touched: m.clock.Now()}
}

func (m *Manager) pushUndo(b Batch) {
	m.undo = append(m.undo, b)
	if m.limit > 0 && len(m.undo) > m.limit {
		m.undo = m.undo[len(m.undo)-m.limit:]
	}
}

// Undo reverts the most recent batch, replaying its edits in reverse.
// A pending batch is closed first so it undoes as a unit.
// It reports false when there is nothing to undo.
func (m *Manager) Undo(t Target) bool {
	if !m.current.empty() {
		m.Commit()
	}
	if len(m.undo) == 0 {
		logger.DebugTagf("history", "nothing to undo")
		return false
	}

	i := len(m.undo) - 1
	batch := m.undo[i]
	m.undo = m.undo[:i]

	for j := len(batch.Edits) - 1; j >= 0; j-- {
		e := batch.Edits[j]
		switch e.Kind {
		case InsertEdit:
			t.Remove(e.Index, e.end())
		case DeleteEdit:
			t.Insert(e.Index, e.Text)
		}
		t.SetCursor(e.Before)
	}

	m.redo = append(m.redo, batch)
	logger.DebugTagf("history", "undid batch of %d edit(s), undo=%d redo=%d", len(batch.Edits), len(m.undo), len(m.redo))
	return true
}

// Redo reapplies the most recently undone batch in original order.
// It reports false when there is nothing to redo.
func (m *Manager) Redo(t Target) bool {
	if len(m.redo) == 0 {
		logger.DebugTagf("history", "nothing to redo")
		return false
	}

	i := len(m.redo) - 1
	batch := m.redo[i]
	m.redo = m.redo[:i]

	for _, e := range batch.Edits {
		switch e.Kind {
		case InsertEdit:
			t.Insert(e.Index, e.Text)
		case DeleteEdit:
			t.Remove(e.Index, e.end())
		}
		t.SetCursor(e.After)
	}

	m.pushUndo(batch)
	logger.DebugTagf("history", "redid batch of %d edit(s), undo=%d redo=%d", len(batch.Edits), len(m.undo), len(m.redo))
	return true
}

// CanUndo returns true if an undo would have an effect.
func (m *Manager) CanUndo() bool {
	return len(m.undo) > 0 || !m.current.empty()
}

// CanRedo returns true if a redo would have an effect.
func (m *Manager) CanRedo() bool {
	return len(m.redo) > 0
}

// UndoDepth returns the number of closed batches on the undo stack.
func (m *Manager) UndoDepth() int {
	return len(m.undo)
}

// RedoDepth returns the number of batches on the redo stack.
func (m *Manager) RedoDepth() int {
	return len(m.redo)
}

// Pending returns the number of edits in the open batch.
func (m *Manager) Pending() int {
	return len(m.current.Edits)
}

// Clear drops all history.
func (m *Manager) Clear() {
	m.undo = nil
	m.redo = nil
	m.current = Batch{Touched: m.clock.Now()}
	logger.DebugTagf("history", "cleared")
}
