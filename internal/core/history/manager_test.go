package history

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rsql-tui/rsql/internal/textstore"
	"github.com/rsql-tui/rsql/internal/types"
)

// testTarget applies replayed edits to a real store.
type testTarget struct {
	store  *textstore.Store
	cursor types.Cursor
}

func (t *testTarget) Insert(index int, text string) { t.store.Insert(index, text) }
func (t *testTarget) Remove(start, end int)         { t.store.Remove(start, end) }
func (t *testTarget) SetCursor(c types.Cursor)      { t.cursor = c }

// typeChar inserts r at the target's cursor and records it, as the editor does.
func typeChar(m *Manager, tt *testTarget, r rune) {
	idx := tt.cursor.Col
	tt.store.InsertChar(idx, r)
	after := types.Cursor{Col: tt.cursor.Col + 1, Line: tt.cursor.Line}
	m.Record(Edit{Kind: InsertEdit, Index: idx, Text: string(r), Before: tt.cursor, After: after})
	tt.cursor = after
}

func newTestManager(opts ...Option) (*Manager, *clockwork.FakeClock, *testTarget) {
	clock := clockwork.NewFakeClock()
	m := NewManager(append([]Option{WithClock(clock)}, opts...)...)
	return m, clock, &testTarget{store: textstore.New()}
}

func TestEmptyHistoryIsNoop(t *testing.T) {
	m, _, tt := newTestManager()
	if m.CanUndo() || m.CanRedo() {
		t.Fatal("fresh history should have nothing to undo or redo")
	}
	if m.Undo(tt) {
		t.Error("Undo on empty history should report false")
	}
	if m.Redo(tt) {
		t.Error("Redo on empty history should report false")
	}
	if tt.store.String() != "" || tt.cursor != (types.Cursor{}) {
		t.Error("no-op undo/redo mutated the target")
	}
}

func TestCoalescingWithinWindow(t *testing.T) {
	m, clock, tt := newTestManager()

	typeChar(m, tt, 'a')
	clock.Advance(500 * time.Millisecond)
	typeChar(m, tt, 'b')
	clock.Advance(999 * time.Millisecond)
	typeChar(m, tt, 'c')

	if m.UndoDepth() != 0 || m.Pending() != 3 {
		t.Fatalf("undo depth=%d pending=%d, want 0 and 3", m.UndoDepth(), m.Pending())
	}

	if !m.Undo(tt) {
		t.Fatal("Undo reported false")
	}
	if got := tt.store.String(); got != "" {
		t.Errorf("text after undo = %q, want empty", got)
	}
	if tt.cursor != (types.Cursor{}) {
		t.Errorf("cursor after undo = %v, want (0,0)", tt.cursor)
	}
}

func TestIdleGapStartsNewBatch(t *testing.T) {
	m, clock, tt := newTestManager()

	typeChar(m, tt, 'a')
	clock.Advance(DefaultWindow + time.Millisecond)
	typeChar(m, tt, 'b')

	if m.UndoDepth() != 1 || m.Pending() != 1 {
		t.Fatalf("undo depth=%d pending=%d, want 1 and 1", m.UndoDepth(), m.Pending())
	}

	m.Undo(tt)
	if got := tt.store.String(); got != "a" {
		t.Errorf("after first undo = %q, want %q", got, "a")
	}
	m.Undo(tt)
	if got := tt.store.String(); got != "" {
		t.Errorf("after second undo = %q, want empty", got)
	}
	if m.Undo(tt) {
		t.Error("third undo should be a no-op")
	}
}

func TestIdleExactlyWindowStillCoalesces(t *testing.T) {
	m, clock, tt := newTestManager()
	typeChar(m, tt, 'a')
	clock.Advance(DefaultWindow)
	typeChar(m, tt, 'b')
	if m.UndoDepth() != 0 || m.Pending() != 2 {
		t.Errorf("undo depth=%d pending=%d, want 0 and 2", m.UndoDepth(), m.Pending())
	}
}

func TestEachEditRefreshesTimestamp(t *testing.T) {
	m, clock, tt := newTestManager()
	for _, r := range "abcdef" {
		typeChar(m, tt, r)
		clock.Advance(800 * time.Millisecond)
	}
	if m.Pending() != 6 || m.UndoDepth() != 0 {
		t.Errorf("pending=%d undo depth=%d, want 6 and 0", m.Pending(), m.UndoDepth())
	}
}

func TestRedoRestoresAfterCursor(t *testing.T) {
	m, _, tt := newTestManager()
	for _, r := range "abc" {
		typeChar(m, tt, r)
	}
	m.Undo(tt)
	if !m.CanRedo() {
		t.Fatal("expected CanRedo after undo")
	}
	if !m.Redo(tt) {
		t.Fatal("Redo reported false")
	}
	if got := tt.store.String(); got != "abc" {
		t.Errorf("text after redo = %q, want %q", got, "abc")
	}
	if want := (types.Cursor{Col: 3}); tt.cursor != want {
		t.Errorf("cursor after redo = %v, want %v", tt.cursor, want)
	}
	if m.CanRedo() || m.UndoDepth() != 1 {
		t.Errorf("redo depth=%d undo depth=%d, want 0 and 1", m.RedoDepth(), m.UndoDepth())
	}
}

func TestNewEditClearsRedo(t *testing.T) {
	m, _, tt := newTestManager()
	typeChar(m, tt, 'a')
	m.Undo(tt)
	typeChar(m, tt, 'z')

	if m.CanRedo() {
		t.Fatal("redo stack should be cleared by a new edit")
	}
	if m.Redo(tt) {
		t.Error("Redo should be a no-op")
	}
	if got := tt.store.String(); got != "z" {
		t.Errorf("text = %q, want %q", got, "z")
	}
}

func TestUndoDeleteReinserts(t *testing.T) {
	m, _, tt := newTestManager()
	tt.store = textstore.FromString("ab")
	tt.cursor = types.Cursor{Col: 2}

	tt.store.Remove(1, 2)
	m.Record(Edit{Kind: DeleteEdit, Index: 1, Text: "b", Before: types.Cursor{Col: 2}, After: types.Cursor{Col: 1}})
	tt.cursor = types.Cursor{Col: 1}

	m.Undo(tt)
	if got := tt.store.String(); got != "ab" {
		t.Errorf("after undo = %q, want %q", got, "ab")
	}
	if want := (types.Cursor{Col: 2}); tt.cursor != want {
		t.Errorf("cursor = %v, want %v", tt.cursor, want)
	}

	m.Redo(tt)
	if got := tt.store.String(); got != "a" {
		t.Errorf("after redo = %q, want %q", got, "a")
	}
	if want := (types.Cursor{Col: 1}); tt.cursor != want {
		t.Errorf("cursor = %v, want %v", tt.cursor, want)
	}
}

func TestMultiRuneEditLength(t *testing.T) {
	m, _, tt := newTestManager()
	tt.store.Insert(0, "世界")
	m.Record(Edit{Kind: InsertEdit, Index: 0, Text: "世界", After: types.Cursor{Col: 2}})
	m.Undo(tt)
	if got := tt.store.String(); got != "" {
		t.Errorf("after undo = %q, want empty", got)
	}
}

func TestCommitClosesBatch(t *testing.T) {
	m, _, tt := newTestManager()
	typeChar(m, tt, 'a')
	m.Commit()
	typeChar(m, tt, 'b')
	if m.UndoDepth() != 1 || m.Pending() != 1 {
		t.Errorf("undo depth=%d pending=%d, want 1 and 1", m.UndoDepth(), m.Pending())
	}
	m.Commit()
	m.Commit()
	if m.UndoDepth() != 2 {
		t.Errorf("empty commit pushed a batch: depth=%d", m.UndoDepth())
	}
}

func TestLimitDropsOldest(t *testing.T) {
	m, clock, tt := newTestManager(WithLimit(2))
	for _, r := range "abc" {
		typeChar(m, tt, r)
		clock.Advance(2 * DefaultWindow)
	}
	m.Commit()
	if m.UndoDepth() != 2 {
		t.Fatalf("undo depth = %d, want 2", m.UndoDepth())
	}
	m.Undo(tt)
	m.Undo(tt)
	if got := tt.store.String(); got != "a" {
		t.Errorf("text = %q, want %q (oldest batch dropped)", got, "a")
	}
}

func TestZeroLimitKeepsEveryBatch(t *testing.T) {
	m, clock, tt := newTestManager(WithLimit(0))
	const n = 1500
	for i := 0; i < n; i++ {
		typeChar(m, tt, 'x')
		clock.Advance(2 * DefaultWindow)
	}
	m.Commit()
	if m.UndoDepth() != n {
		t.Fatalf("undo depth = %d, want %d", m.UndoDepth(), n)
	}
	for m.Undo(tt) {
	}
	if got := tt.store.String(); got != "" {
		t.Errorf("text after undoing everything = %q, want empty", got)
	}
}

func TestWithWindow(t *testing.T) {
	m, clock, tt := newTestManager(WithWindow(50 * time.Millisecond))
	typeChar(m, tt, 'a')
	clock.Advance(60 * time.Millisecond)
	typeChar(m, tt, 'b')
	if m.UndoDepth() != 1 {
		t.Errorf("undo depth = %d, want 1", m.UndoDepth())
	}
}

func TestClear(t *testing.T) {
	m, _, tt := newTestManager()
	typeChar(m, tt, 'a')
	m.Undo(tt)
	typeChar(m, tt, 'b')
	m.Clear()
	if m.CanUndo() || m.CanRedo() || m.Pending() != 0 {
		t.Error("Clear left history behind")
	}
}
