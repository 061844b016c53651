// internal/core/editor.go
package core

import (
	"github.com/rsql-tui/rsql/internal/core/history"
	"github.com/rsql-tui/rsql/internal/event"
	"github.com/rsql-tui/rsql/internal/input"
	"github.com/rsql-tui/rsql/internal/logger"
	"github.com/rsql-tui/rsql/internal/textstore"
	"github.com/rsql-tui/rsql/internal/types"
)

// NoSelection is the selected-line value when no line is highlighted.
const NoSelection = -1

// Option configures an Editor.
type Option func(*Editor)

// WithHistory replaces the default history manager.
func WithHistory(h *history.Manager) Option {
	return func(e *Editor) {
		if h != nil {
			e.history = h
		}
	}
}

// WithEventManager sets the event manager used for buffer and cursor events.
func WithEventManager(m *event.Manager) Option {
	return func(e *Editor) {
		e.eventManager = m
	}
}

// WithScrollOff sets the number of lines kept visible above and below the cursor.
func WithScrollOff(n int) Option {
	return func(e *Editor) {
		if n >= 0 {
			e.scrollOff = n
		}
	}
}

// Editor owns the text store, the cursor, the scroll offset and the edit
// history, and applies commands to them.
type Editor struct {
	store   *textstore.Store
	cursor  types.Cursor
	scroll  types.ScrollOffset
	history *history.Manager

	eventManager *event.Manager

	scrollOff  int
	viewWidth  int
	viewHeight int

	selectedLine int
	modified     bool
}

// NewEditor creates an editor with an empty buffer and the cursor at the origin.
func NewEditor(opts ...Option) *Editor {
	e := &Editor{
		store:        textstore.New(),
		selectedLine: NoSelection,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.history == nil {
		e.history = history.NewManager()
	}
	return e
}

// Apply executes a single command. Commands that would move the cursor past
// a boundary, and Backspace at the start of the buffer, are accepted no-ops.
func (e *Editor) Apply(cmd input.Command) {
	logger.DebugTagf("edit", "Apply %v at %v", cmd, e.cursor)

	switch cmd.Kind {
	case input.CommandInsertChar:
		e.insertText(string(cmd.Rune), types.Cursor{Col: e.cursor.Col + 1, Line: e.cursor.Line})
	case input.CommandNewline:
		e.insertText("\n", types.Cursor{Col: 0, Line: e.cursor.Line + 1})
	case input.CommandBackspace:
		e.backspace()
	case input.CommandMoveLeft:
		e.moveLeft()
	case input.CommandMoveRight:
		e.moveRight()
	case input.CommandMoveUp:
		e.moveVertical(-1)
	case input.CommandMoveDown:
		e.moveVertical(1)
	case input.CommandMoveBeginningLine:
		e.moveTo(types.Cursor{Col: 0, Line: e.cursor.Line})
	case input.CommandMoveEndLine:
		e.moveTo(types.Cursor{Col: e.store.LineLength(e.cursor.Line), Line: e.cursor.Line})
	case input.CommandUndo:
		if !e.history.Undo(e) {
			logger.DebugTagf("history", "Nothing to undo")
		}
	case input.CommandRedo:
		if !e.history.Redo(e) {
			logger.DebugTagf("history", "Nothing to redo")
		}
	case input.CommandQuit, input.CommandSearchMode:
		// Owned by the session loop.
	default:
		logger.Warnf("Editor: unhandled command %v", cmd)
	}
}

// index returns the absolute rune index of the cursor.
func (e *Editor) index() int {
	start, err := e.store.LineToChar(e.cursor.Line)
	if err != nil {
		logger.Errorf("Editor: cursor %v outside buffer: %v", e.cursor, err)
		return e.store.Len()
	}
	return start + e.cursor.Col
}

// insertText inserts text at the cursor, records it and moves the cursor to after.
func (e *Editor) insertText(text string, after types.Cursor) {
	idx := e.index()
	before := e.cursor

	e.store.Insert(idx, text)
	edit := history.Edit{Kind: history.InsertEdit, Index: idx, Text: text, Before: before, After: after}
	e.history.Record(edit)
	e.bufferChanged(edit)
	e.moveTo(after)
}

// backspace removes the rune before the cursor. At column zero that rune is
// the previous line's separator, and the cursor lands where the lines join.
func (e *Editor) backspace() {
	idx := e.index()
	if idx == 0 {
		return
	}
	removed, ok := e.store.Char(idx - 1)
	if !ok {
		return
	}

	before := e.cursor
	after := types.Cursor{Col: max(before.Col-1, 0), Line: before.Line}
	if before.Col == 0 {
		after = types.Cursor{Col: e.store.LineLength(before.Line - 1), Line: before.Line - 1}
	}

	e.store.Remove(idx-1, idx)
	edit := history.Edit{Kind: history.DeleteEdit, Index: idx - 1, Text: string(removed), Before: before, After: after}
	e.history.Record(edit)
	e.bufferChanged(edit)
	e.moveTo(after)
}

func (e *Editor) bufferChanged(edit history.Edit) {
	e.modified = true
	if e.selectedLine >= e.store.LineCount() {
		e.selectedLine = NoSelection
	}
	if e.eventManager != nil {
		e.eventManager.Dispatch(event.TypeBufferModified, event.BufferModifiedData{Edit: edit})
	}
}

// Insert inserts text at a rune index without recording it. It is the
// replay path used by the history.
func (e *Editor) Insert(index int, text string) {
	e.store.Insert(index, text)
	e.bufferChanged(history.Edit{Kind: history.InsertEdit, Index: index, Text: text})
}

// Remove deletes the runes in [start, end) without recording it.
func (e *Editor) Remove(start, end int) {
	text := e.store.Slice(start, end)
	e.store.Remove(start, end)
	e.bufferChanged(history.Edit{Kind: history.DeleteEdit, Index: start, Text: text})
}

// SetCursor moves the cursor, clamped to the buffer.
func (e *Editor) SetCursor(c types.Cursor) {
	e.moveTo(e.clamp(c))
}

// Cursor returns the current cursor position.
func (e *Editor) Cursor() types.Cursor {
	return e.cursor
}

// Scroll returns the current scroll offset.
func (e *Editor) Scroll() types.ScrollOffset {
	return e.scroll
}

// Store returns the editor's text store. Callers must not mutate it.
func (e *Editor) Store() *textstore.Store {
	return e.store
}

// Line returns the text of line i without its separator.
func (e *Editor) Line(i int) (string, bool) {
	return e.store.Line(i)
}

// Text returns the whole buffer.
func (e *Editor) Text() string {
	return e.store.String()
}

func (e *Editor) History() *history.Manager {
	return e.history
}

// Modified reports whether the buffer has changed since the editor was created.
func (e *Editor) Modified() bool {
	return e.modified
}

// SelectedLine returns the highlighted line, or NoSelection.
func (e *Editor) SelectedLine() int {
	return e.selectedLine
}

// SetSelectedLine marks a line for highlighting. Out-of-range lines clear it.
func (e *Editor) SetSelectedLine(line int) {
	if line < 0 || line >= e.store.LineCount() {
		line = NoSelection
	}
	e.selectedLine = line
}

func (e *Editor) ClearSelectedLine() {
	e.selectedLine = NoSelection
}
