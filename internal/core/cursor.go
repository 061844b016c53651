package core

import (
	"github.com/rsql-tui/rsql/internal/event"
	"github.com/rsql-tui/rsql/internal/types"
)

// moveLeft and moveRight stay on the current line.
func (e *Editor) moveLeft() {
	if e.cursor.Col > 0 {
		e.moveTo(types.Cursor{Col: e.cursor.Col - 1, Line: e.cursor.Line})
	}
}

func (e *Editor) moveRight() {
	if e.cursor.Col < e.store.LineLength(e.cursor.Line) {
		e.moveTo(types.Cursor{Col: e.cursor.Col + 1, Line: e.cursor.Line})
	}
}

// moveVertical changes line by delta when the target exists, clamping the
// column to the target line's length.
func (e *Editor) moveVertical(delta int) {
	target := e.cursor.Line + delta
	if target < 0 || target >= e.store.LineCount() {
		return
	}
	col := min(e.cursor.Col, e.store.LineLength(target))
	e.moveTo(types.Cursor{Col: col, Line: target})
}

// clamp limits c to an existing line and a column within that line.
func (e *Editor) clamp(c types.Cursor) types.Cursor {
	c.Line = max(0, min(c.Line, e.store.LineCount()-1))
	c.Col = max(0, min(c.Col, e.store.LineLength(c.Line)))
	return c
}

// moveTo sets the cursor, keeps it in view and announces the move.
func (e *Editor) moveTo(c types.Cursor) {
	if c == e.cursor {
		return
	}
	e.cursor = c
	e.ScrollToCursor()
	if e.eventManager != nil {
		e.eventManager.Dispatch(event.TypeCursorMoved, event.CursorMovedData{NewPosition: c})
	}
}

// SetViewSize updates the cached view dimensions. Called on resize or before drawing.
func (e *Editor) SetViewSize(width, height int) {
	e.viewWidth = max(width, 0)
	e.viewHeight = max(height, 0)
	e.ScrollToCursor()
}

// ViewSize returns the cached view dimensions.
func (e *Editor) ViewSize() (int, int) {
	return e.viewWidth, e.viewHeight
}

// ScrollToCursor adjusts the vertical scroll so the cursor line is visible
// with scrollOff lines of context where the view allows it. The horizontal
// offset is left untouched.
func (e *Editor) ScrollToCursor() {
	if e.viewHeight <= 0 {
		return
	}

	// Effective scrolloff (cannot be larger than half the view height)
	off := e.scrollOff
	if off*2 >= e.viewHeight {
		off = (e.viewHeight - 1) / 2
	}

	line := e.cursor.Line
	switch {
	case line < e.scroll.Y+off:
		e.scroll.Y = max(line-off, 0)
	case line >= e.scroll.Y+e.viewHeight-off:
		e.scroll.Y = line - e.viewHeight + 1 + off
	}
}
