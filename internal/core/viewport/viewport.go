// Package viewport projects the editor state onto a fixed-height frame:
// the visible lines and the on-screen cursor cell.
package viewport

import (
	"iter"

	"github.com/rivo/uniseg"
	"github.com/rsql-tui/rsql/internal/types"
)

// BorderOffset is the number of cells the frame border takes on each side.
const BorderOffset = 1

// Source is the editor state a frame is projected from.
type Source interface {
	Line(i int) (string, bool)
	Cursor() types.Cursor
	Scroll() types.ScrollOffset
	SelectedLine() int
}

// Line is one visible row.
type Line struct {
	Index    int    // buffer line index
	Text     string // empty past the end of the buffer
	Selected bool
	Past     bool // true when Index is beyond the last buffer line
}

// Frame is the projection of a Source for one redraw.
type Frame struct {
	src    Source
	top    int
	height int
}

// Project builds a frame of height rows starting at the source's vertical
// scroll offset. The horizontal offset is not applied.
func Project(src Source, height int) Frame {
	return Frame{src: src, top: src.Scroll().Y, height: max(height, 0)}
}

func (f Frame) Height() int {
	return f.height
}

// Lines yields exactly Height rows as (row, Line). Text is fetched lazily
// as the sequence is consumed.
func (f Frame) Lines() iter.Seq2[int, Line] {
	return func(yield func(int, Line) bool) {
		selected := f.src.SelectedLine()
		for row := 0; row < f.height; row++ {
			idx := f.top + row
			text, ok := f.src.Line(idx)
			l := Line{Index: idx, Text: text, Selected: ok && idx == selected, Past: !ok}
			if !yield(row, l) {
				return
			}
		}
	}
}

// Cursor returns the cursor cell relative to the frame's outer corner,
// shifted by the border.
func (f Frame) Cursor() (x, y int) {
	c := f.src.Cursor()
	return c.Col + BorderOffset, c.Line - f.top + BorderOffset
}

// CursorCell is Cursor with the column measured in terminal cells, so wide
// graphemes before the cursor push it right.
func (f Frame) CursorCell() (x, y int) {
	c := f.src.Cursor()
	line, _ := f.src.Line(c.Line)
	return visualColumn(line, c.Col) + BorderOffset, c.Line - f.top + BorderOffset
}

// visualColumn returns the cell width of the first col runes of line.
func visualColumn(line string, col int) int {
	width, runes := 0, 0
	gr := uniseg.NewGraphemes(line)
	for runes < col && gr.Next() {
		width += gr.Width()
		runes += len(gr.Runes())
	}
	// Past the end of the text each rune is one cell.
	return width + max(col-runes, 0)
}

// CursorVisible reports whether the cursor line falls inside the frame.
func (f Frame) CursorVisible() bool {
	line := f.src.Cursor().Line
	return line >= f.top && line < f.top+f.height
}
