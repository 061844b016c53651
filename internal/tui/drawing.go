// internal/tui/drawing.go
package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
	"github.com/rsql-tui/rsql/internal/core/viewport"
	"github.com/rsql-tui/rsql/internal/theme"
)

const (
	editorTitle         = " Editor "
	editorTitleModified = " Editor [+] "
)

// InnerSize returns the text area inside the border for a screen of w x h.
func InnerSize(w, h int) (int, int) {
	return max(w-2*viewport.BorderOffset, 0), max(h-2*viewport.BorderOffset, 0)
}

// DrawFrame paints the bordered editor box, the frame's rows and the cursor.
func (t *TUI) DrawFrame(frame viewport.Frame, modified bool) {
	width, height := t.Size()
	t.screen.Clear()
	if width < 2 || height < 2 {
		t.screen.HideCursor()
		return
	}

	title := editorTitle
	titleStyle := t.theme.GetStyle(theme.StyleTitle)
	if modified {
		title = editorTitleModified
		titleStyle = t.theme.GetStyle(theme.StyleTitleModified)
	}
	t.drawBox(width, height, title, titleStyle)

	innerW, _ := InnerSize(width, height)
	defaultStyle := t.theme.GetStyle(theme.StyleDefault)
	selectedStyle := t.theme.GetStyle(theme.StyleSelected)

	for row, line := range frame.Lines() {
		y := row + viewport.BorderOffset
		if y >= height-viewport.BorderOffset {
			break
		}
		style := defaultStyle
		if line.Selected {
			style = selectedStyle
			for x := 0; x < innerW; x++ {
				t.screen.SetContent(x+viewport.BorderOffset, y, ' ', nil, style)
			}
		}
		t.drawText(viewport.BorderOffset, y, innerW, line.Text, style)
	}

	x, y := frame.CursorCell()
	if !frame.CursorVisible() || x >= width-viewport.BorderOffset || y >= height-viewport.BorderOffset {
		t.screen.HideCursor()
		return
	}
	t.screen.ShowCursor(x, y)
}

// drawBox draws a single-line border around the whole screen with the title
// on the top edge.
func (t *TUI) drawBox(width, height int, title string, titleStyle tcell.Style) {
	s := t.screen
	style := t.theme.GetStyle(theme.StyleBorder)
	right, bottom := width-1, height-1

	for x := 1; x < right; x++ {
		s.SetContent(x, 0, tcell.RuneHLine, nil, style)
		s.SetContent(x, bottom, tcell.RuneHLine, nil, style)
	}
	for y := 1; y < bottom; y++ {
		s.SetContent(0, y, tcell.RuneVLine, nil, style)
		s.SetContent(right, y, tcell.RuneVLine, nil, style)
	}
	s.SetContent(0, 0, tcell.RuneULCorner, nil, style)
	s.SetContent(right, 0, tcell.RuneURCorner, nil, style)
	s.SetContent(0, bottom, tcell.RuneLLCorner, nil, style)
	s.SetContent(right, bottom, tcell.RuneLRCorner, nil, style)

	t.drawText(1, 0, width-2, title, titleStyle)
}

// drawText writes text from (x, y) one grapheme cluster at a time, stopping
// before a cluster would cross maxWidth cells.
func (t *TUI) drawText(x, y, maxWidth int, text string, style tcell.Style) {
	used := 0
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		runes := gr.Runes()
		w := gr.Width()
		if used+w > maxWidth {
			return
		}
		t.screen.SetContent(x+used, y, runes[0], runes[1:], style)
		used += w
	}
}
