// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/jonboulle/clockwork"
	"github.com/rivo/uniseg"
	"github.com/rsql-tui/rsql/internal/types"
)

// Config defines the appearance and behavior of the status line.
type Config struct {
	StyleDefault   tcell.Style
	StyleMessage   tcell.Style
	MessageTimeout time.Duration
	Clock          clockwork.Clock
}

// DefaultConfig provides sensible defaults.
func DefaultConfig() Config {
	return Config{
		StyleDefault:   tcell.StyleDefault,
		StyleMessage:   tcell.StyleDefault.Bold(true),
		MessageTimeout: 4 * time.Second,
		Clock:          clockwork.NewRealClock(),
	}
}

// StatusBar is the status line drawn into the bottom edge of the frame:
// a short message on the left and the cursor position on the right.
type StatusBar struct {
	config Config

	cursorPos types.Cursor

	tempMessage     string
	tempMessageTime time.Time
}

// New creates a new StatusBar with the given configuration.
func New(config Config) *StatusBar {
	if config.Clock == nil {
		config.Clock = clockwork.NewRealClock()
	}
	return &StatusBar{config: config}
}

// SetCursorInfo updates the cursor position shown.
func (sb *StatusBar) SetCursorInfo(pos types.Cursor) {
	sb.cursorPos = pos
}

// SetTemporaryMessage displays a message for the configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...any) {
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = sb.config.Clock.Now()
}

// Message returns the active temporary message, clearing it once expired.
func (sb *StatusBar) Message() string {
	if sb.tempMessageTime.IsZero() {
		return ""
	}
	if sb.config.Clock.Since(sb.tempMessageTime) > sb.config.MessageTimeout {
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}
	return sb.tempMessage
}

// Position returns the cursor label, one-based like most editors.
func (sb *StatusBar) Position() string {
	return fmt.Sprintf(" Ln %d, Col %d ", sb.cursorPos.Line+1, sb.cursorPos.Col+1)
}

// Draw writes the status line on row y between columns left and right
// (exclusive). The position is dropped first when space runs out.
func (sb *StatusBar) Draw(screen tcell.Screen, left, right, y int) {
	if right <= left || y < 0 {
		return
	}

	pos := sb.Position()
	posWidth := uniseg.StringWidth(pos)
	avail := right - left

	if msg := sb.Message(); msg != "" {
		msgAvail := avail
		if posWidth+2 <= avail {
			msgAvail = avail - posWidth - 1
		}
		drawString(screen, left, y, msgAvail, " "+msg+" ", sb.config.StyleMessage)
	}
	if posWidth <= avail {
		drawString(screen, right-posWidth, y, posWidth, pos, sb.config.StyleDefault)
	}
}

// drawString draws text cluster by cluster, stopping before maxWidth cells.
func drawString(screen tcell.Screen, x, y, maxWidth int, text string, style tcell.Style) {
	gr := uniseg.NewGraphemes(text)
	used := 0
	for gr.Next() {
		w := gr.Width()
		if used+w > maxWidth {
			return
		}
		runes := gr.Runes()
		screen.SetContent(x+used, y, runes[0], runes[1:], style)
		used += w
	}
}
