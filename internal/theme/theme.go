// internal/theme/theme.go
package theme

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rsql-tui/rsql/internal/logger"
)

// Style names used by the editor frame.
const (
	StyleDefault       = "Default"
	StyleBorder        = "Border"
	StyleTitle         = "Title"
	StyleTitleModified = "TitleModified"
	StyleSelected      = "Selected"
)

// Theme maps style names to tcell styles.
type Theme struct {
	Name   string
	Styles map[string]tcell.Style
}

// GetStyle returns the named style, falling back to Default and then to
// tcell's default style.
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}
	if defStyle, ok := t.Styles[StyleDefault]; ok {
		if name != StyleDefault {
			logger.DebugTagf("theme", "Theme '%s': Style '%s' not found, falling back to 'Default'", t.Name, name)
		}
		return defStyle
	}
	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// Plain is the built-in theme: terminal colours with a blue selection bar.
var Plain = Theme{
	Name: "Plain",
	Styles: map[string]tcell.Style{
		StyleDefault:       tcell.StyleDefault,
		StyleBorder:        tcell.StyleDefault,
		StyleTitle:         tcell.StyleDefault.Bold(true),
		StyleTitleModified: tcell.StyleDefault.Bold(true).Foreground(tcell.ColorYellow),
		StyleSelected:      tcell.StyleDefault.Background(tcell.ColorBlue),
	},
}
