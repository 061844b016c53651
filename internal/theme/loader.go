// internal/theme/loader.go
package theme

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rsql-tui/rsql/internal/config"
	"github.com/rsql-tui/rsql/internal/logger"
)

// FromConfig builds a theme from the [theme] colour names, starting from Plain.
func FromConfig(cfg config.ThemeConfig) (*Theme, error) {
	t := &Theme{Name: "config", Styles: make(map[string]tcell.Style, len(Plain.Styles))}
	for name, style := range Plain.Styles {
		t.Styles[name] = style
	}

	base := tcell.StyleDefault
	if cfg.Text != "" {
		fg, err := parseColorString(cfg.Text)
		if err != nil {
			return nil, fmt.Errorf("theme text: %w", err)
		}
		base = base.Foreground(fg)
	}
	t.Styles[StyleDefault] = base

	if cfg.Border != "" {
		fg, err := parseColorString(cfg.Border)
		if err != nil {
			return nil, fmt.Errorf("theme border: %w", err)
		}
		t.Styles[StyleBorder] = base.Foreground(fg)
	}
	if cfg.Title != "" {
		fg, err := parseColorString(cfg.Title)
		if err != nil {
			return nil, fmt.Errorf("theme title: %w", err)
		}
		t.Styles[StyleTitle] = base.Foreground(fg).Bold(true)
	}
	if cfg.SelectedBG != "" {
		bg, err := parseColorString(cfg.SelectedBG)
		if err != nil {
			return nil, fmt.Errorf("theme selected_bg: %w", err)
		}
		t.Styles[StyleSelected] = base.Background(bg)
	}

	logger.DebugTagf("theme", "Built theme from config: %+v", cfg)
	return t, nil
}

// parseColorString accepts #RRGGBB, "reset", "default" or a tcell colour name.
func parseColorString(s string) (tcell.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if strings.HasPrefix(s, "#") {
		if len(s) != 7 {
			return tcell.ColorDefault, fmt.Errorf("invalid hex color format '%s', must be #RRGGBB", s)
		}
		val, err := strconv.ParseInt(s[1:], 16, 32)
		if err != nil {
			return tcell.ColorDefault, fmt.Errorf("invalid hex value '%s': %w", s, err)
		}
		return tcell.NewHexColor(int32(val)), nil
	}

	switch s {
	case "reset":
		return tcell.ColorReset, nil
	case "default":
		return tcell.ColorDefault, nil
	}

	if c, ok := tcell.ColorNames[s]; ok {
		return c, nil
	}
	return tcell.ColorDefault, fmt.Errorf("unknown color format or name '%s'", s)
}
