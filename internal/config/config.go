// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rsql-tui/rsql/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger   logger.Config  `toml:"logger"`
	Editor   EditorConfig   `toml:"editor"`
	Database DatabaseConfig `toml:"database"`
	Theme    ThemeConfig    `toml:"theme"`
}

// EditorConfig holds editor-specific settings.
type EditorConfig struct {
	ScrollOff       int  `toml:"scroll_off"`
	CoalesceMs      int  `toml:"coalesce_ms"`
	HistoryLimit    int  `toml:"history_limit"` // 0 keeps every undo batch
	SystemClipboard bool `toml:"system_clipboard"`
	HighlightLine   bool `toml:"highlight_line"` // highlight the cursor line
}

// CoalesceWindow returns the undo coalescing window as a duration.
func (e EditorConfig) CoalesceWindow() time.Duration {
	return time.Duration(e.CoalesceMs) * time.Millisecond
}

// DatabaseConfig describes the data source the session connects to.
type DatabaseConfig struct {
	Variant  string `toml:"variant"`
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Name     string `toml:"name"`
}

// ThemeConfig holds tcell colour names for the editor frame.
type ThemeConfig struct {
	Border     string `toml:"border"`
	Title      string `toml:"title"`
	Text       string `toml:"text"`
	SelectedBG string `toml:"selected_bg"`
}

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.Config{
			LogLevel:    "info",
			LogFilePath: DefaultLogFileName,
		},
		Editor: EditorConfig{
			ScrollOff:       DefaultScrollOff,
			CoalesceMs:      DefaultCoalesceMs,
			HistoryLimit:    DefaultHistoryLimit,
			SystemClipboard: SystemClipboard,
			HighlightLine:   HighlightLine,
		},
		Database: DatabaseConfig{
			Variant: DefaultVariant,
			Host:    DefaultHost,
			Port:    DefaultPort,
		},
		Theme: ThemeConfig{
			Border:     DefaultBorderColor,
			Title:      DefaultTitleColor,
			Text:       DefaultTextColor,
			SelectedBG: DefaultSelectedBG,
		},
	}
}

// DefaultPath returns the per-user config file location, or "" if the user
// config directory is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, AppName, DefaultConfigFileName)
}

// decodeFile overlays the keys present in the TOML file onto cfg.
// A missing file is not an error.
func decodeFile(path string, cfg *Config) error {
	md, err := toml.DecodeFile(path, cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to parse config file '%s': %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		logger.Warnf("Config file '%s': unrecognized keys: %v", path, undecoded)
	}
	return nil
}

// validate resets invalid values to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Editor.ScrollOff < 0 {
		c.Editor.ScrollOff = defaults.Editor.ScrollOff
	}
	if c.Editor.CoalesceMs <= 0 {
		c.Editor.CoalesceMs = defaults.Editor.CoalesceMs
	}
	if c.Editor.HistoryLimit < 0 {
		c.Editor.HistoryLimit = defaults.Editor.HistoryLimit
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
	if c.Database.Variant == "" {
		c.Database.Variant = defaults.Database.Variant
	}
	if c.Database.Host == "" {
		c.Database.Host = defaults.Database.Host
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		c.Database.Port = defaults.Database.Port
	}
	if c.Theme.SelectedBG == "" {
		c.Theme.SelectedBG = defaults.Theme.SelectedBG
	}
}

// Load builds the configuration from defaults, the config file at path
// (DefaultPath when empty) and any flags that were set, then validates it.
func Load(path string, flags *Flags) (*Config, error) {
	cfg := NewDefaultConfig()

	if path == "" {
		path = DefaultPath()
	}
	if path != "" {
		if err := decodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if flags != nil {
		flags.ApplyOverrides(cfg)
	}

	cfg.validate()
	return cfg, nil
}
