// Package logger provides leveled, filterable logging on top of log/slog.
package logger

import (
	"log/slog"
	"strings"
)

// Config holds all settings for the logger.
type Config struct {
	// LogLevel is the minimum level to log: debug, info, warn or error.
	LogLevel string `toml:"log_level"`

	// LogFilePath is the output file. "-" means stderr; empty discards.
	LogFilePath string `toml:"log_file"`

	// EnabledTags only logs tagged messages with these tags (if non-empty).
	EnabledTags []string `toml:"enabled_tags"`
	// DisabledTags drops messages with these tags. Overrides EnabledTags.
	DisabledTags []string `toml:"disabled_tags"`

	// EnabledPackages only logs messages from these packages (if non-empty).
	// A package is the immediate directory name, e.g. "history" or "app".
	EnabledPackages []string `toml:"enabled_packages"`
	// DisabledPackages drops messages from these packages.
	DisabledPackages []string `toml:"disabled_packages"`

	// EnabledFiles only logs messages from these base file names (if non-empty).
	EnabledFiles []string `toml:"enabled_files"`
	// DisabledFiles drops messages from these base file names.
	DisabledFiles []string `toml:"disabled_files"`
}

// NewConfig returns a Config with default values.
func NewConfig() Config {
	return Config{
		LogLevel: "info",
	}
}

// filters is the processed, lookup-friendly form of Config.
type filters struct {
	enabledTags      map[string]struct{}
	disabledTags     map[string]struct{}
	enabledPackages  map[string]struct{}
	disabledPackages map[string]struct{}
	enabledFiles     map[string]struct{}
	disabledFiles    map[string]struct{}
}

func (c Config) filters() *filters {
	return &filters{
		enabledTags:      sliceToSet(c.EnabledTags),
		disabledTags:     sliceToSet(c.DisabledTags),
		enabledPackages:  sliceToSet(c.EnabledPackages),
		disabledPackages: sliceToSet(c.DisabledPackages),
		enabledFiles:     sliceToSet(c.EnabledFiles),
		disabledFiles:    sliceToSet(c.DisabledFiles),
	}
}

// ParseLevel maps a level name to a slog level, defaulting to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// sliceToSet lowercases items into a set. Empty input yields nil.
func sliceToSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item != "" {
			set[strings.ToLower(item)] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil
	}
	return set
}
