// internal/config/flags.go
package config

import (
	"flag"
	"fmt"
	"strings"

	"github.com/rsql-tui/rsql/internal/logger"
)

// Flags holds values parsed from command-line flags.
// Use pointers to distinguish between unset flags and zero-value flags.
type Flags struct {
	fs *flag.FlagSet

	ConfigFilePath *string
	Version        *bool
	LogLevel       *string
	LogFilePath    *string
	ScrollOff      *int
	CoalesceMs     *int
	// Logger filters
	EnableTags      *string
	DisableTags     *string
	EnablePkgs      *string
	DisablePkgs     *string
	SystemClipboard *bool
	HighlightLine   *bool
	// Connection
	Username *string
	Password *string
	Database *string
	Host     *string
	Port     *int

	// Variant is the first positional argument, if any.
	Variant string
}

// NewFlags defines the command-line flags on a fresh FlagSet named name.
func NewFlags(name string) *Flags {
	f := &Flags{fs: flag.NewFlagSet(name, flag.ContinueOnError)}
	f.DefineFlags()
	return f
}

// DefineFlags sets up the command-line flags and associates them with the Flags struct fields.
func (f *Flags) DefineFlags() {
	fs := f.fs
	f.ConfigFilePath = fs.String("config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", AppName, DefaultConfigFileName))
	f.Version = fs.Bool("version", false, "Show version information and exit")
	f.LogLevel = fs.String("loglevel", "", "Log level (debug, info, warn, error) - Overrides config file")
	f.LogFilePath = fs.String("logfile", "", "Path to write log file (use '-' for stderr) - Overrides config file")
	f.ScrollOff = fs.Int("scrolloff", -1, "Lines of context above/below cursor - Overrides config file") // -1 means unset
	f.CoalesceMs = fs.Int("coalesce", 0, "Undo grouping window in milliseconds - Overrides config file")
	f.EnableTags = fs.String("log-tags", "", "Comma-separated list of tags to enable - Overrides config file")
	f.DisableTags = fs.String("log-disable-tags", "", "Comma-separated list of tags to disable - Overrides config file")
	f.EnablePkgs = fs.String("log-packages", "", "Comma-separated list of packages to enable - Overrides config file")
	f.DisablePkgs = fs.String("log-disable-packages", "", "Comma-separated list of packages to disable - Overrides config file")
	f.SystemClipboard = fs.Bool("system-clipboard", false, "Copy the buffer to the system clipboard on quit")
	f.HighlightLine = fs.Bool("highlight-line", false, "Highlight the cursor line - Overrides config file")
	f.Username = fs.String("username", "", "Database user")
	f.Password = fs.String("password", "", "Database password")
	f.Database = fs.String("db", "", "Database name")
	f.Host = fs.String("host", "", fmt.Sprintf("Database host (default %s)", DefaultHost))
	f.Port = fs.Int("port", 0, fmt.Sprintf("Database port (default %d)", DefaultPort))
}

// Parse parses args (without the program name). A leading positional
// argument selects the data source variant; flags may follow it.
// It returns the remaining non-flag arguments.
func (f *Flags) Parse(args []string) ([]string, error) {
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		f.Variant = args[0]
		args = args[1:]
	}
	if err := f.fs.Parse(args); err != nil {
		return nil, err
	}
	return f.fs.Args(), nil
}

// ApplyOverrides updates the Config struct with values from flags *if* they were set.
func (f *Flags) ApplyOverrides(cfg *Config) {
	if f.Variant != "" {
		cfg.Database.Variant = f.Variant
	}

	// Visit only processes flags that were actually set
	f.fs.Visit(func(fl *flag.Flag) {
		logger.DebugTagf("config", "Applying flag override: %s", fl.Name)
		switch fl.Name {
		case "loglevel":
			if *f.LogLevel != "" {
				cfg.Logger.LogLevel = *f.LogLevel
			}
		case "logfile":
			cfg.Logger.LogFilePath = *f.LogFilePath
		case "scrolloff":
			if *f.ScrollOff >= 0 {
				cfg.Editor.ScrollOff = *f.ScrollOff
			}
		case "coalesce":
			if *f.CoalesceMs > 0 {
				cfg.Editor.CoalesceMs = *f.CoalesceMs
			}
		case "system-clipboard":
			cfg.Editor.SystemClipboard = *f.SystemClipboard
		case "highlight-line":
			cfg.Editor.HighlightLine = *f.HighlightLine
		case "log-tags":
			cfg.Logger.EnabledTags = splitCommaList(*f.EnableTags)
		case "log-disable-tags":
			cfg.Logger.DisabledTags = splitCommaList(*f.DisableTags)
		case "log-packages":
			cfg.Logger.EnabledPackages = splitCommaList(*f.EnablePkgs)
		case "log-disable-packages":
			cfg.Logger.DisabledPackages = splitCommaList(*f.DisablePkgs)
		case "username":
			cfg.Database.User = *f.Username
		case "password":
			cfg.Database.Password = *f.Password
		case "db":
			cfg.Database.Name = *f.Database
		case "host":
			if *f.Host != "" {
				cfg.Database.Host = *f.Host
			}
		case "port":
			if *f.Port > 0 {
				cfg.Database.Port = *f.Port
			}
		}
	})
}

func splitCommaList(list string) []string {
	if list == "" {
		return nil
	}
	items := strings.Split(list, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
