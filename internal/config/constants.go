package config

// Base application details
const AppName = "rsql"
const Version = "0.1.0"
const DefaultConfigFileName = "config.toml"
const DefaultLogFileName = "rsql.log"

// Data source defaults
const DefaultVariant = "mysql"
const DefaultHost = "127.0.0.1"
const DefaultPort = 3306

// Editor behaviour
const DefaultScrollOff = 0
const DefaultCoalesceMs = 1000
const DefaultHistoryLimit = 0 // unbounded
const HighlightLine = false
const SystemClipboard = false

// Frame colours, as tcell colour names
const DefaultBorderColor = "default"
const DefaultTitleColor = "default"
const DefaultTextColor = "default"
const DefaultSelectedBG = "blue"
