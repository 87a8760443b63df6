package config

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, in load order.
	Files []string
}

// Default values.
const (
	DefaultStorage    = "file"
	DefaultDataDir    = ".todo"
	DefaultStorageKey = "todoItems"
	DefaultLogDir     = "~/.todo/logs"
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "text"
)

// Config holds the full configuration for todo.
type Config struct {
	// Storage backend: file, sqlite or memory
	Storage    string `toml:"storage"`
	DataDir    string `toml:"data_dir"`
	StorageKey string `toml:"storage_key"`

	// Logging configuration
	LogDir        string `toml:"log_dir"`
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	Theme Theme `toml:"theme"`

	// Working directory (computed)
	ProjectRoot string `toml:"-"`
}

// Theme holds the glyphs and colors of the item template.
type Theme struct {
	Checked   string `toml:"checked"`
	Unchecked string `toml:"unchecked"`
	Bin       string `toml:"bin"`
	More      string `toml:"more"`
	Cursor    string `toml:"cursor"`
	// Colors accept anything lipgloss.Color does ("205", "#ff5f87").
	Accent string `toml:"accent"`
	Muted  string `toml:"muted"`
	Error  string `toml:"error"`
}

// DefaultTheme returns the built-in theme.
func DefaultTheme() Theme {
	return Theme{
		Checked:   "[x]",
		Unchecked: "[ ]",
		Bin:       "🗑",
		More:      "⋮",
		Cursor:    ">",
		Accent:    "205",
		Muted:     "241",
		Error:     "196",
	}
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		"storage",
		"data_dir",
		"storage_key",
		"log_dir",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
		"theme",
	}
}
