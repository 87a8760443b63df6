package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# todo configuration file
# Values can be overridden by TODO_* environment variables or CLI flags.

# Storage backend: file, sqlite or memory
storage = "file"

# Directory holding stored items (relative to the working directory)
data_dir = ".todo"

# Storage key of the item list
storage_key = "todoItems"

# Log directory (supports ~ and $VAR expansion)
log_dir = "~/.todo/logs"

# Logging: debug, info, warn or error; text, json or logfmt
log_level = "info"
log_format = "text"
log_timestamps = true
log_caller = false

# Item template glyphs and colors
[theme]
checked = "[x]"
unchecked = "[ ]"
bin = "🗑"
more = "⋮"
cursor = ">"
accent = "205"
muted = "241"
error = "196"
`
}
