package config

import (
	"flag"
)

// flagFields maps global flag names to config field names.
var flagFields = map[string]string{
	"storage":    "storage",
	"data-dir":   "data_dir",
	"key":        "storage_key",
	"log-dir":    "log_dir",
	"log-level":  "log_level",
	"log-format": "log_format",
}

// parseFlags defines the global flags on fs, parses args and records
// explicitly set flags as SourceFlag.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("todo", flag.ContinueOnError)
	}

	fs.StringVar(&cfg.Storage, "storage", cfg.Storage, "Storage backend (file|sqlite|memory)")
	fs.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "Directory holding stored items")
	fs.StringVar(&cfg.StorageKey, "key", cfg.StorageKey, "Storage key of the item list")
	fs.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "Log directory")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text|json|logfmt)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if field, ok := flagFields[f.Name]; ok {
			sources[field] = SourceFlag
		}
	})
	return nil
}
