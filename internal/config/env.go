package config

import (
	"os"

	"github.com/nibzard/todo-go/internal/utils"
)

// loadFromEnv overrides config from TODO_* environment variables and
// records them as SourceEnv.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	setString := func(env, field string, target *string) {
		if v := os.Getenv(env); v != "" {
			*target = v
			sources[field] = SourceEnv
		}
	}
	setBool := func(env, field string, target *bool) {
		if v := os.Getenv(env); v != "" {
			*target = utils.BoolFromString(v)
			sources[field] = SourceEnv
		}
	}

	setString("TODO_STORAGE", "storage", &cfg.Storage)
	setString("TODO_DATA_DIR", "data_dir", &cfg.DataDir)
	setString("TODO_STORAGE_KEY", "storage_key", &cfg.StorageKey)
	setString("TODO_LOG_DIR", "log_dir", &cfg.LogDir)
	setString("TODO_LOG_LEVEL", "log_level", &cfg.LogLevel)
	setString("TODO_LOG_FORMAT", "log_format", &cfg.LogFormat)
	setBool("TODO_LOG_TIMESTAMPS", "log_timestamps", &cfg.LogTimestamps)
	setBool("TODO_LOG_CALLER", "log_caller", &cfg.LogCaller)
}
