package config

import (
	"fmt"
	"strconv"
)

// Entry is one effective setting and where it came from.
type Entry struct {
	Key    string
	Value  string
	Source ConfigSource
}

// Entries lists every configurable field with its effective value.
func (cws *ConfigWithSources) Entries() []Entry {
	cfg := cws.Config
	values := map[string]string{
		"storage":        cfg.Storage,
		"data_dir":       cfg.DataDir,
		"storage_key":    cfg.StorageKey,
		"log_dir":        cfg.LogDir,
		"log_level":      cfg.LogLevel,
		"log_format":     cfg.LogFormat,
		"log_timestamps": strconv.FormatBool(cfg.LogTimestamps),
		"log_caller":     strconv.FormatBool(cfg.LogCaller),
		"theme": fmt.Sprintf("checked=%q unchecked=%q bin=%q more=%q",
			cfg.Theme.Checked, cfg.Theme.Unchecked, cfg.Theme.Bin, cfg.Theme.More),
	}

	entries := make([]Entry, 0, len(values))
	for _, field := range configFields() {
		source, ok := cws.Sources[field]
		if !ok {
			source = SourceDefault
		}
		entries = append(entries, Entry{Key: field, Value: values[field], Source: source})
	}
	return entries
}
