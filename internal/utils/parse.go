package utils

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// LoadTOMLFile decodes configPath directly into config (normally a
// *pkg/config.Config). A decode failure means the file has at least one
// malformed section and the caller should fall back to
// ParseTOMLWithRecovery to salvage what it can.
func LoadTOMLFile(configPath string, config interface{}) error {
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		log.Warnf("TOML parsing error in config file %s: %v. Attempting partial recovery...", configPath, err)
		return err
	}
	return nil
}

// ParseTOMLWithRecovery decodes configPath into a loosely-typed
// map[string]any instead of a fixed struct, so that a value of the wrong
// type under one section (e.g. a string where [model] expects an integer)
// does not prevent the [cache]/[conflict] sections from still being read
// back by ExtractSection/ExtractInt64/ExtractBool. A file that is not valid
// TOML syntax at all yields an error and nothing is recovered.
func ParseTOMLWithRecovery(configPath string) (map[string]any, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	tempConfig := make(map[string]any)
	if _, err := toml.Decode(string(data), &tempConfig); err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v", configPath, err)
		return nil, err
	}
	return tempConfig, nil
}

// ExtractSection pulls one top-level table (e.g. "cache", "conflict",
// "model") out of data returned by ParseTOMLWithRecovery.
func ExtractSection(data map[string]any, sectionName string) (map[string]any, bool) {
	section, ok := data[sectionName].(map[string]any)
	return section, ok
}

// ExtractInt64 reads an integer-valued key (e.g. "page_size",
// "max_candidates", "workers") out of a section map. TOML integers decode
// to int64 regardless of the target field's Go width, hence the cast.
func ExtractInt64(data map[string]any, key string) (int, bool) {
	if val, ok := data[key].(int64); ok {
		return int(val), true
	}
	return 0, false
}

// ExtractBool reads a boolean-valued key (e.g. "enabled", "interactive")
// out of a section map.
func ExtractBool(data map[string]any, key string) (bool, bool) {
	if val, ok := data[key].(bool); ok {
		return val, true
	}
	return false, false
}
