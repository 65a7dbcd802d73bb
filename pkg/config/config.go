/*
Package config manages TOML configuration for the restoration engine.

InitConfig handles automatic config file creation and loading with fallback
to defaults. LoadConfig and SaveConfig provide direct fs access for runtime
changes. Update allows targeted parameter changes with persistence.
*/
package config

import (
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vholub/diac/internal/utils"
)

// Config holds the entire configuration structure.
type Config struct {
	Cache    CacheConfig    `toml:"cache"`
	Conflict ConflictConfig `toml:"conflict"`
	Model    ModelConfig    `toml:"model"`
}

// CacheConfig controls the paged file cache in front of the model file.
type CacheConfig struct {
	Enabled  bool  `toml:"enabled"`
	PageSize int64 `toml:"page_size"`
}

// ConflictConfig controls interactive disambiguation.
type ConflictConfig struct {
	Interactive   bool `toml:"interactive"`
	MaxCandidates int  `toml:"max_candidates"`
}

// ModelConfig points at the three data files the engine loads at startup.
type ModelConfig struct {
	DictionaryPath  string `toml:"dictionary_path"`
	OffsetIndexPath string `toml:"offset_index_path"`
	ModelPath       string `toml:"model_path"`
	Workers         int    `toml:"workers"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Cache: CacheConfig{
			Enabled:  true,
			PageSize: 4 << 20,
		},
		Conflict: ConflictConfig{
			Interactive:   true,
			MaxCandidates: 4,
		},
		Model: ModelConfig{
			DictionaryPath:  "words.txt",
			OffsetIndexPath: "offsets.idx",
			ModelPath:       "model.bin",
			Workers:         8,
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)
	if err := utils.EnsureDir(configDir); err != nil {
		return nil, err
	}
	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			return nil, err
		}
		log.Debugf("Created default config file at: ( %s )", configPath)
		return config, nil
	}
	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config, attempting partial recovery: %v", err)
		return recoverConfig(configPath), nil
	}
	return config, nil
}

// recoverConfig salvages whatever sections/fields still parse out of a
// broken config.toml, layering them over the defaults rather than
// discarding the whole file over one bad line.
func recoverConfig(configPath string) *Config {
	config := DefaultConfig()

	raw, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not recover any part of %s, using defaults: %v", configPath, err)
		return config
	}

	if cache, ok := utils.ExtractSection(raw, "cache"); ok {
		if v, ok := utils.ExtractBool(cache, "enabled"); ok {
			config.Cache.Enabled = v
		}
		if v, ok := utils.ExtractInt64(cache, "page_size"); ok {
			config.Cache.PageSize = int64(v)
		}
	}
	if conflict, ok := utils.ExtractSection(raw, "conflict"); ok {
		if v, ok := utils.ExtractBool(conflict, "interactive"); ok {
			config.Conflict.Interactive = v
		}
		if v, ok := utils.ExtractInt64(conflict, "max_candidates"); ok {
			config.Conflict.MaxCandidates = v
		}
	}
	if modelSec, ok := utils.ExtractSection(raw, "model"); ok {
		if v, ok := utils.ExtractInt64(modelSec, "workers"); ok {
			config.Model.Workers = v
		}
	}
	return config
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	var config Config
	if err := utils.LoadTOMLFile(configPath, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// Update changes the cache/conflict settings and saves to file.
func (c *Config) Update(configPath string, cacheEnabled, conflictInteractive *bool, maxCandidates *int) error {
	if cacheEnabled != nil {
		c.Cache.Enabled = *cacheEnabled
	}
	if conflictInteractive != nil {
		c.Conflict.Interactive = *conflictInteractive
	}
	if maxCandidates != nil {
		c.Conflict.MaxCandidates = *maxCandidates
	}
	return SaveConfig(c, configPath)
}
