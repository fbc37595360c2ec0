package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the configuration.
// Search order: customPath -> ~/.unblocked/config.yaml -> ./config.yaml -> embedded default
func Load(customPath string) (Config, error) {
	var cfg Config

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return applyDefaults(cfg), nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return applyDefaults(cfg), nil
			}
		}
	}

	// Try local config file
	if data, err := os.ReadFile("config.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return applyDefaults(cfg), nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return applyDefaults(cfg), nil
}

// applyDefaults fills zero-valued fields so a partial config file still
// yields a usable configuration.
func applyDefaults(cfg Config) Config {
	def := DefaultConfig()
	if cfg.Paths.Database == "" {
		cfg.Paths.Database = def.Paths.Database
	}
	if cfg.Paths.Replays == "" {
		cfg.Paths.Replays = def.Paths.Replays
	}
	if cfg.Game.TickRate <= 0 {
		cfg.Game.TickRate = def.Game.TickRate
	}
	if cfg.Game.MinThrows <= 0 {
		cfg.Game.MinThrows = def.Game.MinThrows
	}
	return cfg
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".unblocked", filename)
}

// ExpandHome expands a leading ~ in a path to the user's home directory.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
