package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// localConfigPath is checked relative to the working directory.
const localConfigPath = "configs/t2048.yaml"

// Load loads the t2048 configuration. Keys missing from a file keep their
// default values.
// Search order: customPath -> ~/.t2048/config.yaml -> ./configs/t2048.yaml -> embedded default
func Load(customPath string) (Config, error) {
	return load(customPath, userConfigPath(), localConfigPath)
}

func load(customPath string, searchPaths ...string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Default(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return Default(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range searchPaths {
		if path == "" {
			continue
		}
		if data, err := os.ReadFile(path); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultYAML)
	if err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to the user config file, or empty if home is unavailable.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".t2048", "config.yaml")
}
