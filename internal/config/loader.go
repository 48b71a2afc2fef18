package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Dir returns ~/.config/msghist.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "msghist"), nil
}

// Load loads configuration from ~/.config/msghist/config.yaml. A missing or
// invalid file yields the defaults.
func Load() Config {
	dir, err := Dir()
	if err != nil {
		return DefaultConfig()
	}
	cfg, err := LoadFile(filepath.Join(dir, "config.yaml"))
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

// LoadFile reads a config file and merges it over the defaults.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	parsed := cfg
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	if parsed.PageSize < 1 {
		parsed.PageSize = cfg.PageSize
	}
	return parsed, nil
}

// DefaultLogFile returns ~/.local/share/msghist/msghist.log.
func DefaultLogFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "msghist.log")
	}
	return filepath.Join(home, ".local", "share", "msghist", "msghist.log")
}
