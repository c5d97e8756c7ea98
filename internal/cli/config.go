package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds user defaults loaded from ~/.config/lumen/config.toml.
// Command-line flags always override file values.
type Config struct {
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
}

// RenderConfig holds default render parameters.
type RenderConfig struct {
	Width   uint `toml:"width"`
	Samples uint `toml:"samples"`
	Threads uint `toml:"threads"`
}

// CacheConfig selects the artifact cache backend.
type CacheConfig struct {
	// Backend is "file" (default), "redis", or "none".
	Backend string `toml:"backend"`

	// RedisURL is the connection URL for the redis backend,
	// e.g. redis://localhost:6379/0.
	RedisURL string `toml:"redis_url"`
}

// configPath returns the config file location, honoring XDG_CONFIG_HOME.
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// LoadConfig reads the user config file. A missing file yields the zero
// config; a malformed file is an error so typos don't silently vanish.
func LoadConfig() (*Config, error) {
	var cfg Config

	path, err := configPath()
	if err != nil {
		return &cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
