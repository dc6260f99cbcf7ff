// Package config handles TOML-based configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/go-hclog"
)

// Config holds all application configuration.
type Config struct {
	PrefsBackend string `toml:"prefs_backend"`
	PrefsPath    string `toml:"prefs_path"`
	Strict       bool   `toml:"strict"`
	LogLevel     string `toml:"log_level"`
	Listen       string `toml:"listen"`
	Debug        bool   `toml:"debug"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		PrefsBackend: "file",
		PrefsPath:    "",
		Strict:       false,
		LogLevel:     "info",
		Listen:       "127.0.0.1:8080",
		Debug:        false,
	}
}

// configDir returns the XDG-compliant config directory.
func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "ouiplayer"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "ouiplayer"), nil
}

// ConfigPath returns the path to the config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file and merges with defaults.
// If the config file doesn't exist, defaults are returned.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err != nil {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks config values are within acceptable bounds.
func (c *Config) Validate() error {
	validBackends := map[string]bool{
		"file": true, "sqlite": true,
	}
	if !validBackends[strings.ToLower(c.PrefsBackend)] {
		return fmt.Errorf("unsupported prefs backend %q (valid: file, sqlite)", c.PrefsBackend)
	}

	if hclog.LevelFromString(c.LogLevel) == hclog.NoLevel {
		return fmt.Errorf("unsupported log level %q (valid: trace, debug, info, warn, error)", c.LogLevel)
	}

	if c.Listen == "" {
		return fmt.Errorf("listen address cannot be empty")
	}

	return nil
}

// Level returns the log level, forced to debug when Debug is set.
func (c *Config) Level() hclog.Level {
	if c.Debug {
		return hclog.Debug
	}
	return hclog.LevelFromString(c.LogLevel)
}

// ResolvePrefsPath returns the preference store location, defaulting to
// the XDG data directory. A leading ~ is expanded.
func (c *Config) ResolvePrefsPath() (string, error) {
	path := c.PrefsPath
	if path == "" {
		name := "prefs.toml"
		if strings.EqualFold(c.PrefsBackend, "sqlite") {
			name = "prefs.db"
		}
		dir, err := DataDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, name), nil
	}
	if path == ":memory:" {
		return path, nil
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expanding home dir: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}
	return filepath.Abs(path)
}

// DataDir returns the XDG-compliant data directory.
func DataDir() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "ouiplayer"), nil
}
