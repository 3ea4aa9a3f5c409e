// Package config handles the global persid configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents configuration stored in ~/.config/persid/config.yml.
type Config struct {
	Mailto  string `yaml:"mailto,omitempty"`   // Contact address for polite-pool access
	DataDir string `yaml:"data_dir,omitempty"` // History and cache location
	NoCache bool   `yaml:"no_cache,omitempty"` // Disable the citation cache
}

const (
	// ConfigDirName is the directory name under XDG_CONFIG_HOME.
	ConfigDirName = "persid"
	// ConfigFileName is the config file name.
	ConfigFileName = "config.yml"
	// HistoryFileName is the identifier history file name.
	HistoryFileName = "history.jsonl"
	// CacheFileName is the citation cache database file name.
	CacheFileName = "citations.db"
)

// configCache caches the loaded config.
var configCache *Config

// Path returns the path to the config file. Respects XDG_CONFIG_HOME,
// defaults to ~/.config/persid/config.yml.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDirName, ConfigFileName)
}

// Load reads the configuration file. Returns an empty config (not an
// error) if the file doesn't exist.
func Load() (*Config, error) {
	if configCache != nil {
		return configCache, nil
	}

	path := Path()
	if path == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.DataDir != "" {
		cfg.DataDir = ExpandTilde(cfg.DataDir)
	}

	configCache = &cfg
	return &cfg, nil
}

// ResetCache clears the cached config. Useful for testing.
func ResetCache() {
	configCache = nil
}

// GetMailto returns the polite-pool contact address: the PERSID_MAILTO
// environment variable when set, otherwise the configured value.
func GetMailto() string {
	if m := os.Getenv("PERSID_MAILTO"); m != "" {
		return m
	}
	cfg, _ := Load()
	return cfg.Mailto
}

// ResolvedDataDir returns the configured data directory, defaulting to
// XDG_DATA_HOME/persid (or ~/.local/share/persid).
func (c *Config) ResolvedDataDir() string {
	if c.DataDir != "" {
		return c.DataDir
	}
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, ConfigDirName)
}

// HistoryPath returns the path to the history file under a data dir.
func HistoryPath(dataDir string) string {
	return filepath.Join(dataDir, HistoryFileName)
}

// CachePath returns the path to the cache database under a data dir.
func CachePath(dataDir string) string {
	return filepath.Join(dataDir, CacheFileName)
}

// ExpandTilde expands a leading ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandTilde(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[1:])
}
