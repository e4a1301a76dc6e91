// Package config provides configuration loading and structs for pdfsearch.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application. Every field has a
// working default, so running without a config file is fully supported.
type Config struct {
	Debug    bool           `yaml:"debug"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
	Scan     ScanConfig     `yaml:"scan"`
	Server   ServerConfig   `yaml:"server"`
	Watch    WatchConfig    `yaml:"watch"`
}

// SnapshotConfig holds index snapshot settings.
type SnapshotConfig struct {
	// Filename is the snapshot file name inside the indexed directory.
	Filename string `yaml:"filename"`
	// TTLSeconds is the staleness threshold in seconds.
	TTLSeconds int64 `yaml:"ttl_seconds"`
}

// TTL returns the staleness threshold as a duration.
func (c *SnapshotConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// ScanConfig holds directory scan settings.
type ScanConfig struct {
	// Extension is the default filetype to index when none is given.
	Extension string `yaml:"extension"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// WatchConfig holds directory watch settings for serve --watch.
type WatchConfig struct {
	// DebounceMillis is how long to wait after the last filesystem event
	// before triggering a full rebuild.
	DebounceMillis int `yaml:"debounce_ms"`
}

// Debounce returns the watch debounce as a duration.
func (c *WatchConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMillis) * time.Millisecond
}

// Load reads and parses the config file at path, applies defaults, and
// expands relative paths. Returns an error if the file cannot be read or
// parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	ApplyDefaults(&cfg)
	return &cfg, nil
}

// LoadOrDefault loads the config at path when the file exists; a missing
// file yields the defaults with no error. Parse failures still surface.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to stat config: %w", err)
	}
	return Load(path)
}

// Default returns a config with every default applied.
func Default() *Config {
	var cfg Config
	ApplyDefaults(&cfg)
	return &cfg
}

// ExpandPath converts path to absolute. Paths starting with "./" stay
// relative to baseDir; other relative paths are relative to the home
// directory, matching how the config file is usually written.
func ExpandPath(path, baseDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(baseDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
