// Package config loads the explorer's configuration.
//
// Config file locations (priority order):
//  1. $HANZIMAP_CONFIG
//  2. ./hanzimap.yaml or ./hanzimap.toml
//  3. ~/.config/hanzimap/config.yaml
//  4. /etc/hanzimap/config.yaml
//
// Files ending in .toml are decoded as TOML, anything else as YAML.
// Missing values fall back to defaults; command-line flags override both.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"hanzimap/internal/domain"
)

// Defaults
const (
	DefaultAddr         = ":8080"
	DefaultSource       = "graph_data.json"
	DefaultDatabasePath = "./hanzimap.db"
)

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if isTOML(path) {
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, path, fmt.Errorf("parse config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	var data []byte
	if isTOML(path) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		data = buf.Bytes()
	} else {
		var err error
		if data, err = yaml.Marshal(c); err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = Duration(10 * time.Second)
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = Duration(60 * time.Second)
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = Duration(10 * time.Second)
	}
	if c.Data.Source == "" {
		c.Data.Source = DefaultSource
	}
	if c.Data.DefaultRoot == "" {
		c.Data.DefaultRoot = domain.DefaultRootID
	}
	if c.Database.Path == "" {
		c.Database.Path = DefaultDatabasePath
	}
	if c.Session.IdleTimeout == 0 {
		c.Session.IdleTimeout = Duration(10 * time.Minute)
	}
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	layout := c.Layout.Options()
	return fmt.Sprintf("Listen: %s, Source: %s (watch: %v), Default root: %s, Layout: %s (infinite: %v, fit: %v)",
		c.Server.Addr, c.Data.Source, c.Data.WatchEnabled(), c.Data.DefaultRoot,
		layout.Name, layout.Infinite, layout.Fit)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
