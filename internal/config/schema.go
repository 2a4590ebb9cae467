package config

import (
	"time"

	"gopkg.in/yaml.v3"

	"hanzimap/internal/engine"
)

// Config is the root configuration structure
type Config struct {
	Version  int            `yaml:"version" toml:"version"`
	Server   ServerConfig   `yaml:"server" toml:"server"`
	Data     DataConfig     `yaml:"data" toml:"data"`
	Database DatabaseConfig `yaml:"database" toml:"database"`
	Layout   LayoutConfig   `yaml:"layout" toml:"layout"`
	Session  SessionConfig  `yaml:"session" toml:"session"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Addr            string   `yaml:"addr" toml:"addr"`
	ReadTimeout     Duration `yaml:"read_timeout" toml:"read_timeout"`
	WriteTimeout    Duration `yaml:"write_timeout" toml:"write_timeout"`
	IdleTimeout     Duration `yaml:"idle_timeout" toml:"idle_timeout"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout" toml:"shutdown_timeout"`
}

// DataConfig says where the graph document comes from
type DataConfig struct {
	// Source is a file path, an http(s) URL or "sqlite:path"
	Source      string `yaml:"source" toml:"source"`
	Watch       *bool  `yaml:"watch,omitempty" toml:"watch,omitempty"`
	DefaultRoot string `yaml:"default_root" toml:"default_root"`
}

// WatchEnabled reports whether a file source is reloaded on change
func (d DataConfig) WatchEnabled() bool {
	return d.Watch == nil || *d.Watch
}

// DatabaseConfig holds the SQLite catalog settings
type DatabaseConfig struct {
	Path string `yaml:"path" toml:"path"`
}

// LayoutConfig overrides the force-directed layout options.
// Unset fields keep the defaults.
type LayoutConfig struct {
	Name     string `yaml:"name,omitempty" toml:"name,omitempty"`
	Infinite *bool  `yaml:"infinite,omitempty" toml:"infinite,omitempty"`
	Fit      *bool  `yaml:"fit,omitempty" toml:"fit,omitempty"`
}

// Options resolves the layout options sent to the page
func (l LayoutConfig) Options() engine.LayoutOptions {
	opts := engine.DefaultLayout()
	if l.Name != "" {
		opts.Name = l.Name
	}
	if l.Infinite != nil {
		opts.Infinite = *l.Infinite
	}
	if l.Fit != nil {
		opts.Fit = *l.Fit
	}
	return opts
}

// SessionConfig holds websocket session settings
type SessionConfig struct {
	IdleTimeout Duration `yaml:"idle_timeout" toml:"idle_timeout"`
}

// Duration wraps time.Duration for YAML and TOML unmarshaling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, used by the TOML decoder
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
