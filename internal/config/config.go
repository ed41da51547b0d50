// Package config loads server configuration from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds everything the serve command needs.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `yaml:"addr"`

	// DBPath is the SQLite database file. Empty means in-memory storage.
	DBPath string `yaml:"db_path"`

	// Codec selects the websocket wire format, "json" or "msgpack".
	Codec string `yaml:"codec"`

	Log LogConfig `yaml:"log"`
}

// LogConfig controls log output.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`

	// JSON switches from text to JSON output.
	JSON bool `yaml:"json"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Addr:  ":8080",
		Codec: "json",
		Log:   LogConfig{Level: "info"},
	}
}

// Load reads a YAML config file. Missing keys keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr must not be empty")
	}
	switch c.Codec {
	case "json", "msgpack":
	default:
		return fmt.Errorf("unknown codec %q", c.Codec)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	return nil
}
