// Package config loads the optional bookshelf.toml settings file.
package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const ConfigFile = "bookshelf.toml"

const (
	DefaultPort         = 5000
	DefaultDataPath     = "db.json"
	DefaultConsoleTitle = "Bookshelf GraphQL"
	DefaultSearchLimit  = 20
)

// Config holds the bookshelf configuration.
type Config struct {
	Server ServerConfig `toml:"server"`
	Data   DataConfig   `toml:"data"`
	Search SearchConfig `toml:"search"`
}

// ServerConfig defines settings for the HTTP server.
type ServerConfig struct {
	Port         int    `toml:"port"`
	Console      *bool  `toml:"console,omitempty"`
	ConsoleTitle string `toml:"console_title,omitempty"`
}

// DataConfig points at the seed document.
type DataConfig struct {
	Path string `toml:"path"`
}

// SearchConfig tunes the full-text search queries.
type SearchConfig struct {
	Limit int `toml:"limit"`
}

// Default returns a Config with default values.
func Default() *Config {
	console := true
	return &Config{
		Server: ServerConfig{
			Port:         DefaultPort,
			Console:      &console,
			ConsoleTitle: DefaultConsoleTitle,
		},
		Data: DataConfig{
			Path: DefaultDataPath,
		},
		Search: SearchConfig{
			Limit: DefaultSearchLimit,
		},
	}
}

// Load reads configuration from path. If path is a directory, ConfigFile
// inside it is read. Returns default config if the file doesn't exist.
// A relative data path is resolved against the config file's directory.
func Load(path string) (*Config, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, ConfigFile)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Apply defaults for missing values
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Server.Console == nil {
		console := true
		cfg.Server.Console = &console
	}
	if cfg.Server.ConsoleTitle == "" {
		cfg.Server.ConsoleTitle = DefaultConsoleTitle
	}
	if cfg.Data.Path == "" {
		cfg.Data.Path = DefaultDataPath
	}
	if !filepath.IsAbs(cfg.Data.Path) {
		cfg.Data.Path = filepath.Join(filepath.Dir(path), cfg.Data.Path)
	}
	if cfg.Search.Limit <= 0 {
		cfg.Search.Limit = DefaultSearchLimit
	}

	return &cfg, nil
}

// Save writes the configuration to path.
func (c *Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ConsoleEnabled reports whether GET navigations from a browser get the
// interactive console.
func (c *Config) ConsoleEnabled() bool {
	return c.Server.Console == nil || *c.Server.Console
}
