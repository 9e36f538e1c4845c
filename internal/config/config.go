// Package config loads Memex settings from a config file and the
// environment.
//
// Lookup order: MEMEX_* environment variables override config.yaml,
// which overrides the built-in defaults. The config file is searched
// for in the working directory, $XDG_CONFIG_HOME/memex, and
// ~/.config/memex; running without one is fine.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds every tunable of the Memex server.
type Config struct {
	// DataDir is where the SQLite database lives.
	DataDir string `yaml:"data_dir" mapstructure:"data_dir"`

	// HTTPAddr is the listen address of the HTTP API.
	HTTPAddr string `yaml:"http_addr" mapstructure:"http_addr"`

	// SearchTimeout bounds one web search round-trip.
	SearchTimeout time.Duration `yaml:"search_timeout" mapstructure:"search_timeout"`

	// SearchMaxResults caps how many result snippets feed one answer.
	SearchMaxResults int `yaml:"search_max_results" mapstructure:"search_max_results"`

	// SpeechCommand is the text-to-speech command; empty selects the
	// platform default.
	SpeechCommand string `yaml:"speech_command" mapstructure:"speech_command"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		DataDir:          filepath.Join(home, ".memex"),
		HTTPAddr:         ":5000",
		SearchTimeout:    8 * time.Second,
		SearchMaxResults: 3,
		SpeechCommand:    "",
	}
}

// Load reads the configuration from defaults, config.yaml and MEMEX_*
// environment variables, in increasing priority.
func Load() (*Config, error) {
	defaults := DefaultConfig()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Search paths
	v.AddConfigPath(".")
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		v.AddConfigPath(filepath.Join(xdg, "memex"))
	}
	home, _ := os.UserHomeDir()
	v.AddConfigPath(filepath.Join(home, ".config", "memex"))

	// Defaults make every key visible to AutomaticEnv.
	v.SetDefault("data_dir", defaults.DataDir)
	v.SetDefault("http_addr", defaults.HTTPAddr)
	v.SetDefault("search_timeout", defaults.SearchTimeout)
	v.SetDefault("search_max_results", defaults.SearchMaxResults)
	v.SetDefault("speech_command", defaults.SpeechCommand)

	// Environment variables
	v.SetEnvPrefix("MEMEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error produced
			return nil, fmt.Errorf("config: %w", err)
		}
		// Config file not found; ignore and use defaults
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration and falls back to defaults for
// values that make no sense.
func (c *Config) Validate() error {
	defaults := DefaultConfig()

	if c.DataDir == "" {
		if defaults.DataDir == "" {
			return fmt.Errorf("config: data_dir is required and no home directory was found")
		}
		c.DataDir = defaults.DataDir
	}
	if c.HTTPAddr == "" {
		c.HTTPAddr = defaults.HTTPAddr
	}
	if c.SearchTimeout <= 0 {
		c.SearchTimeout = defaults.SearchTimeout
	}
	if c.SearchMaxResults < 1 {
		c.SearchMaxResults = defaults.SearchMaxResults
	}
	return nil
}
