// Package config loads virtual filesystem settings from the environment and
// from a YAML mount manifest.
package config

import (
	"fmt"

	"github.com/jmgilman/go/vfs/logging"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "VFS"

// Config holds the process-level settings.
type Config struct {
	// AllowedPaths restricts access to these directory prefixes.
	AllowedPaths []string `envconfig:"ALLOWED_PATHS"`
	// WriteDir is the directory new files and directories are created in.
	WriteDir string `envconfig:"WRITE_DIR"`
	// Organization and Application identify the preferences directory.
	Organization string `envconfig:"ORGANIZATION"`
	Application  string `envconfig:"APPLICATION"`

	PermitSymlinks  bool `envconfig:"PERMIT_SYMLINKS" default:"false"`
	AsyncWorkers    int  `envconfig:"ASYNC_WORKERS" default:"4"`
	ConsoleCommands bool `envconfig:"CONSOLE_COMMANDS" default:"true"`

	// Manifest is the path of a YAML mount manifest to apply at startup.
	Manifest string `envconfig:"MANIFEST"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	LogDev   bool   `envconfig:"LOG_DEV" default:"false"`
}

// Load reads the configuration from VFS_* environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from the environment or returns the
// defaults when the environment is invalid.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		AsyncWorkers:    4,
		ConsoleCommands: true,
		LogLevel:        "info",
	}
}

// Logging returns the logger configuration.
func (c *Config) Logging() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.LogLevel
	cfg.Development = c.LogDev
	return cfg
}
