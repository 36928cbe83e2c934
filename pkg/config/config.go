// Package config loads gridbox configuration from TOML files. The
// config file lives in the XDG config directory and is optional:
// missing files fall back to defaults, malformed files are errors.
package config

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/adrg/xdg"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/gridbox/pkg/errors"
	"github.com/arthur-debert/gridbox/pkg/logging"
)

// EnvConfigDir overrides the XDG config directory for gridbox
const EnvConfigDir = "GRIDBOX_CONFIG_DIR"

// ConfigFile is the name of the configuration file
const ConfigFile = "config.toml"

// Config holds all user-configurable settings
type Config struct {
	Serialization SerializationConfig `toml:"serialization"`
	Logging       LoggingConfig       `toml:"logging"`
}

// SerializationConfig controls archive selection
type SerializationConfig struct {
	// DefaultArchive is the backend used when none is specified
	DefaultArchive string `toml:"default_archive"`
}

// LoggingConfig controls log output
type LoggingConfig struct {
	// Verbosity maps to the log level (0 warn, 1 info, 2 debug, 3+ trace)
	Verbosity int `toml:"verbosity"`
}

var (
	initOnce sync.Once
	current  Config
)

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Serialization: SerializationConfig{DefaultArchive: "binary"},
		Logging:       LoggingConfig{Verbosity: 0},
	}
}

// DefaultPath returns the path of the config file, honoring the
// GRIDBOX_CONFIG_DIR override before falling back to XDG
func DefaultPath() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return filepath.Join(dir, ConfigFile)
	}
	return filepath.Join(xdg.ConfigHome, "gridbox", ConfigFile)
}

// Load reads and validates a config file
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, errors.ErrConfigLoad,
			"failed to read config file %s", path)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, errors.ErrConfigParse,
			"failed to parse TOML in %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for consistency
func (c Config) Validate() error {
	if c.Serialization.DefaultArchive == "" {
		return errors.New(errors.ErrConfigValid, "serialization.default_archive cannot be empty")
	}
	if c.Logging.Verbosity < 0 {
		return errors.New(errors.ErrConfigValid, "logging.verbosity cannot be negative")
	}
	return nil
}

// Initialize loads the global configuration once. Passing a non-nil
// override skips file loading entirely (used by tests). Repeated
// calls are no-ops.
func Initialize(override *Config) {
	initOnce.Do(func() {
		logger := logging.GetLogger("config")

		if override != nil {
			current = *override
			logger.Debug().Msg("Configuration initialized from override")
			return
		}

		path := DefaultPath()
		if _, err := os.Stat(path); err != nil {
			current = Default()
			logger.Debug().Str("path", path).Msg("No config file, using defaults")
			return
		}

		cfg, err := Load(path)
		if err != nil {
			current = Default()
			logger.Warn().Err(err).Str("path", path).Msg("Ignoring invalid config file")
			return
		}

		current = cfg
		logger.Debug().Str("path", path).Msg("Configuration loaded")
	})
}

// Get returns the global configuration. Initialize must have been
// called first; otherwise the zero config is returned.
func Get() Config {
	return current
}
