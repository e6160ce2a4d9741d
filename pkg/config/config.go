// Package config loads, defaults and validates the process configuration,
// and provides factories that turn configuration sections into live stores.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures all configurable aspects of the drive terminal server:
// logging, the HTTP listener, the three stores (drive metadata, file
// content, sessions), shell behavior and metrics.
//
// Configuration sources (in order of precedence):
//  1. CLI flags (highest priority)
//  2. Environment variables (DRIVECLI_*)
//  3. Configuration file (YAML)
//  4. Default values (lowest priority)
//
// Store Configuration Pattern:
// Each store section carries a Type field selecting the implementation and
// one options map per implementation. Only the map matching the selected
// type is decoded; the factory for that type performs the decoding.
type Config struct {
	// Logging controls log output behavior
	Logging LoggingConfig `mapstructure:"logging"`

	// Server contains HTTP listener settings
	Server ServerConfig `mapstructure:"server"`

	// Drive specifies the drive metadata store type and its options
	Drive DriveConfig `mapstructure:"drive"`

	// Content specifies the content store type and its options
	Content ContentConfig `mapstructure:"content"`

	// Session specifies the session store type and its options
	Session SessionConfig `mapstructure:"session"`

	// Shell tunes command behavior
	Shell ShellConfig `mapstructure:"shell"`

	// Metrics controls the Prometheus exposition
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	// Level is the minimum log level to output
	// Valid values: DEBUG, INFO, WARN, ERROR (case-insensitive)
	Level string `mapstructure:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error"`
}

// ServerConfig contains HTTP listener settings.
type ServerConfig struct {
	// ListenAddr is the address the HTTP server binds to (e.g. ":8080")
	ListenAddr string `mapstructure:"listen_addr" validate:"required"`

	// ShutdownTimeout is the maximum time to wait for graceful shutdown
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required,gt=0"`
}

// DriveConfig specifies the drive metadata store.
type DriveConfig struct {
	// Type selects the implementation
	// Valid values: memory, badger
	Type string `mapstructure:"type" validate:"required,oneof=memory badger"`

	// Owner is the identity stamped on created nodes
	Owner string `mapstructure:"owner"`

	// Memory contains memory-specific options (none today)
	// Only used when Type = "memory"
	Memory map[string]any `mapstructure:"memory"`

	// Badger contains BadgerDB-specific options
	// Only used when Type = "badger"
	Badger map[string]any `mapstructure:"badger"`
}

// ContentConfig specifies the content store.
type ContentConfig struct {
	// Type selects the implementation
	// Valid values: memory, filesystem, s3
	Type string `mapstructure:"type" validate:"required,oneof=memory filesystem s3"`

	// Filesystem contains filesystem-specific options
	// Only used when Type = "filesystem"
	Filesystem map[string]any `mapstructure:"filesystem"`

	// S3 contains S3-specific options
	// Only used when Type = "s3"
	S3 map[string]any `mapstructure:"s3"`
}

// SessionConfig specifies the session store.
type SessionConfig struct {
	// Type selects the implementation
	// Valid values: memory, badger
	Type string `mapstructure:"type" validate:"required,oneof=memory badger"`

	// Badger contains BadgerDB-specific options
	// Only used when Type = "badger"
	Badger map[string]any `mapstructure:"badger"`
}

// ShellConfig tunes command behavior.
type ShellConfig struct {
	// BaseURL is the external URL prefix rendered for nodes
	BaseURL string `mapstructure:"base_url" validate:"required,url"`

	// TreeFileLimit caps files rendered per folder in the tree view
	TreeFileLimit int `mapstructure:"tree_file_limit" validate:"required,gt=0"`

	// CatMaxBytes caps the content size cat will print
	CatMaxBytes uint64 `mapstructure:"cat_max_bytes" validate:"required,gt=0"`

	// Locale is the BCP 47 tag selecting listing collation
	Locale string `mapstructure:"locale" validate:"required"`

	// SeedFile optionally points to a YAML tree applied to an empty store
	SeedFile string `mapstructure:"seed_file"`
}

// MetricsConfig controls Prometheus exposition on GET /metrics.
type MetricsConfig struct {
	// Enabled turns the registry and the endpoint on
	Enabled bool `mapstructure:"enabled"`
}

// Load loads configuration from file, environment, and defaults.
//
// Parameters:
//   - configPath: Path to config file (empty string uses default location)
//
// Returns the loaded and validated configuration.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setupViper(v, configPath)

	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// setupViper configures environment variable support and the config file
// search path.
func setupViper(v *viper.Viper, configPath string) {
	// Example: DRIVECLI_LOGGING_LEVEL=DEBUG
	v.SetEnvPrefix("DRIVECLI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(getConfigDir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
}

// readConfigFile reads the configuration file if it exists. A missing file
// is not an error; defaults apply.
func readConfigFile(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// getConfigDir returns the configuration directory path.
//
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config, or falls back to the
// current directory if the home directory cannot be determined.
func getConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "drivecli")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "drivecli")
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() string {
	return filepath.Join(getConfigDir(), "config.yaml")
}
