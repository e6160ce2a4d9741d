package config

import (
	"strings"
	"time"
)

// ApplyDefaults sets default values for any unspecified configuration
// fields. Called after loading from file and environment so explicit
// values are preserved and only zero values are replaced.
func ApplyDefaults(cfg *Config) {
	applyLoggingDefaults(&cfg.Logging)
	applyServerDefaults(&cfg.Server)
	applyDriveDefaults(&cfg.Drive)
	applyContentDefaults(&cfg.Content)
	applySessionDefaults(&cfg.Session)
	applyShellDefaults(&cfg.Shell)
}

func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	cfg.Level = strings.ToUpper(cfg.Level)
}

func applyServerDefaults(cfg *ServerConfig) {
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
}

func applyDriveDefaults(cfg *DriveConfig) {
	if cfg.Type == "" {
		cfg.Type = "memory"
	}
	if cfg.Owner == "" {
		cfg.Owner = "drive@localhost"
	}
}

func applyContentDefaults(cfg *ContentConfig) {
	if cfg.Type == "" {
		cfg.Type = "memory"
	}
}

func applySessionDefaults(cfg *SessionConfig) {
	if cfg.Type == "" {
		cfg.Type = "memory"
	}
}

func applyShellDefaults(cfg *ShellConfig) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://drive.example.com"
	}
	if cfg.TreeFileLimit == 0 {
		cfg.TreeFileLimit = 50
	}
	if cfg.CatMaxBytes == 0 {
		cfg.CatMaxBytes = 64 * 1024
	}
	if cfg.Locale == "" {
		cfg.Locale = "en"
	}
}
