package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"golang.org/x/text/language"
)

// validate is the singleton validator instance
var validate = validator.New()

// Validate validates the configuration using struct tags plus custom rules
// that cannot be expressed in tags.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return formatValidationError(err)
	}
	return validateCustomRules(cfg)
}

// validateCustomRules performs validation beyond struct tags.
func validateCustomRules(cfg *Config) error {
	// The locale must parse as a BCP 47 tag or listing collation cannot be
	// built.
	if _, err := language.Parse(cfg.Shell.Locale); err != nil {
		return fmt.Errorf("shell.locale: invalid BCP 47 tag %q: %w", cfg.Shell.Locale, err)
	}

	if cfg.Drive.Type == "badger" {
		if path, _ := cfg.Drive.Badger["path"].(string); path == "" {
			return fmt.Errorf("drive.badger.path is required when drive.type is badger")
		}
	}
	if cfg.Session.Type == "badger" {
		if path, _ := cfg.Session.Badger["path"].(string); path == "" {
			return fmt.Errorf("session.badger.path is required when session.type is badger")
		}
	}
	if cfg.Content.Type == "filesystem" {
		if path, _ := cfg.Content.Filesystem["path"].(string); path == "" {
			return fmt.Errorf("content.filesystem.path is required when content.type is filesystem")
		}
	}

	return nil
}

// formatValidationError converts validator errors into readable messages
// keyed by the configuration path.
func formatValidationError(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	var msgs []string
	for _, fieldErr := range validationErrors {
		// Namespace looks like "Config.Shell.BaseURL"; drop the root and
		// lowercase for the config-file spelling.
		path := strings.ToLower(strings.TrimPrefix(fieldErr.Namespace(), "Config."))
		msgs = append(msgs, fmt.Sprintf("%s: failed %q validation", path, fieldErr.Tag()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}
