// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for
// converse-tui.
//
// Configuration is TOML with sensible defaults, environment variable
// overrides, and validation.
//
// Configuration file location (in order of precedence):
//   - ~/.converse/config.toml
//   - Built-in defaults
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/converse-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete converse-tui configuration.
type Config struct {
	// Completion backend configuration
	Completion CompletionConfig `toml:"completion"`

	// Sync backend configuration
	Sync SyncConfig `toml:"sync"`

	// UI configuration
	UI UIConfig `toml:"ui"`

	// Storage configuration
	Storage StorageConfig `toml:"storage"`
}

// CompletionConfig configures the chat model endpoint.
type CompletionConfig struct {
	// URL is the base URL of the completion backend (POST /chat).
	URL string `toml:"url"`

	// RequestsPerMinute bounds outgoing completion requests.
	RequestsPerMinute int `toml:"requests_per_minute"`
}

// SyncConfig configures the conversation sync backend.
type SyncConfig struct {
	// URL is the base URL of the sync backend (POST /api/save-user,
	// POST /api/save-convo). Empty disables sync.
	URL string `toml:"url"`
}

// UIConfig contains UI preferences.
type UIConfig struct {
	// Theme is the startup theme: "light", "dark" or "system".
	// The persisted theme setting takes precedence once one exists.
	Theme string `toml:"theme"`
}

// StorageConfig configures local persistence.
type StorageConfig struct {
	// Dir is the base directory for snapshots and the archive.
	// Default: ~/.converse
	Dir string `toml:"dir"`

	// ArchiveEnabled turns the SQLite conversation archive on.
	ArchiveEnabled bool `toml:"archive_enabled"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the built-in default configuration.
func Default() *Config {
	return &Config{
		Completion: CompletionConfig{
			URL:               "http://localhost:8000",
			RequestsPerMinute: 30,
		},
		Sync: SyncConfig{
			URL: "",
		},
		UI: UIConfig{
			Theme: "system",
		},
		Storage: StorageConfig{
			Dir:            "",
			ArchiveEnabled: true,
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the converse configuration directory (~/.converse).
func ConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".converse"), nil
}

// ConfigPath returns the path to config.toml.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration, applies environment overrides, fills
// defaults and validates. A missing config file is not an error.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		path = ""
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from an explicit path. An empty or
// missing path yields defaults.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("failed to load config: %w", err)
			}
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to config.toml atomically.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	var buf strings.Builder
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return err
	}

	return util.AtomicWriteFile(path, []byte(buf.String()), 0600)
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies CONVERSE_* environment variables on top of
// whatever was loaded from disk.
func (c *Config) ApplyEnvOverrides() {
	// CONVERSE_CHAT_URL
	if u := os.Getenv("CONVERSE_CHAT_URL"); u != "" {
		c.Completion.URL = u
	}

	// CONVERSE_SYNC_URL
	if u := os.Getenv("CONVERSE_SYNC_URL"); u != "" {
		c.Sync.URL = u
	}

	// CONVERSE_THEME
	if theme := os.Getenv("CONVERSE_THEME"); theme != "" {
		c.UI.Theme = theme
	}

	// CONVERSE_DIR
	if dir := os.Getenv("CONVERSE_DIR"); dir != "" {
		c.Storage.Dir = dir
	}

	// CONVERSE_NO_ARCHIVE
	if noArchive := os.Getenv("CONVERSE_NO_ARCHIVE"); noArchive != "" {
		c.Storage.ArchiveEnabled = !(noArchive == "1" || strings.ToLower(noArchive) == "true")
	}
}

// SetDefaults fills any missing or zero-value fields from the defaults.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Completion.URL == "" {
		c.Completion.URL = defaults.Completion.URL
	}
	if c.Completion.RequestsPerMinute <= 0 {
		c.Completion.RequestsPerMinute = defaults.Completion.RequestsPerMinute
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError describes a single invalid field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if _, err := url.Parse(c.Completion.URL); err != nil || !strings.HasPrefix(c.Completion.URL, "http") {
		errs = append(errs, ValidationError{
			Field:   "completion.url",
			Message: fmt.Sprintf("invalid URL %q", c.Completion.URL),
		})
	}

	if c.Sync.URL != "" {
		if _, err := url.Parse(c.Sync.URL); err != nil || !strings.HasPrefix(c.Sync.URL, "http") {
			errs = append(errs, ValidationError{
				Field:   "sync.url",
				Message: fmt.Sprintf("invalid URL %q", c.Sync.URL),
			})
		}
	}

	if c.Completion.RequestsPerMinute < 1 || c.Completion.RequestsPerMinute > 600 {
		errs = append(errs, ValidationError{
			Field:   "completion.requests_per_minute",
			Message: fmt.Sprintf("must be 1-600, got %d", c.Completion.RequestsPerMinute),
		})
	}

	validThemes := map[string]bool{"light": true, "dark": true, "system": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme %q, must be one of: light, dark, system", c.UI.Theme),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
