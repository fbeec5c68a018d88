// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/jeranaias/converse-tui/internal/model"
	"github.com/jeranaias/converse-tui/internal/util"
)

// =============================================================================
// FILE NAMES
// =============================================================================

const (
	transcriptFile = "transcript.json"
	themeFile      = "theme"
	temporaryFile  = "temporary"
)

// Theme setting values accepted by LoadThemeSetting. Anything else stored on
// disk falls back to the default.
const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

// =============================================================================
// LOCAL STORE
// =============================================================================

// LocalStore persists the active transcript and UI preferences as files
// under a base directory.
type LocalStore struct {
	// BaseDir is the directory holding the snapshot files
	// Default: ~/.converse/
	BaseDir string
}

// NewLocalStore creates a store rooted at ~/.converse/.
func NewLocalStore() (*LocalStore, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	return NewLocalStoreWithDir(filepath.Join(homeDir, ".converse"))
}

// NewLocalStoreWithDir creates a store rooted at a custom directory.
func NewLocalStoreWithDir(baseDir string) (*LocalStore, error) {
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, err
	}

	return &LocalStore{BaseDir: baseDir}, nil
}

// =============================================================================
// TRANSCRIPT SNAPSHOT
// =============================================================================

// SaveMessages writes the current transcript snapshot atomically.
func (s *LocalStore) SaveMessages(messages []model.Message) error {
	data, err := json.MarshalIndent(messages, "", "  ")
	if err != nil {
		return err
	}

	return util.AtomicWriteFile(filepath.Join(s.BaseDir, transcriptFile), data, 0600)
}

// LoadMessages reads the stored transcript. A missing or malformed file
// yields an empty transcript, never an error: a damaged snapshot should
// not block startup.
func (s *LocalStore) LoadMessages() ([]model.Message, error) {
	data, err := os.ReadFile(filepath.Join(s.BaseDir, transcriptFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var messages []model.Message
	if err := json.Unmarshal(data, &messages); err != nil {
		// Corrupt snapshot: treat as absent.
		return nil, nil
	}

	return messages, nil
}

// Clear removes the stored transcript snapshot.
func (s *LocalStore) Clear() error {
	err := os.Remove(filepath.Join(s.BaseDir, transcriptFile))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// =============================================================================
// THEME SETTING
// =============================================================================

// SaveThemeSetting persists the theme preference ("light", "dark" or
// "system").
func (s *LocalStore) SaveThemeSetting(setting string) error {
	return util.AtomicWriteFile(filepath.Join(s.BaseDir, themeFile), []byte(setting), 0600)
}

// HasThemeSetting reports whether a theme preference was ever stored.
func (s *LocalStore) HasThemeSetting() bool {
	_, err := os.Stat(filepath.Join(s.BaseDir, themeFile))
	return err == nil
}

// LoadThemeSetting reads the stored theme preference. Missing or
// unrecognized values fall back to "system".
func (s *LocalStore) LoadThemeSetting() string {
	data, err := os.ReadFile(filepath.Join(s.BaseDir, themeFile))
	if err != nil {
		return ThemeSystem
	}

	switch setting := strings.TrimSpace(string(data)); setting {
	case ThemeLight, ThemeDark, ThemeSystem:
		return setting
	default:
		return ThemeSystem
	}
}

// =============================================================================
// TEMPORARY FLAG
// =============================================================================

// SaveTemporaryFlag persists whether the user was last in a temporary chat.
func (s *LocalStore) SaveTemporaryFlag(temporary bool) error {
	value := "false"
	if temporary {
		value = "true"
	}
	return util.AtomicWriteFile(filepath.Join(s.BaseDir, temporaryFile), []byte(value), 0600)
}

// LoadTemporaryFlag reads the stored temporary-chat flag. Missing or
// malformed data reads as false.
func (s *LocalStore) LoadTemporaryFlag() bool {
	data, err := os.ReadFile(filepath.Join(s.BaseDir, temporaryFile))
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(data)) == "true"
}
