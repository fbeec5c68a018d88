// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
}

func TestLoadFromPathMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.Completion.URL != Default().Completion.URL {
		t.Errorf("expected default completion URL, got %q", cfg.Completion.URL)
	}
	if cfg.UI.Theme != "system" {
		t.Errorf("expected default theme system, got %q", cfg.UI.Theme)
	}
}

func TestLoadFromPathReadsTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[completion]
url = "http://models.example.com"
requests_per_minute = 10

[sync]
url = "http://sync.example.com"

[ui]
theme = "dark"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.Completion.URL != "http://models.example.com" {
		t.Errorf("completion URL = %q", cfg.Completion.URL)
	}
	if cfg.Completion.RequestsPerMinute != 10 {
		t.Errorf("requests_per_minute = %d", cfg.Completion.RequestsPerMinute)
	}
	if cfg.Sync.URL != "http://sync.example.com" {
		t.Errorf("sync URL = %q", cfg.Sync.URL)
	}
	if cfg.UI.Theme != "dark" {
		t.Errorf("theme = %q", cfg.UI.Theme)
	}
}

func TestLoadFromPathRejectsMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("completion = {"), 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := LoadFromPath(path); err == nil {
		t.Error("expected error loading malformed TOML")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CONVERSE_CHAT_URL", "http://env.example.com")
	t.Setenv("CONVERSE_THEME", "light")
	t.Setenv("CONVERSE_NO_ARCHIVE", "1")

	cfg, err := LoadFromPath("")
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.Completion.URL != "http://env.example.com" {
		t.Errorf("completion URL = %q", cfg.Completion.URL)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("theme = %q", cfg.UI.Theme)
	}
	if cfg.Storage.ArchiveEnabled {
		t.Error("CONVERSE_NO_ARCHIVE=1 should disable the archive")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := Default()
	cfg.UI.Theme = "neon"
	cfg.Completion.RequestsPerMinute = 10000

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	if !strings.Contains(err.Error(), "ui.theme") {
		t.Errorf("missing ui.theme error in %q", err.Error())
	}
	if !strings.Contains(err.Error(), "requests_per_minute") {
		t.Errorf("missing rate error in %q", err.Error())
	}
}

func TestValidateRejectsBadURL(t *testing.T) {
	cfg := Default()
	cfg.Completion.URL = "not a url"

	if err := cfg.Validate(); err == nil {
		t.Error("expected error for invalid completion URL")
	}
}
