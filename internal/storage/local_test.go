// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jeranaias/converse-tui/internal/model"
)

func newTestStore(t *testing.T) *LocalStore {
	t.Helper()
	store, err := NewLocalStoreWithDir(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStoreWithDir: %v", err)
	}
	return store
}

func TestSaveAndLoadMessages(t *testing.T) {
	store := newTestStore(t)

	messages := []model.Message{
		model.NewUserMessage("hello"),
		model.NewBotMessage("hi there"),
	}

	if err := store.SaveMessages(messages); err != nil {
		t.Fatalf("SaveMessages: %v", err)
	}

	loaded, err := store.LoadMessages()
	if err != nil {
		t.Fatalf("LoadMessages: %v", err)
	}

	if len(loaded) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(loaded))
	}
	if loaded[0].Sender != model.SenderUser || loaded[0].Text != "hello" {
		t.Errorf("unexpected first message: %+v", loaded[0])
	}
	if loaded[1].Sender != model.SenderBot || loaded[1].Text != "hi there" {
		t.Errorf("unexpected second message: %+v", loaded[1])
	}
}

func TestLoadMessagesMissingFile(t *testing.T) {
	store := newTestStore(t)

	loaded, err := store.LoadMessages()
	if err != nil {
		t.Fatalf("LoadMessages: %v", err)
	}
	if loaded != nil {
		t.Errorf("expected nil transcript, got %v", loaded)
	}
}

func TestLoadMessagesCorruptFile(t *testing.T) {
	store := newTestStore(t)

	path := filepath.Join(store.BaseDir, transcriptFile)
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	loaded, err := store.LoadMessages()
	if err != nil {
		t.Fatalf("LoadMessages should tolerate corrupt data: %v", err)
	}
	if loaded != nil {
		t.Errorf("corrupt transcript should read as absent, got %v", loaded)
	}
}

func TestLoadMessagesUnreadableFileSurfacesError(t *testing.T) {
	store := newTestStore(t)

	// A directory at the snapshot path fails the read with something other
	// than "not exist"; callers must see that, not an empty transcript.
	path := filepath.Join(store.BaseDir, transcriptFile)
	if err := os.Mkdir(path, 0700); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}

	if _, err := store.LoadMessages(); err == nil {
		t.Error("expected an error for an unreadable snapshot")
	}
}

func TestClearRemovesSnapshot(t *testing.T) {
	store := newTestStore(t)

	if err := store.SaveMessages([]model.Message{model.NewUserMessage("hi")}); err != nil {
		t.Fatalf("SaveMessages: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	loaded, err := store.LoadMessages()
	if err != nil {
		t.Fatalf("LoadMessages: %v", err)
	}
	if loaded != nil {
		t.Errorf("expected empty transcript after Clear, got %v", loaded)
	}

	// Clearing again should be a no-op.
	if err := store.Clear(); err != nil {
		t.Errorf("Clear on missing snapshot: %v", err)
	}
}

func TestThemeSettingRoundTrip(t *testing.T) {
	store := newTestStore(t)

	if got := store.LoadThemeSetting(); got != ThemeSystem {
		t.Errorf("default theme = %q, want %q", got, ThemeSystem)
	}

	if err := store.SaveThemeSetting(ThemeDark); err != nil {
		t.Fatalf("SaveThemeSetting: %v", err)
	}
	if got := store.LoadThemeSetting(); got != ThemeDark {
		t.Errorf("theme = %q, want %q", got, ThemeDark)
	}
}

func TestThemeSettingMalformedFallsBack(t *testing.T) {
	store := newTestStore(t)

	path := filepath.Join(store.BaseDir, themeFile)
	if err := os.WriteFile(path, []byte("neon"), 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if got := store.LoadThemeSetting(); got != ThemeSystem {
		t.Errorf("unrecognized theme = %q, want fallback %q", got, ThemeSystem)
	}
}

func TestTemporaryFlagRoundTrip(t *testing.T) {
	store := newTestStore(t)

	if store.LoadTemporaryFlag() {
		t.Error("temporary flag should default to false")
	}

	if err := store.SaveTemporaryFlag(true); err != nil {
		t.Fatalf("SaveTemporaryFlag: %v", err)
	}
	if !store.LoadTemporaryFlag() {
		t.Error("expected temporary flag true after save")
	}

	if err := store.SaveTemporaryFlag(false); err != nil {
		t.Fatalf("SaveTemporaryFlag: %v", err)
	}
	if store.LoadTemporaryFlag() {
		t.Error("expected temporary flag false after save")
	}
}

func TestTemporaryFlagMalformedReadsFalse(t *testing.T) {
	store := newTestStore(t)

	path := filepath.Join(store.BaseDir, temporaryFile)
	if err := os.WriteFile(path, []byte("yes please"), 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if store.LoadTemporaryFlag() {
		t.Error("malformed flag should read as false")
	}
}
