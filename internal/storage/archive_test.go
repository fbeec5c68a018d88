// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/jeranaias/converse-tui/internal/model"
)

func newTestArchive(t *testing.T) *ArchiveStore {
	t.Helper()
	archive, err := OpenArchive(filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatalf("OpenArchive: %v", err)
	}
	t.Cleanup(func() { archive.Close() })
	return archive
}

func testConversation(t *testing.T) *model.Conversation {
	t.Helper()
	conv := model.NewConversation()
	if err := conv.Append(model.NewUserMessage("what is the capital of France?")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := conv.Append(model.NewBotMessage("Paris.")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	return conv
}

func TestArchiveSaveAndLoad(t *testing.T) {
	archive := newTestArchive(t)

	conv := testConversation(t)
	id, err := archive.Save(conv)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if id == "" {
		t.Fatal("Save returned empty id")
	}

	loaded, err := archive.Load(id)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.MessageCount() != 2 {
		t.Errorf("expected 2 messages, got %d", loaded.MessageCount())
	}
	if loaded.Title != conv.GetTitle() {
		t.Errorf("title = %q, want %q", loaded.Title, conv.GetTitle())
	}
}

func TestArchiveKeepsRemoteID(t *testing.T) {
	archive := newTestArchive(t)

	conv := testConversation(t)
	conv.RemoteID = "srv-42"

	id, err := archive.Save(conv)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if id != "srv-42" {
		t.Errorf("archive id = %q, want the server-assigned %q", id, "srv-42")
	}
}

func TestArchiveSaveUpserts(t *testing.T) {
	archive := newTestArchive(t)

	conv := testConversation(t)
	conv.RemoteID = "srv-7"

	if _, err := archive.Save(conv); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	if err := conv.Append(model.NewUserMessage("and the population?")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if _, err := archive.Save(conv); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	metas, err := archive.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(metas) != 1 {
		t.Fatalf("expected 1 archived conversation, got %d", len(metas))
	}
	if metas[0].MessageCount != 3 {
		t.Errorf("message count = %d, want 3", metas[0].MessageCount)
	}
}

func TestArchiveRejectsEmpty(t *testing.T) {
	archive := newTestArchive(t)

	if _, err := archive.Save(model.NewConversation()); err == nil {
		t.Error("expected error saving an empty conversation")
	}
}

func TestArchiveLoadMissing(t *testing.T) {
	archive := newTestArchive(t)

	if _, err := archive.Load("nope"); !errors.Is(err, ErrConversationNotFound) {
		t.Errorf("expected ErrConversationNotFound, got %v", err)
	}
}

func TestArchiveDelete(t *testing.T) {
	archive := newTestArchive(t)

	id, err := archive.Save(testConversation(t))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := archive.Delete(id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := archive.Delete(id); !errors.Is(err, ErrConversationNotFound) {
		t.Errorf("expected ErrConversationNotFound on second delete, got %v", err)
	}
}
