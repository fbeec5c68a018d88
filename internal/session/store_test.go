// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"errors"
	"testing"

	"github.com/jeranaias/converse-tui/internal/model"
)

// fakePersister records gateway calls for assertions.
type fakePersister struct {
	saved     [][]model.Message
	clears    int
	flagCalls []bool
}

func (f *fakePersister) SaveMessages(msgs []model.Message) error {
	cp := make([]model.Message, len(msgs))
	copy(cp, msgs)
	f.saved = append(f.saved, cp)
	return nil
}

func (f *fakePersister) Clear() error {
	f.clears++
	return nil
}

func (f *fakePersister) SaveTemporaryFlag(flag bool) error {
	f.flagCalls = append(f.flagCalls, flag)
	return nil
}

// =============================================================================
// APPEND TESTS
// =============================================================================

func TestStore_AppendUser(t *testing.T) {
	p := &fakePersister{}
	s := NewStore(WithPersister(p))

	if err := s.AppendUser("Hello"); err != nil {
		t.Fatalf("AppendUser failed: %v", err)
	}
	if s.MessageCount() != 1 {
		t.Errorf("MessageCount = %d, want 1", s.MessageCount())
	}
	if len(p.saved) != 1 {
		t.Fatalf("persist writes = %d, want 1", len(p.saved))
	}
	if p.saved[0][0].Text != "Hello" || p.saved[0][0].Sender != model.SenderUser {
		t.Errorf("persisted message = %+v", p.saved[0][0])
	}
}

func TestStore_AppendUserRejectsBlank(t *testing.T) {
	p := &fakePersister{}
	s := NewStore(WithPersister(p))

	err := s.AppendUser("   ")
	if !errors.Is(err, model.ErrEmptyText) {
		t.Errorf("AppendUser blank = %v, want ErrEmptyText", err)
	}
	if s.MessageCount() != 0 {
		t.Error("rejected append changed state")
	}
	if len(p.saved) != 0 {
		t.Error("rejected append reached the persistence gateway")
	}
}

func TestStore_LastUserIndex(t *testing.T) {
	s := NewStore()

	if got := s.LastUserIndex(); got != -1 {
		t.Errorf("LastUserIndex on empty store = %d, want -1", got)
	}

	s.AppendUser("first")
	s.AppendBot("reply")
	s.AppendUser("second")
	s.AppendBot("another reply")

	if got := s.LastUserIndex(); got != 2 {
		t.Errorf("LastUserIndex = %d, want 2", got)
	}
}

// =============================================================================
// TEMPORARY-MODE INVARIANT
// =============================================================================

func TestStore_TemporaryNeverPersists(t *testing.T) {
	p := &fakePersister{}
	s := NewStore(WithPersister(p))
	s.StartNew(true)

	s.AppendUser("secret question")
	s.AppendBot("secret answer")
	s.ReplaceMessageText(0, "edited secret")

	if len(p.saved) != 0 {
		t.Fatalf("temporary session wrote %d snapshots, want 0", len(p.saved))
	}
}

func TestStore_LeavingTemporaryClearsSnapshot(t *testing.T) {
	p := &fakePersister{}
	s := NewStore(WithPersister(p))

	s.StartNew(true)
	s.AppendUser("hello")
	s.AppendBot("hi")

	s.StartNew(false)
	if p.clears == 0 {
		t.Error("entering non-temporary mode should clear the stored snapshot")
	}
	if s.IsTemporary() {
		t.Error("mode should be non-temporary")
	}
	if s.MessageCount() != 0 {
		t.Error("StartNew should clear the transcript")
	}
	if len(p.flagCalls) == 0 || p.flagCalls[len(p.flagCalls)-1] != false {
		t.Error("mode flag should be persisted as false")
	}
}

// =============================================================================
// CHANGE NOTIFICATION
// =============================================================================

func TestStore_ChangeListener(t *testing.T) {
	var changes []Change
	s := NewStore(WithChangeListener(func(c Change) { changes = append(changes, c) }))

	s.AppendUser("one")
	s.AppendBot("two")

	if len(changes) != 2 {
		t.Fatalf("changes = %d, want 2", len(changes))
	}
	if changes[1].Revision <= changes[0].Revision {
		t.Error("revisions should be monotonic")
	}
	if changes[1].Conversation.MessageCount() != 2 {
		t.Errorf("snapshot has %d messages, want 2", changes[1].Conversation.MessageCount())
	}
}

func TestStore_AdoptRemoteIDIsNotAChange(t *testing.T) {
	var changes int
	s := NewStore(WithChangeListener(func(Change) { changes++ }))

	s.AppendUser("hello")
	before := s.Revision()

	s.AdoptRemoteID("mongo-1")
	if s.Revision() != before {
		t.Error("identity backfill moved the revision")
	}
	if changes != 1 {
		t.Errorf("identity backfill notified listeners: %d changes", changes)
	}
	if s.RemoteID() != "mongo-1" {
		t.Errorf("RemoteID = %q", s.RemoteID())
	}
}

func TestStore_GenerationBumpsOnStartNew(t *testing.T) {
	s := NewStore()
	g := s.Generation()
	s.AppendUser("hello")
	if s.Generation() != g {
		t.Error("append should not change the generation")
	}
	s.StartNew(false)
	if s.Generation() == g {
		t.Error("StartNew should change the generation")
	}
}

// =============================================================================
// FLAGS
// =============================================================================

func TestStore_Flags(t *testing.T) {
	s := NewStore()

	s.SetLoading(true)
	if !s.IsLoading() {
		t.Error("IsLoading should be true")
	}
	s.SetLoading(false)

	s.SetError("network down")
	if s.LastError() != "network down" {
		t.Errorf("LastError = %q", s.LastError())
	}
	s.StartNew(false)
	if s.LastError() != "" {
		t.Error("StartNew should clear the error")
	}
}

func TestStore_Restore(t *testing.T) {
	var changes int
	p := &fakePersister{}
	s := NewStore(WithPersister(p), WithChangeListener(func(Change) { changes++ }))

	s.Restore([]model.Message{
		model.NewUserMessage("Hello"),
		model.NewBotMessage("Hi"),
	})
	if s.MessageCount() != 2 {
		t.Errorf("MessageCount = %d, want 2", s.MessageCount())
	}
	if len(p.saved) != 0 || changes != 0 {
		t.Error("Restore must not write back or notify")
	}
}
