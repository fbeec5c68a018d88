// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"errors"
	"strings"
	"testing"
)

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestNewMessages(t *testing.T) {
	user := NewUserMessage("hello")
	if user.Sender != SenderUser || user.Text != "hello" {
		t.Errorf("NewUserMessage = %+v", user)
	}
	if user.Timestamp.IsZero() {
		t.Error("Timestamp should be set")
	}

	bot := NewBotMessage("hi")
	if bot.Sender != SenderBot {
		t.Errorf("NewBotMessage sender = %q", bot.Sender)
	}

	errMsg := NewErrorMessage("boom")
	if errMsg.Sender != SenderError {
		t.Errorf("NewErrorMessage sender = %q", errMsg.Sender)
	}
	if errMsg.IsUser() {
		t.Error("error message should not be user-originated")
	}
}

func TestSenderIsValid(t *testing.T) {
	for _, s := range []Sender{SenderUser, SenderBot, SenderError} {
		if !s.IsValid() {
			t.Errorf("%q should be valid", s)
		}
	}
	if Sender("assistant").IsValid() {
		t.Error("unknown sender should be invalid")
	}
}

func TestMessagePreview(t *testing.T) {
	msg := NewUserMessage("line one\nline two that is quite long indeed, yes it is")
	preview := msg.Preview(20)
	if strings.Contains(preview, "\n") {
		t.Error("preview should be single line")
	}
	if len([]rune(preview)) > 20 {
		t.Errorf("preview too long: %q", preview)
	}
	if !strings.HasSuffix(preview, "...") {
		t.Errorf("truncated preview should end with ellipsis: %q", preview)
	}
}

// =============================================================================
// CONVERSATION TESTS
// =============================================================================

func TestConversation_Append(t *testing.T) {
	conv := NewConversation()

	if err := conv.Append(NewUserMessage("hello")); err != nil {
		t.Fatalf("Append user failed: %v", err)
	}
	if err := conv.Append(NewBotMessage("hi")); err != nil {
		t.Fatalf("Append bot failed: %v", err)
	}
	if conv.MessageCount() != 2 {
		t.Errorf("MessageCount = %d, want 2", conv.MessageCount())
	}

	// Blank user text is a validation failure, not an append.
	err := conv.Append(NewUserMessage("   \n\t"))
	if !errors.Is(err, ErrEmptyText) {
		t.Errorf("Append blank user = %v, want ErrEmptyText", err)
	}
	if conv.MessageCount() != 2 {
		t.Errorf("rejected append changed length: %d", conv.MessageCount())
	}
}

func TestConversation_AppendLengthInvariant(t *testing.T) {
	conv := NewConversation()
	inputs := []string{"a", "", "b", "  ", "c"}
	accepted := 0
	for _, in := range inputs {
		if err := conv.Append(NewUserMessage(in)); err == nil {
			accepted++
		}
		if conv.MessageCount() != accepted {
			t.Fatalf("length %d after %d accepted appends", conv.MessageCount(), accepted)
		}
	}
	if accepted != 3 {
		t.Errorf("accepted = %d, want 3", accepted)
	}
}

func TestConversation_ReplaceText(t *testing.T) {
	conv := NewConversation()
	conv.Append(NewUserMessage("Hello"))

	if err := conv.ReplaceText(0, "Hello there"); err != nil {
		t.Fatalf("ReplaceText failed: %v", err)
	}
	if conv.Messages[0].Text != "Hello there" {
		t.Errorf("text = %q", conv.Messages[0].Text)
	}

	if err := conv.ReplaceText(5, "x"); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("out of range = %v, want ErrIndexOutOfRange", err)
	}
	if err := conv.ReplaceText(-1, "x"); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("negative index = %v, want ErrIndexOutOfRange", err)
	}

	// Empty replacement leaves the original intact.
	if err := conv.ReplaceText(0, "   "); !errors.Is(err, ErrEmptyText) {
		t.Errorf("empty replacement = %v, want ErrEmptyText", err)
	}
	if conv.Messages[0].Text != "Hello there" {
		t.Errorf("text changed by rejected edit: %q", conv.Messages[0].Text)
	}
}

func TestConversation_Title(t *testing.T) {
	conv := NewConversation()
	if conv.GetTitle() != "Untitled Conversation" {
		t.Errorf("default title = %q", conv.GetTitle())
	}

	conv.Append(NewBotMessage("welcome"))
	if conv.Title != "" {
		t.Error("bot message should not set title")
	}

	long := strings.Repeat("z", 80)
	conv.Append(NewUserMessage(long))
	if got := len([]rune(conv.Title)); got > TitleLen {
		t.Errorf("title length = %d, want <= %d", got, TitleLen)
	}

	// Title sticks to the first user message.
	conv.Append(NewUserMessage("second"))
	if !strings.HasPrefix(conv.Title, "zzz") {
		t.Errorf("title changed by later message: %q", conv.Title)
	}
}

func TestConversation_Clear(t *testing.T) {
	conv := NewConversation()
	conv.Append(NewUserMessage("hello"))
	conv.RemoteID = "mongo-id-1"

	conv.Clear()
	if !conv.IsEmpty() {
		t.Error("Clear should remove all messages")
	}
	if conv.RemoteID != "" {
		t.Error("Clear should drop the remote identity")
	}
	if conv.Title != "" {
		t.Error("Clear should reset the title")
	}
}

func TestConversation_LastUserIndex(t *testing.T) {
	conv := NewConversation()
	if conv.LastUserIndex() != -1 {
		t.Error("empty conversation should have no user index")
	}
	conv.Append(NewUserMessage("one"))
	conv.Append(NewBotMessage("two"))
	conv.Append(NewUserMessage("three"))
	conv.Append(NewErrorMessage("oops"))
	if got := conv.LastUserIndex(); got != 2 {
		t.Errorf("LastUserIndex = %d, want 2", got)
	}
}

func TestConversation_Clone(t *testing.T) {
	conv := NewConversation()
	conv.Append(NewUserMessage("hello"))
	clone := conv.Clone()

	clone.Messages[0].Text = "mutated"
	if conv.Messages[0].Text != "hello" {
		t.Error("Clone shares message storage with original")
	}
}
