// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"strings"
	"time"

	"github.com/jeranaias/converse-tui/internal/util"
)

// =============================================================================
// SENDER
// =============================================================================

// Sender identifies who produced a message.
type Sender string

const (
	// SenderUser is a message typed by the user.
	SenderUser Sender = "user"

	// SenderBot is a reply from the completion backend.
	SenderBot Sender = "bot"

	// SenderError is an inline error surfaced in the transcript when a
	// completion request fails.
	SenderError Sender = "error"
)

// IsValid reports whether s is one of the known senders.
func (s Sender) IsValid() bool {
	switch s {
	case SenderUser, SenderBot, SenderError:
		return true
	}
	return false
}

// =============================================================================
// MESSAGE
// =============================================================================

// Message is a single transcript entry. The wire shape ({sender, text})
// matches what the account backend stores, so the same struct serializes for
// local snapshots and remote saves.
type Message struct {
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// NewUserMessage creates a user message.
func NewUserMessage(text string) Message {
	return Message{Sender: SenderUser, Text: text, Timestamp: time.Now()}
}

// NewBotMessage creates a bot message.
func NewBotMessage(text string) Message {
	return Message{Sender: SenderBot, Text: text, Timestamp: time.Now()}
}

// NewErrorMessage creates an error message.
func NewErrorMessage(text string) Message {
	return Message{Sender: SenderError, Text: text, Timestamp: time.Now()}
}

// IsUser reports whether the message was typed by the user. Only user
// messages are editable.
func (m Message) IsUser() bool {
	return m.Sender == SenderUser
}

// IsBlank reports whether the text trims to nothing.
func (m Message) IsBlank() bool {
	return strings.TrimSpace(m.Text) == ""
}

// Preview returns the first maxLen characters of the text, single-line.
func (m Message) Preview(maxLen int) string {
	return util.TruncateString(util.CollapseLine(m.Text), maxLen)
}
