// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"errors"
	"strings"
	"time"
)

// TitleLen is the maximum rune length of an auto-generated title.
const TitleLen = 50

// Error variables for conversation mutations.
var (
	// ErrIndexOutOfRange indicates a message index that does not exist.
	ErrIndexOutOfRange = errors.New("message index out of range")

	// ErrEmptyText indicates text that trims to nothing. The conversation
	// is left unchanged.
	ErrEmptyText = errors.New("message text is empty")
)

// =============================================================================
// CONVERSATION
// =============================================================================

// Conversation holds the ordered transcript plus identity metadata.
//
// RemoteID is empty until the first successful remote save. Once the backend
// assigns an identifier it is stable for the life of the session and every
// later save reuses it.
type Conversation struct {
	RemoteID  string    `json:"id,omitempty"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Messages []Message `json:"messages"`
}

// NewConversation creates an empty conversation.
func NewConversation() *Conversation {
	now := time.Now()
	return &Conversation{
		CreatedAt: now,
		UpdatedAt: now,
		Messages:  make([]Message, 0),
	}
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// Append adds a message to the end of the transcript. User messages with
// blank text are rejected; bot and error messages are appended as-is.
func (c *Conversation) Append(msg Message) error {
	if msg.Sender == SenderUser && msg.IsBlank() {
		return ErrEmptyText
	}
	c.Messages = append(c.Messages, msg)
	c.UpdatedAt = time.Now()
	c.updateTitle()
	return nil
}

// ReplaceText replaces the text of the message at index. The transcript is
// unchanged when the index is out of range or the new text trims to empty.
func (c *Conversation) ReplaceText(index int, text string) error {
	if index < 0 || index >= len(c.Messages) {
		return ErrIndexOutOfRange
	}
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}
	c.Messages[index].Text = text
	c.UpdatedAt = time.Now()
	return nil
}

// Message returns the message at index.
func (c *Conversation) Message(index int) (Message, error) {
	if index < 0 || index >= len(c.Messages) {
		return Message{}, ErrIndexOutOfRange
	}
	return c.Messages[index], nil
}

// LastUserIndex returns the index of the most recent user message, or -1.
func (c *Conversation) LastUserIndex() int {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if c.Messages[i].IsUser() {
			return i
		}
	}
	return -1
}

// MessageCount returns the number of messages.
func (c *Conversation) MessageCount() int {
	return len(c.Messages)
}

// IsEmpty returns true if there are no messages.
func (c *Conversation) IsEmpty() bool {
	return len(c.Messages) == 0
}

// Clear removes all messages and the remote identity. Used when starting a
// fresh session; the next remote save begins with a provisional id again.
func (c *Conversation) Clear() {
	c.Messages = make([]Message, 0)
	c.RemoteID = ""
	c.Title = ""
	c.UpdatedAt = time.Now()
}

// Clone creates a deep copy of the conversation.
func (c *Conversation) Clone() *Conversation {
	clone := &Conversation{
		RemoteID:  c.RemoteID,
		Title:     c.Title,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Messages:  make([]Message, len(c.Messages)),
	}
	copy(clone.Messages, c.Messages)
	return clone
}

// =============================================================================
// TITLE MANAGEMENT
// =============================================================================

// updateTitle derives the title from the first user message if not set.
func (c *Conversation) updateTitle() {
	if c.Title != "" {
		return
	}
	for _, msg := range c.Messages {
		if msg.IsUser() {
			c.Title = msg.Preview(TitleLen)
			return
		}
	}
}

// GetTitle returns the conversation title or a default.
func (c *Conversation) GetTitle() string {
	if c.Title != "" {
		return c.Title
	}
	return "Untitled Conversation"
}
