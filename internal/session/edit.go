// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import "strings"

// =============================================================================
// EDIT-IN-PLACE
// =============================================================================

// BeginEdit puts the message at index into edit mode and returns the current
// text. Only user messages are editable; pointing at anything else clears
// whatever edit was active and reports false. At most one message is ever in
// edit mode, so beginning a new edit supersedes the previous one.
func (s *Store) BeginEdit(index int) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg, err := s.conv.Message(index)
	if err != nil || !msg.IsUser() {
		s.editing = -1
		return "", false
	}

	s.editing = index
	return msg.Text, true
}

// CommitEdit replaces the text of the message in edit mode and leaves edit
// mode. Text that trims to empty is rejected with no state change and the
// edit stays active so the user can fix it.
func (s *Store) CommitEdit(text string) error {
	s.mu.Lock()
	index := s.editing
	s.mu.Unlock()

	if index < 0 {
		return ErrNoActiveEdit
	}
	if strings.TrimSpace(text) == "" {
		return ErrEmptyEdit
	}

	if err := s.ReplaceMessageText(index, text); err != nil {
		return err
	}

	s.mu.Lock()
	// Only clear if nothing superseded the edit while unlocked.
	if s.editing == index {
		s.editing = -1
	}
	s.mu.Unlock()
	return nil
}

// CancelEdit leaves edit mode without touching the transcript.
func (s *Store) CancelEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editing = -1
}

// EditingIndex returns the index in edit mode, if any.
func (s *Store) EditingIndex() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editing < 0 {
		return 0, false
	}
	return s.editing, true
}
