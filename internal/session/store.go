// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session owns the active conversation state.
package session

import (
	"log"
	"sync"

	"github.com/jeranaias/converse-tui/internal/model"
)

// =============================================================================
// COLLABORATOR INTERFACES
// =============================================================================

// Persister is the local mirror the store writes through. Implemented by
// storage.LocalStore; tests substitute fakes.
type Persister interface {
	SaveMessages(msgs []model.Message) error
	Clear() error
	SaveTemporaryFlag(flag bool) error
}

// Change describes a committed mutation, delivered to the change listener
// outside the store lock.
type Change struct {
	// Revision is the content revision after the mutation. Adopting a
	// remote identifier does not produce a Change.
	Revision uint64

	// Temporary is the session mode at commit time.
	Temporary bool

	// Conversation is a deep copy safe to hand to the sync client.
	Conversation *model.Conversation
}

// =============================================================================
// SESSION STORE
// =============================================================================

// Store is the single source of truth for the active conversation and its
// UI flags. All methods are safe for concurrent use; persistence and change
// notification happen outside the lock.
type Store struct {
	mu sync.Mutex

	conv      *model.Conversation
	temporary bool
	loading   bool
	lastErr   string

	// editing is the index of the message in edit mode, or -1.
	editing int

	// revision counts content and mode mutations. generation counts
	// sessions; an in-flight completion tagged with an old generation is
	// discarded on arrival.
	revision   uint64
	generation uint64

	persist  Persister
	onChange func(Change)
}

// Option configures a Store.
type Option func(*Store)

// WithPersister sets the local persistence gateway.
func WithPersister(p Persister) Option {
	return func(s *Store) { s.persist = p }
}

// WithChangeListener sets the function invoked after each committed content
// or mode mutation. Used by the sync client to mark the conversation dirty.
func WithChangeListener(fn func(Change)) Option {
	return func(s *Store) { s.onChange = fn }
}

// NewStore creates a session store with an empty conversation.
func NewStore(opts ...Option) *Store {
	s := &Store{
		conv:    model.NewConversation(),
		editing: -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// =============================================================================
// MUTATIONS
// =============================================================================

// AppendUser appends a user message. Blank text is a validation failure:
// no state change, no persistence, no notification. A pending edit is
// cancelled by submitting a new message.
func (s *Store) AppendUser(text string) error {
	s.mu.Lock()
	if err := s.conv.Append(model.NewUserMessage(text)); err != nil {
		s.mu.Unlock()
		return err
	}
	s.editing = -1
	change := s.commitLocked()
	s.mu.Unlock()

	s.flush(change)
	return nil
}

// AppendBot appends a completion reply.
func (s *Store) AppendBot(text string) {
	s.mu.Lock()
	s.conv.Append(model.NewBotMessage(text))
	change := s.commitLocked()
	s.mu.Unlock()

	s.flush(change)
}

// AppendError appends an inline error message to the transcript. Errors are
// part of the message log and persist like any other entry.
func (s *Store) AppendError(text string) {
	s.mu.Lock()
	s.conv.Append(model.NewErrorMessage(text))
	change := s.commitLocked()
	s.mu.Unlock()

	s.flush(change)
}

// ReplaceMessageText replaces the text of the message at index. The caller
// must treat a returned error as a validation failure: nothing changed.
func (s *Store) ReplaceMessageText(index int, text string) error {
	s.mu.Lock()
	if err := s.conv.ReplaceText(index, text); err != nil {
		s.mu.Unlock()
		return err
	}
	change := s.commitLocked()
	s.mu.Unlock()

	s.flush(change)
	return nil
}

// StartNew clears the conversation and begins a fresh session in the given
// mode. Entering non-temporary mode deletes any previously stored snapshot,
// so a prior temporary session leaves nothing behind.
func (s *Store) StartNew(temporary bool) {
	s.mu.Lock()
	s.conv = model.NewConversation()
	s.temporary = temporary
	s.loading = false
	s.lastErr = ""
	s.editing = -1
	s.generation++
	s.revision++
	rev := s.revision
	s.mu.Unlock()

	if s.persist != nil {
		if !temporary {
			if err := s.persist.Clear(); err != nil {
				log.Printf("session: clearing stored snapshot: %v", err)
			}
		}
		if err := s.persist.SaveTemporaryFlag(temporary); err != nil {
			log.Printf("session: saving mode flag: %v", err)
		}
	}

	if s.onChange != nil {
		s.onChange(Change{Revision: rev, Temporary: temporary, Conversation: model.NewConversation()})
	}
}

// Restore seeds the conversation from a previously stored snapshot. It does
// not write back or notify; it only runs during startup, before any
// listener is interested.
func (s *Store) Restore(msgs []model.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, msg := range msgs {
		s.conv.Append(msg)
	}
}

// AdoptRemoteID records the identifier assigned by the account backend.
// This is identity backfill, not a content change: the revision does not
// move and no save is scheduled, which is what stops a completed save from
// re-triggering itself.
func (s *Store) AdoptRemoteID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id != "" {
		s.conv.RemoteID = id
	}
}

// commitLocked bumps the revision and snapshots state for the out-of-lock
// side effects. Caller holds the lock.
func (s *Store) commitLocked() Change {
	s.revision++
	return Change{
		Revision:     s.revision,
		Temporary:    s.temporary,
		Conversation: s.conv.Clone(),
	}
}

// flush runs the persistence write and change notification outside the
// lock. The temporary-mode guard lives here: the gateway is never asked to
// save a temporary transcript.
func (s *Store) flush(change Change) {
	if s.persist != nil && !change.Temporary {
		if err := s.persist.SaveMessages(change.Conversation.Messages); err != nil {
			log.Printf("session: persisting transcript: %v", err)
		}
	}
	if s.onChange != nil {
		s.onChange(change)
	}
}

// =============================================================================
// FLAGS
// =============================================================================

// SetLoading marks a completion turn as in flight. The UI disables submit
// while loading, which serializes chat turns.
func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
}

// IsLoading reports whether a completion turn is in flight.
func (s *Store) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// SetError records a user-visible error string.
func (s *Store) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = msg
}

// LastError returns the recorded error string, empty when none.
func (s *Store) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// IsTemporary reports the session mode.
func (s *Store) IsTemporary() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.temporary
}

// =============================================================================
// READ ACCESS
// =============================================================================

// Messages returns a copy of the transcript.
func (s *Store) Messages() []model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Message, len(s.conv.Messages))
	copy(out, s.conv.Messages)
	return out
}

// Conversation returns a deep copy of the active conversation.
func (s *Store) Conversation() *model.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conv.Clone()
}

// RemoteID returns the backend-assigned conversation identifier, empty
// before the first successful save.
func (s *Store) RemoteID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conv.RemoteID
}

// LastUserIndex returns the index of the most recent user message, or -1
// when the transcript has none.
func (s *Store) LastUserIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conv.LastUserIndex()
}

// MessageCount returns the transcript length.
func (s *Store) MessageCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conv.Messages)
}

// Generation identifies the current session. Completion responses carry the
// generation of the session that issued them; a mismatch means the session
// was cleared while the request was in flight and the reply must be dropped.
func (s *Store) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// Revision returns the current content revision.
func (s *Store) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}
