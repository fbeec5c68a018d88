// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"errors"
	"strings"
	"sync"
	"time"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrNotSignedIn indicates no active session.
	ErrNotSignedIn = errors.New("not signed in")

	// ErrInvalidSession indicates a session missing required fields.
	ErrInvalidSession = errors.New("invalid session")
)

// =============================================================================
// SESSION
// =============================================================================

// Session is an authenticated user session.
type Session struct {
	// Token is the bearer token presented to the sync backend.
	Token string

	// UserID is the identity provider's stable user id.
	UserID string

	// Name is the user's display name.
	Name string

	// Email is the user's primary email address.
	Email string

	// ExpiresAt is when the token stops being valid (zero = no expiry known).
	ExpiresAt time.Time
}

// Valid reports whether the session carries the required identity fields
// and has not expired.
func (s Session) Valid() bool {
	if strings.TrimSpace(s.Token) == "" || strings.TrimSpace(s.UserID) == "" {
		return false
	}
	if !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt) {
		return false
	}
	return true
}

// =============================================================================
// MANAGER
// =============================================================================

// Manager tracks the current session and the post-sign-in welcome flag.
type Manager struct {
	mu      sync.Mutex
	session Session
	active  bool

	// welcome is set on sign-in and consumed exactly once.
	welcome bool
}

// NewManager creates a signed-out Manager.
func NewManager() *Manager {
	return &Manager{}
}

// SignIn activates a session and arms the welcome flag.
func (m *Manager) SignIn(s Session) error {
	if !s.Valid() {
		return ErrInvalidSession
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.session = s
	m.active = true
	m.welcome = true
	return nil
}

// SignOut clears the session. Signing out also disarms any unconsumed
// welcome flag.
func (m *Manager) SignOut() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.session = Session{}
	m.active = false
	m.welcome = false
}

// Current returns the active session.
func (m *Manager) Current() (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.active || !m.session.Valid() {
		return Session{}, ErrNotSignedIn
	}
	return m.session, nil
}

// SignedIn reports whether a valid session is active.
func (m *Manager) SignedIn() bool {
	_, err := m.Current()
	return err == nil
}

// ConsumeWelcome returns true exactly once after each sign-in. The first
// caller gets the welcome; later callers do not.
func (m *Manager) ConsumeWelcome() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.welcome {
		return false
	}
	m.welcome = false
	return true
}
