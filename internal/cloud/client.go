// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cloud

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/converse-tui/internal/auth"
	"github.com/jeranaias/converse-tui/internal/model"
	"github.com/jeranaias/converse-tui/internal/session"
)

// Configuration constants for the sync backend.
const (
	// DefaultTimeout is the default timeout for sync requests.
	DefaultTimeout = 15 * time.Second

	// MaxResponseSize is the maximum allowed response body size.
	// SECURITY: Response size limit prevents memory exhaustion.
	MaxResponseSize = 1 * 1024 * 1024 // 1MB limit
)

// PERFORMANCE: Connection pooling reduces TCP handshake overhead.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	},
	Timeout: DefaultTimeout,
}

// Error variables for common sync failures.
var (
	// ErrNotConfigured indicates the backend URL is not set.
	ErrNotConfigured = errors.New("sync backend not configured")

	// ErrNoSession indicates sync was attempted without a signed-in user.
	ErrNoSession = errors.New("no signed-in session")

	// ErrServerError indicates a non-2xx response from the backend.
	ErrServerError = errors.New("sync server error")

	// ErrBadResponse indicates an unparseable reply from the backend.
	ErrBadResponse = errors.New("malformed sync response")
)

// =============================================================================
// STATES
// =============================================================================

// ProfileState describes where profile sync stands for this sign-in.
type ProfileState int

const (
	ProfileAnonymous ProfileState = iota
	ProfileSyncing
	ProfileSynced
)

// String returns a short label for status displays.
func (s ProfileState) String() string {
	switch s {
	case ProfileSyncing:
		return "syncing"
	case ProfileSynced:
		return "synced"
	default:
		return "anonymous"
	}
}

// ConvoState describes where conversation sync stands.
type ConvoState int

const (
	ConvoIdle ConvoState = iota
	ConvoDirty
	ConvoSaving
	ConvoSaved
)

// String returns a short label for status displays.
func (s ConvoState) String() string {
	switch s {
	case ConvoDirty:
		return "unsaved"
	case ConvoSaving:
		return "saving"
	case ConvoSaved:
		return "saved"
	default:
		return "idle"
	}
}

// =============================================================================
// WIRE TYPES
// =============================================================================

// saveUserRequest is the body of POST /api/save-user.
type saveUserRequest struct {
	ClerkID string `json:"clerkid"`
	Name    string `json:"name"`
	Email   string `json:"email"`
}

// saveConvoRequest is the body of POST /api/save-convo.
type saveConvoRequest struct {
	ConversationID string          `json:"conversationId"`
	UserID         string          `json:"userId"`
	Title          string          `json:"title"`
	Messages       []model.Message `json:"messages"`
}

// saveConvoResponse is the reply from POST /api/save-convo.
type saveConvoResponse struct {
	ConversationID string `json:"conversationId"`
}

// =============================================================================
// SYNC CLIENT
// =============================================================================

// SyncClient pushes the user profile and conversation transcript to the
// backend.
type SyncClient struct {
	baseURL    string
	httpClient *http.Client
	auth       *auth.Manager
	store      *session.Store

	mu           sync.Mutex
	profileState ProfileState
	convoState   ConvoState

	// savedRev is the highest store revision successfully pushed. Changes
	// at or below it are stale and skipped.
	savedRev uint64

	// provisionalID is the client-minted conversation id used until the
	// server assigns one. Minted once per conversation (keyed by the store
	// generation) so overlapping pushes upsert the same remote record.
	provisionalID  string
	provisionalGen uint64
}

// Option customizes a SyncClient.
type Option func(*SyncClient)

// WithHTTPClient overrides the HTTP client (used in tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *SyncClient) { c.httpClient = hc }
}

// NewSyncClient creates a sync client for the given backend URL.
func NewSyncClient(baseURL string, authMgr *auth.Manager, store *session.Store, opts ...Option) *SyncClient {
	c := &SyncClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: sharedHTTPClient,
		auth:       authMgr,
		store:      store,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ProfileState returns the current profile sync state.
func (c *SyncClient) ProfileState() ProfileState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.profileState
}

// ConvoState returns the current conversation sync state.
func (c *SyncClient) ConvoState() ConvoState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.convoState
}

// Reset clears sync state after a sign-out. The next sign-in pushes the
// profile again.
func (c *SyncClient) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.profileState = ProfileAnonymous
	c.convoState = ConvoIdle
	c.savedRev = 0
	c.provisionalID = ""
}

// =============================================================================
// PROFILE SYNC
// =============================================================================

// SyncProfile pushes the signed-in user's identity to the backend. It is
// idempotent per sign-in: once the profile is synced, later calls are
// no-ops until Reset.
func (c *SyncClient) SyncProfile(ctx context.Context) error {
	if c.baseURL == "" {
		return ErrNotConfigured
	}

	sess, err := c.auth.Current()
	if err != nil {
		return ErrNoSession
	}

	c.mu.Lock()
	if c.profileState == ProfileSynced {
		c.mu.Unlock()
		return nil
	}
	c.profileState = ProfileSyncing
	c.mu.Unlock()

	body := saveUserRequest{
		ClerkID: sess.UserID,
		Name:    sess.Name,
		Email:   sess.Email,
	}

	if _, err := c.post(ctx, "/api/save-user", sess.Token, body); err != nil {
		c.mu.Lock()
		c.profileState = ProfileAnonymous
		c.mu.Unlock()
		log.Printf("[sync] profile push failed: %v", err)
		return err
	}

	c.mu.Lock()
	c.profileState = ProfileSynced
	c.mu.Unlock()
	return nil
}

// =============================================================================
// CONVERSATION SYNC
// =============================================================================

// HandleChange records that the transcript has drifted from the last
// successful push. Temporary-chat changes never dirty the sync state.
func (c *SyncClient) HandleChange(change session.Change) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if change.Temporary {
		c.convoState = ConvoIdle
		return
	}
	if change.Revision <= c.savedRev {
		return
	}
	c.convoState = ConvoDirty
}

// Push sends the conversation snapshot carried by change to the backend.
// Stale changes (already pushed, or superseded by a newer push) are
// skipped. The server's conversation id is adopted into the session store
// so every later push reuses it.
func (c *SyncClient) Push(ctx context.Context, change session.Change) error {
	if c.baseURL == "" {
		return ErrNotConfigured
	}
	if change.Temporary || change.Conversation == nil || change.Conversation.IsEmpty() {
		return nil
	}

	sess, err := c.auth.Current()
	if err != nil {
		return ErrNoSession
	}

	c.mu.Lock()
	if change.Revision <= c.savedRev {
		c.mu.Unlock()
		return nil
	}
	c.convoState = ConvoSaving
	c.mu.Unlock()

	conv := change.Conversation
	gen := c.store.Generation()
	id := c.store.RemoteID()
	if id == "" {
		// Provisional id for a conversation the server has never seen.
		// Reused by every push of this conversation so overlapping pushes
		// can never create duplicate remote records.
		c.mu.Lock()
		if c.provisionalID == "" || c.provisionalGen != gen {
			c.provisionalID = uuid.NewString()
			c.provisionalGen = gen
		}
		id = c.provisionalID
		c.mu.Unlock()
	}

	body := saveConvoRequest{
		ConversationID: id,
		UserID:         sess.UserID,
		Title:          conv.GetTitle(),
		Messages:       conv.Messages,
	}

	data, err := c.post(ctx, "/api/save-convo", sess.Token, body)
	if err != nil {
		c.mu.Lock()
		c.convoState = ConvoDirty
		c.mu.Unlock()
		log.Printf("[sync] conversation push failed: %v", err)
		return err
	}

	var reply saveConvoResponse
	if err := json.Unmarshal(data, &reply); err != nil {
		c.mu.Lock()
		c.convoState = ConvoDirty
		c.mu.Unlock()
		return fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	// A new chat may have started while this push was in flight; never
	// adopt an id that belongs to a previous conversation.
	if reply.ConversationID != "" && c.store.Generation() == gen {
		c.store.AdoptRemoteID(reply.ConversationID)
	}

	c.mu.Lock()
	if change.Revision > c.savedRev {
		c.savedRev = change.Revision
	}
	// A newer local change may have arrived while this push was in
	// flight; only settle if this push covered the latest revision.
	if c.store.Revision() == change.Revision {
		c.convoState = ConvoSaved
	}
	c.mu.Unlock()

	return nil
}

// =============================================================================
// HTTP PLUMBING
// =============================================================================

// post sends an authenticated JSON POST and returns the raw response body.
func (c *SyncClient) post(ctx context.Context, path, token string, body any) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sync request failed: %w", err)
	}
	defer resp.Body.Close()

	// SECURITY: Never log bodies or tokens.
	log.Printf("[sync] POST %s status=%d elapsed=%s",
		path, resp.StatusCode, time.Since(start).Round(time.Millisecond))

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("reading sync response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", ErrServerError, resp.StatusCode)
	}

	return data, nil
}
