// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/converse-tui/internal/model"
)

// =============================================================================
// SCHEMA
// =============================================================================

const archiveSchema = `
CREATE TABLE IF NOT EXISTS conversations (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	messages   TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_conversations_updated
	ON conversations(updated_at DESC);
`

// =============================================================================
// ARCHIVE STORE
// =============================================================================

// ArchiveMeta contains metadata for listing archived conversations.
type ArchiveMeta struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	MessageCount int       `json:"message_count"`
}

// ArchiveStore keeps finished conversations in a SQLite database for
// later browsing.
type ArchiveStore struct {
	db *sql.DB
}

// OpenArchive opens (creating if needed) the archive database at path.
func OpenArchive(path string) (*ArchiveStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}

	// Single writer; the TUI never needs concurrent archive access.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}

	if _, err := db.Exec(archiveSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}

	return &ArchiveStore{db: db}, nil
}

// Close releases the underlying database handle.
func (a *ArchiveStore) Close() error {
	return a.db.Close()
}

// =============================================================================
// SAVE / LOAD
// =============================================================================

// Save upserts a conversation into the archive and returns the id it was
// stored under. Conversations that already carry an id keep it; otherwise
// a local id is generated.
func (a *ArchiveStore) Save(conv *model.Conversation) (string, error) {
	if conv == nil || conv.IsEmpty() {
		return "", fmt.Errorf("%w: empty conversation", ErrDatabaseError)
	}

	id := conv.RemoteID
	if id == "" {
		id = generateArchiveID()
	}

	payload, err := json.Marshal(conv.Messages)
	if err != nil {
		return "", err
	}

	createdAt := conv.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	updatedAt := conv.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	_, err = a.db.Exec(`
		INSERT INTO conversations (id, title, created_at, updated_at, messages)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title      = excluded.title,
			updated_at = excluded.updated_at,
			messages   = excluded.messages`,
		id, conv.GetTitle(),
		createdAt.Format(time.RFC3339), updatedAt.Format(time.RFC3339),
		string(payload))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}

	return id, nil
}

// Load retrieves an archived conversation by id.
func (a *ArchiveStore) Load(id string) (*model.Conversation, error) {
	var (
		title, createdAt, updatedAt, payload string
	)
	err := a.db.QueryRow(`
		SELECT title, created_at, updated_at, messages
		FROM conversations WHERE id = ?`, id).
		Scan(&title, &createdAt, &updatedAt, &payload)
	if err == sql.ErrNoRows {
		return nil, ErrConversationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}

	var messages []model.Message
	if err := json.Unmarshal([]byte(payload), &messages); err != nil {
		return nil, fmt.Errorf("%w: corrupt messages for %s", ErrDatabaseError, id)
	}

	conv := &model.Conversation{
		RemoteID: id,
		Title:    title,
		Messages: messages,
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		conv.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		conv.UpdatedAt = t
	}

	return conv, nil
}

// List returns metadata for all archived conversations, newest first.
func (a *ArchiveStore) List() ([]ArchiveMeta, error) {
	rows, err := a.db.Query(`
		SELECT id, title, created_at, updated_at, messages
		FROM conversations
		ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	var metas []ArchiveMeta
	for rows.Next() {
		var (
			meta                          ArchiveMeta
			createdAt, updatedAt, payload string
		)
		if err := rows.Scan(&meta.ID, &meta.Title, &createdAt, &updatedAt, &payload); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
		}
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			meta.CreatedAt = t
		}
		if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
			meta.UpdatedAt = t
		}
		var messages []model.Message
		if err := json.Unmarshal([]byte(payload), &messages); err == nil {
			meta.MessageCount = len(messages)
		}
		metas = append(metas, meta)
	}

	return metas, rows.Err()
}

// Delete removes an archived conversation.
func (a *ArchiveStore) Delete(id string) error {
	result, err := a.db.Exec("DELETE FROM conversations WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	if affected == 0 {
		return ErrConversationNotFound
	}

	return nil
}

// generateArchiveID creates a random local id for conversations that never
// received a server-assigned one.
func generateArchiveID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("conv_%d", time.Now().UnixNano())
	}
	return "conv_" + hex.EncodeToString(b)
}
