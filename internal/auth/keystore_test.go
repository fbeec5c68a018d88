// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeystoreRoundTrip(t *testing.T) {
	ks, err := NewKeystore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, ks.Store("bearer-xyz", "hunter2"))

	token, err := ks.Load("hunter2")
	require.NoError(t, err)
	assert.Equal(t, "bearer-xyz", token)
}

func TestKeystoreWrongPassphrase(t *testing.T) {
	ks, err := NewKeystore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, ks.Store("bearer-xyz", "hunter2"))

	_, err = ks.Load("hunter3")
	assert.ErrorIs(t, err, ErrDecryptFailed)
}

func TestKeystoreMissingFile(t *testing.T) {
	ks, err := NewKeystore(t.TempDir())
	require.NoError(t, err)

	_, err = ks.Load("hunter2")
	assert.ErrorIs(t, err, ErrNoCachedToken)
}

func TestKeystoreCorruptFile(t *testing.T) {
	ks, err := NewKeystore(t.TempDir())
	require.NoError(t, err)

	path := filepath.Join(ks.BaseDir, keystoreFile)
	require.NoError(t, os.WriteFile(path, []byte("not an envelope"), 0600))

	_, err = ks.Load("hunter2")
	assert.ErrorIs(t, err, ErrDecryptFailed)
}

func TestKeystoreClear(t *testing.T) {
	ks, err := NewKeystore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, ks.Store("bearer-xyz", "hunter2"))
	require.NoError(t, ks.Clear())

	_, err = ks.Load("hunter2")
	assert.ErrorIs(t, err, ErrNoCachedToken)

	// Clearing again is a no-op.
	require.NoError(t, ks.Clear())
}
