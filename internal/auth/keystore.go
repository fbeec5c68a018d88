// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/crypto/pbkdf2"

	"github.com/jeranaias/converse-tui/internal/util"
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// keystoreFile is the cached-token file name under the base directory.
	keystoreFile = "token.enc"

	// nonceSize is the AES-GCM nonce size (12 bytes / 96 bits).
	nonceSize = 12

	// keySize is the AES-256 key size.
	keySize = 32

	// saltSize is the key-derivation salt size.
	saltSize = 32

	// pbkdf2Iterations follows OWASP guidance for PBKDF2-SHA-256.
	pbkdf2Iterations = 600000
)

var (
	// ErrNoCachedToken indicates no token file exists.
	ErrNoCachedToken = errors.New("no cached token")

	// ErrDecryptFailed indicates the cached token could not be decrypted,
	// usually because the passphrase changed or the file is damaged.
	ErrDecryptFailed = errors.New("token decryption failed")
)

// =============================================================================
// KEYSTORE
// =============================================================================

// envelope is the on-disk format of the encrypted token.
type envelope struct {
	Algorithm  string `json:"algorithm"` // "AES-256-GCM"
	Salt       string `json:"salt"`
	Nonce      string `json:"nonce"`
	Ciphertext string `json:"ciphertext"`
}

// Keystore caches the bearer token encrypted at rest.
type Keystore struct {
	// BaseDir is the directory holding token.enc.
	BaseDir string
}

// NewKeystore creates a keystore rooted at baseDir.
func NewKeystore(baseDir string) (*Keystore, error) {
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, err
	}
	return &Keystore{BaseDir: baseDir}, nil
}

// zeroBytes zeros key material after use.
// SECURITY: Prevents memory disclosure via crash dumps.
func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// deriveKey derives the AES key from the passphrase and salt.
func deriveKey(passphrase string, salt []byte) []byte {
	return pbkdf2.Key([]byte(passphrase), salt, pbkdf2Iterations, keySize, sha256.New)
}

// Store encrypts the token under the passphrase and writes it atomically.
func (k *Keystore) Store(token, passphrase string) error {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return err
	}

	key := deriveKey(passphrase, salt)
	defer zeroBytes(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return err
	}
	gcm, err := cipher.NewGCMWithNonceSize(block, nonceSize)
	if err != nil {
		return err
	}

	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return err
	}

	ciphertext := gcm.Seal(nil, nonce, []byte(token), nil)

	data, err := json.MarshalIndent(envelope{
		Algorithm:  "AES-256-GCM",
		Salt:       base64.StdEncoding.EncodeToString(salt),
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		Ciphertext: base64.StdEncoding.EncodeToString(ciphertext),
	}, "", "  ")
	if err != nil {
		return err
	}

	return util.AtomicWriteFile(filepath.Join(k.BaseDir, keystoreFile), data, 0600)
}

// Load decrypts and returns the cached token.
func (k *Keystore) Load(passphrase string) (string, error) {
	data, err := os.ReadFile(filepath.Join(k.BaseDir, keystoreFile))
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoCachedToken
		}
		return "", err
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecryptFailed, err)
	}

	salt, err := base64.StdEncoding.DecodeString(env.Salt)
	if err != nil {
		return "", fmt.Errorf("%w: bad salt", ErrDecryptFailed)
	}
	nonce, err := base64.StdEncoding.DecodeString(env.Nonce)
	if err != nil || len(nonce) != nonceSize {
		return "", fmt.Errorf("%w: bad nonce", ErrDecryptFailed)
	}
	ciphertext, err := base64.StdEncoding.DecodeString(env.Ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: bad ciphertext", ErrDecryptFailed)
	}

	key := deriveKey(passphrase, salt)
	defer zeroBytes(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCMWithNonceSize(block, nonceSize)
	if err != nil {
		return "", err
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", ErrDecryptFailed
	}

	return string(plaintext), nil
}

// Clear removes the cached token.
func (k *Keystore) Clear() error {
	err := os.Remove(filepath.Join(k.BaseDir, keystoreFile))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
