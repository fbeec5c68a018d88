// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth manages the signed-in user session for converse-tui.
//
// A Session carries the bearer token and the user's identity as reported
// by the identity provider. The Manager tracks sign-in state and owns the
// one-shot welcome flag shown after a fresh sign-in. The keystore caches
// the bearer token on disk under AES-256-GCM with a PBKDF2-derived key so
// the user is not prompted on every launch.
package auth
