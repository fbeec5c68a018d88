// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for converse-tui.
//
// The user picks a theme Setting (light, dark, or system). A Resolver
// turns the setting into an effective Mode: explicit settings map
// directly, while "system" follows the terminal's background. In system
// mode the resolver keeps a background probe running so a changed OS
// appearance is picked up; the probe only runs while the setting is
// "system" and is released the moment an explicit theme is chosen.
package styles
