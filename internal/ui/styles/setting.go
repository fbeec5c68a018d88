// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "strings"

// =============================================================================
// THEME SETTING
// =============================================================================

// Setting is the user's stored theme preference.
type Setting string

const (
	SettingLight  Setting = "light"
	SettingDark   Setting = "dark"
	SettingSystem Setting = "system"
)

// ParseSetting maps a stored string to a Setting. Unrecognized values
// fall back to SettingSystem so a damaged preference never breaks startup.
func ParseSetting(s string) Setting {
	switch Setting(strings.ToLower(strings.TrimSpace(s))) {
	case SettingLight:
		return SettingLight
	case SettingDark:
		return SettingDark
	default:
		return SettingSystem
	}
}

// Cycle advances to the next setting: light, dark, system, light, ...
func (s Setting) Cycle() Setting {
	switch s {
	case SettingLight:
		return SettingDark
	case SettingDark:
		return SettingSystem
	default:
		return SettingLight
	}
}

// String returns the stored form of the setting.
func (s Setting) String() string {
	return string(s)
}

// =============================================================================
// EFFECTIVE MODE
// =============================================================================

// Mode is the effective theme after resolving the setting.
type Mode int

const (
	ModeLight Mode = iota
	ModeDark
)

// String returns a short label for status displays.
func (m Mode) String() string {
	if m == ModeDark {
		return "dark"
	}
	return "light"
}

// Resolve maps a setting to its effective mode. osDark is the terminal's
// background darkness, consulted only when the setting is "system".
func Resolve(s Setting, osDark bool) Mode {
	switch s {
	case SettingLight:
		return ModeLight
	case SettingDark:
		return ModeDark
	default:
		if osDark {
			return ModeDark
		}
		return ModeLight
	}
}
