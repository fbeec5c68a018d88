// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// PALETTES
//
// The effective theme is chosen by the resolver, not the terminal, so
// colors are concrete per mode rather than lipgloss.AdaptiveColor.
// =============================================================================

// Palette holds the colors for one effective theme.
type Palette struct {
	// Accents
	Accent     lipgloss.Color
	AccentDeep lipgloss.Color

	// Semantic
	Error   lipgloss.Color
	Warning lipgloss.Color
	Success lipgloss.Color

	// Surfaces
	Surface       lipgloss.Color
	SurfaceDim    lipgloss.Color
	SurfaceBright lipgloss.Color

	// Text
	Text          lipgloss.Color
	TextSecondary lipgloss.Color
	TextMuted     lipgloss.Color

	// Message bubbles
	UserBubbleFg lipgloss.Color
	UserBubbleBg lipgloss.Color
	BotBubbleFg  lipgloss.Color
	BotBubbleBg  lipgloss.Color
}

// LightPalette is the light theme.
var LightPalette = Palette{
	Accent:     lipgloss.Color("#7C3AED"),
	AccentDeep: lipgloss.Color("#5B21B6"),

	Error:   lipgloss.Color("#E11D48"),
	Warning: lipgloss.Color("#D97706"),
	Success: lipgloss.Color("#059669"),

	Surface:       lipgloss.Color("#FFFFFF"),
	SurfaceDim:    lipgloss.Color("#F5F5F5"),
	SurfaceBright: lipgloss.Color("#FAFAFA"),

	Text:          lipgloss.Color("#1F2937"),
	TextSecondary: lipgloss.Color("#4B5563"),
	TextMuted:     lipgloss.Color("#9CA3AF"),

	UserBubbleFg: lipgloss.Color("#FFFFFF"),
	UserBubbleBg: lipgloss.Color("#7C3AED"),
	BotBubbleFg:  lipgloss.Color("#1F2937"),
	BotBubbleBg:  lipgloss.Color("#E5E7EB"),
}

// DarkPalette is the dark theme.
var DarkPalette = Palette{
	Accent:     lipgloss.Color("#A78BFA"),
	AccentDeep: lipgloss.Color("#4C1D95"),

	Error:   lipgloss.Color("#FB7185"),
	Warning: lipgloss.Color("#FBBF24"),
	Success: lipgloss.Color("#34D399"),

	Surface:       lipgloss.Color("#1E1E2E"),
	SurfaceDim:    lipgloss.Color("#181825"),
	SurfaceBright: lipgloss.Color("#313244"),

	Text:          lipgloss.Color("#E5E7EB"),
	TextSecondary: lipgloss.Color("#9CA3AF"),
	TextMuted:     lipgloss.Color("#6B7280"),

	UserBubbleFg: lipgloss.Color("#1E1E2E"),
	UserBubbleBg: lipgloss.Color("#A78BFA"),
	BotBubbleFg:  lipgloss.Color("#E5E7EB"),
	BotBubbleBg:  lipgloss.Color("#313244"),
}

// PaletteFor returns the palette for an effective mode.
func PaletteFor(mode Mode) Palette {
	if mode == ModeDark {
		return DarkPalette
	}
	return LightPalette
}
