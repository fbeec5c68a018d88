// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"context"
	"sync"
	"time"

	"github.com/muesli/termenv"
)

// probeInterval is how often the OS appearance is re-checked in system
// mode. Appearance flips are rare; polling slowly keeps this cheap.
const probeInterval = 30 * time.Second

// =============================================================================
// RESOLVER
// =============================================================================

// Resolver owns the current theme setting and its effective mode. While
// the setting is "system" a background goroutine re-probes the terminal
// background; choosing an explicit theme stops it.
type Resolver struct {
	mu      sync.Mutex
	setting Setting
	osDark  bool

	// onChange fires when the effective mode flips, outside the lock.
	onChange func(Mode)

	// probe reports whether the terminal background is dark.
	probe func() bool

	interval time.Duration
	cancel   context.CancelFunc // non-nil only while the monitor runs
}

// ResolverOption customizes a Resolver.
type ResolverOption func(*Resolver)

// WithModeListener registers a callback fired when the effective mode
// changes.
func WithModeListener(fn func(Mode)) ResolverOption {
	return func(r *Resolver) { r.onChange = fn }
}

// WithProbe overrides the OS background probe (used in tests).
func WithProbe(probe func() bool) ResolverOption {
	return func(r *Resolver) { r.probe = probe }
}

// WithProbeInterval overrides the monitor poll interval (used in tests).
func WithProbeInterval(d time.Duration) ResolverOption {
	return func(r *Resolver) { r.interval = d }
}

// NewResolver creates a resolver starting at the given setting.
func NewResolver(setting Setting, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		setting:  setting,
		probe:    termenv.HasDarkBackground,
		interval: probeInterval,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.osDark = r.probe()
	if setting == SettingSystem {
		r.startMonitorLocked()
	}
	return r
}

// Setting returns the current theme setting.
func (r *Resolver) Setting() Setting {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.setting
}

// Mode returns the current effective mode.
func (r *Resolver) Mode() Mode {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Resolve(r.setting, r.osDark)
}

// SetSetting switches the theme setting, starting or stopping the OS
// monitor as needed, and returns the new effective mode.
func (r *Resolver) SetSetting(s Setting) Mode {
	r.mu.Lock()

	before := Resolve(r.setting, r.osDark)
	r.setting = s

	if s == SettingSystem {
		// Re-probe immediately so the switch takes effect now, not at
		// the next poll.
		r.osDark = r.probe()
		if r.cancel == nil {
			r.startMonitorLocked()
		}
	} else if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}

	after := Resolve(r.setting, r.osDark)
	fn := r.onChange
	r.mu.Unlock()

	if fn != nil && after != before {
		fn(after)
	}
	return after
}

// CycleSetting advances light -> dark -> system -> light and returns the
// new setting.
func (r *Resolver) CycleSetting() Setting {
	r.mu.Lock()
	next := r.setting.Cycle()
	r.mu.Unlock()

	r.SetSetting(next)
	return next
}

// Close stops the OS monitor if one is running. Every exit path of the
// application goes through here so the goroutine never outlives the UI.
func (r *Resolver) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}

// startMonitorLocked launches the OS appearance monitor. Caller holds mu.
func (r *Resolver) startMonitorLocked() {
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel

	go func() {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				dark := r.probe()

				r.mu.Lock()
				if r.setting != SettingSystem || r.osDark == dark {
					r.mu.Unlock()
					continue
				}
				r.osDark = dark
				mode := Resolve(r.setting, r.osDark)
				fn := r.onChange
				r.mu.Unlock()

				if fn != nil {
					fn(mode)
				}
			}
		}
	}()
}
