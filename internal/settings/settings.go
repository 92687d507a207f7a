// Package settings holds user preferences persisted in the KV store and
// notifies subscribers when they change. Explicit subscription replaces
// any implicit cross-component event signaling: the feed and the views
// register directly with the manager.
package settings

import (
	"context"

	"quotefeed/internal/logging"
	"quotefeed/internal/store"
)

// Settings is the current preference snapshot.
type Settings struct {
	// HideNSFW excludes quotes tagged with the sentinel filter tag from
	// newly loaded feeds. Applied at load time only: an already-built
	// feed is not retroactively filtered within a session.
	HideNSFW bool
}

// FilterTag is the sentinel tag the content filter excludes.
const FilterTag = "nsfw"

// Manager reads, writes, and broadcasts settings. Subscribers are invoked
// synchronously on the caller's goroutine; with all mutation on the event
// thread that means in Update.
type Manager struct {
	kv   store.KV
	subs []func(Settings)
}

// NewManager creates a Manager over kv.
func NewManager(kv store.KV) *Manager {
	return &Manager{kv: kv}
}

// Current loads the settings snapshot. A missing or unreadable value
// means the default (filter off).
func (m *Manager) Current(ctx context.Context) Settings {
	var s Settings
	raw, ok, err := m.kv.Get(ctx, store.KeyHideNSFW)
	if err != nil {
		logging.Warn("read settings", "err", err)
		return s
	}
	if ok {
		s.HideNSFW = raw == "true"
	}
	return s
}

// SetHideNSFW persists the content-filter flag and notifies subscribers.
// A failed write is discarded (and logged); subscribers still hear the
// in-session value so the UI stays consistent with what the user chose.
func (m *Manager) SetHideNSFW(ctx context.Context, v bool) {
	value := "false"
	if v {
		value = "true"
	}
	if err := m.kv.Set(ctx, store.KeyHideNSFW, value); err != nil {
		logging.Warn("write settings", "err", err)
	}
	m.notify(Settings{HideNSFW: v})
}

// Subscribe registers fn for settings-changed notifications.
func (m *Manager) Subscribe(fn func(Settings)) {
	m.subs = append(m.subs, fn)
}

func (m *Manager) notify(s Settings) {
	for _, fn := range m.subs {
		fn(s)
	}
}
