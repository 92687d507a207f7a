// Package favorites persists the set of favorited quote identifiers.
// No account required: the set lives on device, in the KV store.
package favorites

import (
	"context"
	"encoding/json"
	"sort"

	"quotefeed/internal/logging"
	"quotefeed/internal/store"
)

// Ledger reads and mutates the favorite set. Every mutation rewrites the
// whole set atomically under one key, so there is no partial state to
// recover from.
type Ledger struct {
	kv store.KV
}

// NewLedger creates a Ledger backed by kv.
func NewLedger(kv store.KV) *Ledger {
	return &Ledger{kv: kv}
}

// IDs returns the current favorite set. Storage failures produce an empty
// set, never an error.
func (l *Ledger) IDs(ctx context.Context) map[string]bool {
	raw, ok, err := l.kv.Get(ctx, store.KeyFavorites)
	if err != nil {
		logging.Warn("read favorites", "err", err)
		return map[string]bool{}
	}
	if !ok {
		return map[string]bool{}
	}

	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		logging.Warn("decode favorites", "err", err)
		return map[string]bool{}
	}

	ids := make(map[string]bool, len(list))
	for _, id := range list {
		ids[id] = true
	}
	return ids
}

// IsFavorite reports whether id is currently favorited.
func (l *Ledger) IsFavorite(ctx context.Context, id string) bool {
	return l.IDs(ctx)[id]
}

// Toggle flips membership for id and persists the result. It returns the
// new state, so two toggles in quick succession restore the original set.
func (l *Ledger) Toggle(ctx context.Context, id string) bool {
	ids := l.IDs(ctx)
	var now bool
	if ids[id] {
		delete(ids, id)
		now = false
	} else {
		ids[id] = true
		now = true
	}
	l.save(ctx, ids)
	return now
}

// Remove drops id from the set if present.
func (l *Ledger) Remove(ctx context.Context, id string) {
	ids := l.IDs(ctx)
	if !ids[id] {
		return
	}
	delete(ids, id)
	l.save(ctx, ids)
}

// PruneTo removes members not present in valid. Advisory cleanup after a
// fresh item-set load: a favorite pruned late is wasted storage, not an
// error.
func (l *Ledger) PruneTo(ctx context.Context, valid map[string]bool) {
	ids := l.IDs(ctx)
	changed := false
	for id := range ids {
		if !valid[id] {
			delete(ids, id)
			changed = true
		}
	}
	if changed {
		l.save(ctx, ids)
	}
}

// save persists the whole set. Sorted for stable on-disk representation.
func (l *Ledger) save(ctx context.Context, ids map[string]bool) {
	list := make([]string, 0, len(ids))
	for id := range ids {
		list = append(list, id)
	}
	sort.Strings(list)

	data, err := json.Marshal(list)
	if err != nil {
		logging.Error("marshal favorites", "err", err)
		return
	}
	if err := l.kv.Set(ctx, store.KeyFavorites, string(data)); err != nil {
		logging.Warn("write favorites", "err", err)
	}
}
