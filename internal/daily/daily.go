// Package daily selects one quote per calendar day and pins it for the
// rest of that day, surviving restarts and mid-day source changes.
package daily

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"quotefeed/internal/logging"
	"quotefeed/internal/quotes"
	"quotefeed/internal/store"
)

// Source provides the most recently resolved quote set without touching
// the network, so resolving the daily pick can never run concurrently
// with a feed synchronization. *quotes.Syncer satisfies it via
// CurrentSet; tests inject fakes.
type Source interface {
	CurrentSet(ctx context.Context) []quotes.Quote
}

// record is the persisted selection.
type record struct {
	Quote quotes.Quote `json:"quote"`
	Date  string       `json:"date"` // local calendar day, YYYY-MM-DD
}

// Selector implements the once-per-day pick.
type Selector struct {
	kv     store.KV
	source Source

	now func() time.Time // injectable clock
}

// NewSelector creates a Selector over kv and source.
func NewSelector(kv store.KV, source Source) *Selector {
	return &Selector{kv: kv, source: source, now: time.Now}
}

// Today returns the quote of the day, choosing one from the locally
// available set and persisting it if the stored record is missing or
// from a different day. Returns false only when no quotes are available
// at all; nothing is written in that case, so a later retry can still
// populate today's record.
func (s *Selector) Today(ctx context.Context) (quotes.Quote, bool) {
	today := s.now().Format("2006-01-02")

	if rec, ok := s.read(ctx); ok && rec.Date == today && rec.Quote.ID != "" {
		return rec.Quote, true
	}

	set := s.source.CurrentSet(ctx)
	if len(set) == 0 {
		return quotes.Quote{}, false
	}

	picked := set[rand.Intn(len(set))]
	s.write(ctx, record{Quote: picked, Date: today})
	return picked, true
}

// Reset clears the stored record so the next Today call rerolls. Meant
// for development and tests, not wired to any user-facing control.
func (s *Selector) Reset(ctx context.Context) {
	if err := s.kv.Remove(ctx, store.KeyQuoteOfDay); err != nil {
		logging.Warn("clear quote of the day", "err", err)
	}
}

func (s *Selector) read(ctx context.Context) (record, bool) {
	raw, ok, err := s.kv.Get(ctx, store.KeyQuoteOfDay)
	if err != nil {
		logging.Warn("read quote of the day", "err", err)
		return record{}, false
	}
	if !ok {
		return record{}, false
	}
	var rec record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		logging.Warn("decode quote of the day", "err", err)
		return record{}, false
	}
	return rec, true
}

func (s *Selector) write(ctx context.Context, rec record) {
	data, err := json.Marshal(rec)
	if err != nil {
		logging.Error("marshal quote of the day", "err", err)
		return
	}
	if err := s.kv.Set(ctx, store.KeyQuoteOfDay, string(data)); err != nil {
		logging.Warn("write quote of the day", "err", err)
	}
}
