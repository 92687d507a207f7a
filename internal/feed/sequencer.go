// Package feed owns the ordered presentation state of the quote feed:
// the one-time shuffled order, the viewer's position, the interstitial
// cadence, and the merge of newly synchronized quotes.
package feed

import (
	"math/rand"
	"time"

	"quotefeed/internal/quotes"
	"quotefeed/internal/settings"
)

// Cadence and timing constants.
const (
	// AdEvery is the interstitial cadence: one slot after every 4th quote.
	AdEvery = 4

	// SyncInterval is the minimum gap between periodic re-syncs while the
	// app is foregrounded.
	SyncInterval = 5 * time.Minute

	// CatchUpAfter triggers an immediate sync on refocus when this much
	// time has passed since the last one.
	CatchUpAfter = 60 * time.Second

	// WrapDelay is how long the feed lingers on the final quote before
	// cycling back to the start.
	WrapDelay = 500 * time.Millisecond

	// DebounceWindow coalesces rapid scroll signals; only the settled
	// position is committed.
	DebounceWindow = 100 * time.Millisecond
)

// State is the sequencer lifecycle.
type State int

const (
	StateLoading State = iota
	StateReady
	StateEmpty
)

// AdDue reports whether an interstitial slot is due after the quote at
// index. Pure function of the index: due at 3, 7, 11, and so on.
func AdDue(index int) bool {
	return (index+1)%AdEvery == 0
}

// Sequencer holds the live feed order. All mutation happens on the event
// thread, so there is no locking here.
type Sequencer struct {
	state    State
	order    []quotes.Quote
	pos      int
	hideNSFW bool

	lastSync time.Time
	syncing  bool
}

// NewSequencer creates a sequencer in the Loading state. hideNSFW is the
// content-filter setting at session start; it applies to every load and
// merge from then on, never retroactively to quotes already in the order.
func NewSequencer(hideNSFW bool) *Sequencer {
	return &Sequencer{state: StateLoading, hideNSFW: hideNSFW}
}

// SetContentFilter updates the filter flag for subsequent loads and
// merges. The current order is left alone.
func (s *Sequencer) SetContentFilter(v bool) {
	s.hideNSFW = v
}

// Load establishes the session order from a freshly resolved item set:
// filter, one uniform shuffle, position zero. Transitions Loading→Ready,
// or Loading→Empty when nothing survives the filter.
func (s *Sequencer) Load(qs []quotes.Quote, now time.Time) {
	kept := s.filter(qs)

	s.order = make([]quotes.Quote, len(kept))
	copy(s.order, kept)
	rand.Shuffle(len(s.order), func(i, j int) {
		s.order[i], s.order[j] = s.order[j], s.order[i]
	})

	s.pos = 0
	s.lastSync = now
	if len(s.order) == 0 {
		s.state = StateEmpty
	} else {
		s.state = StateReady
	}
}

// MergeNew appends genuinely new quotes to the tail in newly shuffled
// sub-order. Quotes already present by identifier are dropped; existing
// order and position are never altered. Returns the number appended.
func (s *Sequencer) MergeNew(qs []quotes.Quote, now time.Time) int {
	s.lastSync = now
	if s.state != StateReady && s.state != StateEmpty {
		return 0
	}

	existing := quotes.IDSet(s.order)
	var fresh []quotes.Quote
	for _, q := range s.filter(qs) {
		if existing[q.ID] {
			continue
		}
		existing[q.ID] = true
		fresh = append(fresh, q)
	}
	if len(fresh) == 0 {
		return 0
	}

	rand.Shuffle(len(fresh), func(i, j int) {
		fresh[i], fresh[j] = fresh[j], fresh[i]
	})
	s.order = append(s.order, fresh...)

	if s.state == StateEmpty {
		s.state = StateReady
		s.pos = 0
	}
	return len(fresh)
}

// filter drops quotes carrying the sentinel tag when the content filter
// is on.
func (s *Sequencer) filter(qs []quotes.Quote) []quotes.Quote {
	if !s.hideNSFW {
		return qs
	}
	kept := make([]quotes.Quote, 0, len(qs))
	for _, q := range qs {
		if q.HasTag(settings.FilterTag) {
			continue
		}
		kept = append(kept, q)
	}
	return kept
}

// State returns the current lifecycle state.
func (s *Sequencer) State() State { return s.state }

// Quotes returns a copy of the current order.
func (s *Sequencer) Quotes() []quotes.Quote {
	out := make([]quotes.Quote, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of quotes in the order.
func (s *Sequencer) Len() int { return len(s.order) }

// Position returns the viewer's current index.
func (s *Sequencer) Position() int { return s.pos }

// Current returns the quote at the viewer's position.
func (s *Sequencer) Current() (quotes.Quote, bool) {
	if s.state != StateReady || s.pos < 0 || s.pos >= len(s.order) {
		return quotes.Quote{}, false
	}
	return s.order[s.pos], true
}

// SetPosition commits a settled-scroll index. The observed value is
// accepted verbatim when it is in bounds and differs from the current
// position; out-of-bounds values are ignored. Returns whether the
// position changed.
func (s *Sequencer) SetPosition(observed int) bool {
	if observed < 0 || observed >= len(s.order) || observed == s.pos {
		return false
	}
	s.pos = observed
	return true
}

// AtEnd reports whether the viewer sits on the final quote, meaning a
// wraparound reset is due after WrapDelay.
func (s *Sequencer) AtEnd() bool {
	return s.state == StateReady && len(s.order) > 0 && s.pos == len(s.order)-1
}

// ResetPosition cycles the feed back to the start.
func (s *Sequencer) ResetPosition() {
	s.pos = 0
}

// BeginSync marks a synchronization in flight. Returns false when one is
// already running; the caller must then skip starting another.
func (s *Sequencer) BeginSync() bool {
	if s.syncing {
		return false
	}
	s.syncing = true
	return true
}

// EndSync clears the in-flight flag.
func (s *Sequencer) EndSync() {
	s.syncing = false
}

// Syncing reports whether a synchronization is in flight.
func (s *Sequencer) Syncing() bool { return s.syncing }

// SyncDue reports whether the periodic re-sync interval has elapsed.
func (s *Sequencer) SyncDue(now time.Time) bool {
	return !s.syncing && now.Sub(s.lastSync) >= SyncInterval
}

// CatchUpDue reports whether a refocus should trigger an immediate sync.
func (s *Sequencer) CatchUpDue(now time.Time) bool {
	return !s.syncing && now.Sub(s.lastSync) > CatchUpAfter
}

// LastSync returns the time of the last completed synchronization.
func (s *Sequencer) LastSync() time.Time { return s.lastSync }
