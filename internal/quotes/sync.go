package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"quotefeed/internal/logging"
	"quotefeed/internal/store"
)

// fetchTimeout bounds a single fetch of the source document.
const fetchTimeout = 15 * time.Second

// Mode selects synchronization behavior.
type Mode int

const (
	// ModeInitial produces the full session item set.
	ModeInitial Mode = iota
	// ModeIncremental additionally reports which quotes are not already
	// present in the caller's working set.
	ModeIncremental
)

// Result is the outcome of a synchronization. Quotes is always non-empty
// as long as the built-in sample list is non-empty.
type Result struct {
	Quotes      []Quote
	New         []Quote // incremental mode: quotes absent from the known set
	FromCache   bool    // fetch failed, previous cache returned
	FromSamples bool    // fetch and cache both unavailable
}

// Syncer fetches, parses, validates, and caches the remote quote list.
// It never propagates transport or parse errors: every failure degrades to
// the cached set, then to the built-in samples.
type Syncer struct {
	url     string
	client  *http.Client
	limiter *rate.Limiter
	kv      store.KV
	samples []Quote
}

// NewSyncer creates a Syncer for the given source URL. An empty URL means
// no remote source is configured and the sample list is used directly.
func NewSyncer(kv store.KV, sourceURL string) *Syncer {
	return &Syncer{
		url:     sourceURL,
		client:  &http.Client{Timeout: fetchTimeout},
		limiter: rate.NewLimiter(rate.Every(30*time.Second), 1),
		kv:      kv,
		samples: Samples,
	}
}

// Synchronize produces the best available quote set for the current moment.
// known is the set of identifiers already in the caller's working set; it
// is only consulted in ModeIncremental.
//
// The caller is responsible for running at most one Synchronize at a time;
// the engine's event loop enforces that.
func (s *Syncer) Synchronize(ctx context.Context, mode Mode, known map[string]bool) Result {
	fetched, err := s.fetch(ctx)
	if err != nil {
		logging.Warn("sync falling back", "err", err)
		res := s.fallback(ctx)
		if mode == ModeIncremental {
			res.New = diff(res.Quotes, known)
		}
		return res
	}

	s.writeCache(ctx, fetched)

	res := Result{Quotes: fetched}
	if mode == ModeIncremental {
		res.New = diff(fetched, known)
	}
	return res
}

// fetch retrieves and parses the source document. Any transport failure,
// non-success status, or zero-valid-row parse is an error here; the caller
// turns it into a fallback.
func (s *Syncer) fetch(ctx context.Context) ([]Quote, error) {
	if s.url == "" {
		return nil, fmt.Errorf("no source URL configured")
	}
	if !s.limiter.Allow() {
		return nil, fmt.Errorf("fetch throttled")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "quotefeed/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch source: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	parsed, err := ParseCSV(string(body))
	if err != nil {
		return nil, fmt.Errorf("parse source: %w", err)
	}
	return parsed, nil
}

// CurrentSet returns the best locally available quote set without
// touching the network or the cache: the cached set when present,
// otherwise the samples. Safe to call while a Synchronize is in flight.
func (s *Syncer) CurrentSet(ctx context.Context) []Quote {
	return s.fallback(ctx).Quotes
}

// fallback returns the cached set when present, otherwise the samples.
// It never writes, so a previously good cache is never overwritten by a
// failed attempt.
func (s *Syncer) fallback(ctx context.Context) Result {
	if cached := s.readCache(ctx); len(cached) > 0 {
		return Result{Quotes: cached, FromCache: true}
	}
	return Result{Quotes: s.samples, FromSamples: true}
}

// writeCache persists the freshly fetched list with a capture timestamp.
// Storage failures are logged and the write discarded.
func (s *Syncer) writeCache(ctx context.Context, qs []Quote) {
	data, err := json.Marshal(qs)
	if err != nil {
		logging.Error("marshal quote cache", "err", err)
		return
	}
	if err := s.kv.Set(ctx, store.KeyQuotesCache, string(data)); err != nil {
		logging.Warn("write quote cache", "err", err)
		return
	}
	if err := s.kv.Set(ctx, store.KeyQuotesCacheAt, time.Now().Format(time.RFC3339)); err != nil {
		logging.Warn("write quote cache timestamp", "err", err)
	}
}

func (s *Syncer) readCache(ctx context.Context) []Quote {
	raw, ok, err := s.kv.Get(ctx, store.KeyQuotesCache)
	if err != nil {
		logging.Warn("read quote cache", "err", err)
		return nil
	}
	if !ok {
		return nil
	}
	var qs []Quote
	if err := json.Unmarshal([]byte(raw), &qs); err != nil {
		logging.Warn("decode quote cache", "err", err)
		return nil
	}
	return qs
}

// diff returns the quotes in qs whose IDs are not in known, preserving
// their order in qs.
func diff(qs []Quote, known map[string]bool) []Quote {
	var fresh []Quote
	for _, q := range qs {
		if !known[q.ID] {
			fresh = append(fresh, q)
		}
	}
	return fresh
}
