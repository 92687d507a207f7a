package quotes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/time/rate"

	"quotefeed/internal/store"
)

const testDoc = "id,text,author\nq1,One,A\nq2,Two,B\nq3,Three,C"

// newTestSyncer builds a Syncer against url with throttling disabled so
// tests can synchronize back to back.
func newTestSyncer(kv store.KV, url string) *Syncer {
	s := NewSyncer(kv, url)
	s.limiter = rate.NewLimiter(rate.Inf, 1)
	return s
}

func TestSynchronizeSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testDoc))
	}))
	defer srv.Close()

	kv := store.NewMemory()
	s := newTestSyncer(kv, srv.URL)

	res := s.Synchronize(context.Background(), ModeInitial, nil)
	if res.FromCache || res.FromSamples {
		t.Errorf("fresh fetch flagged as fallback: %+v", res)
	}
	if len(res.Quotes) != 3 {
		t.Fatalf("expected 3 quotes, got %d", len(res.Quotes))
	}

	// A successful fetch persists the cache.
	if _, ok, _ := kv.Get(context.Background(), store.KeyQuotesCache); !ok {
		t.Error("cache not written after successful fetch")
	}
	if _, ok, _ := kv.Get(context.Background(), store.KeyQuotesCacheAt); !ok {
		t.Error("cache timestamp not written after successful fetch")
	}
}

func TestSynchronizeFallsBackToCache(t *testing.T) {
	// First a good fetch, then the server starts failing.
	failing := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failing {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(testDoc))
	}))
	defer srv.Close()

	kv := store.NewMemory()
	s := newTestSyncer(kv, srv.URL)

	first := s.Synchronize(context.Background(), ModeInitial, nil)
	cachedRaw, _, _ := kv.Get(context.Background(), store.KeyQuotesCache)

	failing = true
	second := s.Synchronize(context.Background(), ModeInitial, nil)
	if !second.FromCache {
		t.Error("expected cache fallback after transport failure")
	}
	if len(second.Quotes) != len(first.Quotes) {
		t.Errorf("cache fallback returned %d quotes, want %d", len(second.Quotes), len(first.Quotes))
	}

	// A failed attempt never overwrites a previously good cache.
	afterRaw, _, _ := kv.Get(context.Background(), store.KeyQuotesCache)
	if afterRaw != cachedRaw {
		t.Error("failed sync modified the cached item set")
	}
}

func TestSynchronizeFallsBackToSamples(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	kv := store.NewMemory()
	s := newTestSyncer(kv, srv.URL)

	res := s.Synchronize(context.Background(), ModeInitial, nil)
	if !res.FromSamples {
		t.Error("expected sample fallback with empty cache")
	}
	if len(res.Quotes) != len(Samples) {
		t.Errorf("expected %d sample quotes, got %d", len(Samples), len(res.Quotes))
	}

	// The sample fallback is never persisted as a cache.
	if _, ok, _ := kv.Get(context.Background(), store.KeyQuotesCache); ok {
		t.Error("sample fallback was written to the cache")
	}
}

func TestSynchronizeZeroValidRowsIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("id,text\n,\n,"))
	}))
	defer srv.Close()

	s := newTestSyncer(store.NewMemory(), srv.URL)
	res := s.Synchronize(context.Background(), ModeInitial, nil)
	if !res.FromSamples {
		t.Error("zero valid rows should degrade like a transport failure")
	}
}

func TestSynchronizeIncrementalDiff(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testDoc))
	}))
	defer srv.Close()

	s := newTestSyncer(store.NewMemory(), srv.URL)

	known := map[string]bool{"q1": true, "q3": true}
	res := s.Synchronize(context.Background(), ModeIncremental, known)

	if len(res.New) != 1 || res.New[0].ID != "q2" {
		t.Errorf("incremental diff = %+v, want just q2", res.New)
	}
	if len(res.Quotes) != 3 {
		t.Errorf("full set should still carry all quotes, got %d", len(res.Quotes))
	}
}

func TestCurrentSetNeverFetchesOrWrites(t *testing.T) {
	ctx := context.Background()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("CurrentSet reached the network")
	}))
	defer srv.Close()

	kv := store.NewMemory()
	s := newTestSyncer(kv, srv.URL)

	// Empty cache resolves to samples without persisting them.
	if got := s.CurrentSet(ctx); len(got) != len(Samples) {
		t.Errorf("empty-cache CurrentSet returned %d quotes, want %d samples", len(got), len(Samples))
	}
	if _, ok, _ := kv.Get(ctx, store.KeyQuotesCache); ok {
		t.Error("CurrentSet wrote the cache")
	}

	// A primed cache is served verbatim and left untouched.
	kv.Set(ctx, store.KeyQuotesCache, `[{"id":"c1","text":"cached"}]`)
	got := s.CurrentSet(ctx)
	if len(got) != 1 || got[0].ID != "c1" {
		t.Errorf("CurrentSet = %+v, want the cached quote", got)
	}
	raw, _, _ := kv.Get(ctx, store.KeyQuotesCache)
	if raw != `[{"id":"c1","text":"cached"}]` {
		t.Error("CurrentSet modified the cached item set")
	}
}

func TestIncrementalDiffOnCacheFallback(t *testing.T) {
	failing := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failing {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(testDoc))
	}))
	defer srv.Close()

	s := newTestSyncer(store.NewMemory(), srv.URL)
	s.Synchronize(context.Background(), ModeInitial, nil)

	// The cache-served set still reports quotes the caller has not seen.
	failing = true
	known := map[string]bool{"q1": true, "q3": true}
	res := s.Synchronize(context.Background(), ModeIncremental, known)
	if !res.FromCache {
		t.Fatal("expected cache fallback")
	}
	if len(res.New) != 1 || res.New[0].ID != "q2" {
		t.Errorf("fallback diff = %+v, want just q2", res.New)
	}
}

func TestSynchronizeNoURLUsesSamples(t *testing.T) {
	s := newTestSyncer(store.NewMemory(), "")
	res := s.Synchronize(context.Background(), ModeInitial, nil)
	if !res.FromSamples {
		t.Error("missing source URL should resolve to the sample list")
	}
}
