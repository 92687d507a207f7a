package store

import (
	"context"
	"testing"
)

// backends returns each KV implementation under a name, so every contract
// test runs against both.
func backends(t *testing.T) map[string]KV {
	t.Helper()

	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return map[string]KV{
		"sqlite": s,
		"memory": NewMemory(),
	}
}

func TestGetAbsentKey(t *testing.T) {
	ctx := context.Background()
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			v, ok, err := kv.Get(ctx, "missing")
			if err != nil {
				t.Fatalf("Get returned error: %v", err)
			}
			if ok {
				t.Errorf("Get(missing) reported present with value %q", v)
			}
		})
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := kv.Set(ctx, KeyFavorites, `["1","2"]`); err != nil {
				t.Fatalf("Set failed: %v", err)
			}
			v, ok, err := kv.Get(ctx, KeyFavorites)
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if !ok || v != `["1","2"]` {
				t.Errorf("Get = (%q, %v), want (%q, true)", v, ok, `["1","2"]`)
			}
		})
	}
}

func TestSetOverwrites(t *testing.T) {
	ctx := context.Background()
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := kv.Set(ctx, KeyHideNSFW, "false"); err != nil {
				t.Fatalf("Set failed: %v", err)
			}
			if err := kv.Set(ctx, KeyHideNSFW, "true"); err != nil {
				t.Fatalf("second Set failed: %v", err)
			}
			v, ok, _ := kv.Get(ctx, KeyHideNSFW)
			if !ok || v != "true" {
				t.Errorf("Get after overwrite = (%q, %v), want (true, true)", v, ok)
			}
		})
	}
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := kv.Set(ctx, KeyQuoteOfDay, "{}"); err != nil {
				t.Fatalf("Set failed: %v", err)
			}
			if err := kv.Remove(ctx, KeyQuoteOfDay); err != nil {
				t.Fatalf("Remove failed: %v", err)
			}
			if _, ok, _ := kv.Get(ctx, KeyQuoteOfDay); ok {
				t.Error("key still present after Remove")
			}

			// Removing an absent key is not an error.
			if err := kv.Remove(ctx, KeyQuoteOfDay); err != nil {
				t.Errorf("Remove of absent key returned error: %v", err)
			}
		})
	}
}

func TestValuesSurviveReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := t.TempDir() + "/kv.db"

	s, err := Open(dbPath)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	if err := s.Set(ctx, KeyQuotesCache, `[{"id":"1","text":"hello"}]`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	s.Close()

	s2, err := Open(dbPath)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	defer s2.Close()

	v, ok, err := s2.Get(ctx, KeyQuotesCache)
	if err != nil {
		t.Fatalf("Get after reopen failed: %v", err)
	}
	if !ok || v != `[{"id":"1","text":"hello"}]` {
		t.Errorf("value did not survive reopen: (%q, %v)", v, ok)
	}
}
