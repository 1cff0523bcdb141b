package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCache_PutGet(t *testing.T) {
	c, err := New(true, t.TempDir(), 3600)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	if _, ok := c.Get("missing"); ok {
		t.Error("Get on empty cache should miss")
	}

	if err := c.Put("key1", `{"bugReports":[]}`); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	got, ok := c.Get("key1")
	if !ok {
		t.Fatal("Get should hit after Put")
	}
	if got != `{"bugReports":[]}` {
		t.Errorf("Get = %q", got)
	}
}

func TestCache_Disabled(t *testing.T) {
	c, err := New(false, "", 0)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if err := c.Put("k", "v"); err != nil {
		t.Errorf("disabled Put should be a no-op, got %v", err)
	}
	if _, ok := c.Get("k"); ok {
		t.Error("disabled Get should always miss")
	}
}

func TestCache_TTLExpiry(t *testing.T) {
	dir := t.TempDir()
	c, err := New(true, dir, 60)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if err := c.Put("stale", "old reply"); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	// Backdate the entry past its TTL.
	path := c.entryPath("stale")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading entry: %v", err)
	}
	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		t.Fatalf("unmarshaling entry: %v", err)
	}
	entry.CreatedAt = time.Now().Add(-2 * time.Minute)
	data, _ = json.Marshal(entry)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing entry: %v", err)
	}

	if _, ok := c.Get("stale"); ok {
		t.Error("expired entry should miss")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("expired entry should be removed on read")
	}
}

func TestCache_Clear(t *testing.T) {
	dir := t.TempDir()
	c, err := New(true, dir, 0)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	c.Put("a", "1")
	c.Put("b", "2")

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".json" {
			t.Errorf("entry %s survived Clear", e.Name())
		}
	}
}

func TestCache_GetStats(t *testing.T) {
	c, err := New(true, t.TempDir(), 3600)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	c.Put("a", "1")
	c.Put("b", "2")

	stats, err := c.GetStats()
	if err != nil {
		t.Fatalf("GetStats error: %v", err)
	}
	if stats.Entries != 2 {
		t.Errorf("Entries = %d, want 2", stats.Entries)
	}
	if stats.TotalBytes == 0 {
		t.Error("TotalBytes should be nonzero")
	}
}

func TestBuildKey(t *testing.T) {
	k1 := BuildKey("anthropic", "model-a", "a.go", "+x")
	k2 := BuildKey("anthropic", "model-a", "a.go", "+x")
	if k1 != k2 {
		t.Error("BuildKey should be deterministic")
	}
	for _, other := range []string{
		BuildKey("openai", "model-a", "a.go", "+x"),
		BuildKey("anthropic", "model-b", "a.go", "+x"),
		BuildKey("anthropic", "model-a", "b.go", "+x"),
		BuildKey("anthropic", "model-a", "a.go", "+y"),
	} {
		if other == k1 {
			t.Error("BuildKey should vary with every input")
		}
	}
}
