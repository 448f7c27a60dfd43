package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileCacheSetGet(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}

	key := Key("# Title\n\nBody text.", "textrank", "3", "200")
	if _, ok, err := c.Get(key); ok || err != nil {
		t.Fatalf("Get() before Set = ok %v, err %v", ok, err)
	}

	data := []byte(`{"summary":"Body text.","method":"single"}`)
	if err := c.Set(key, data, time.Hour); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, ok, err := c.Get(key)
	if err != nil || !ok {
		t.Fatalf("Get() = ok %v, err %v", ok, err)
	}
	if string(got) != string(data) {
		t.Errorf("Get() = %s, want %s", got, data)
	}
}

func TestFileCacheExpired(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }

	if err := c.Set("k", []byte(`"v"`), time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	c.now = func() time.Time { return base.Add(2 * time.Minute) }

	if _, ok, err := c.Get("k"); ok || err != nil {
		t.Errorf("Get() expired = ok %v, err %v", ok, err)
	}
	if _, err := os.Stat(c.getFilePath("k")); !os.IsNotExist(err) {
		t.Errorf("expired file should be removed, stat err = %v", err)
	}
}

func TestFileCacheBroken(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	if err := os.WriteFile(c.getFilePath("k"), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := c.Get("k"); ok || err != nil {
		t.Errorf("Get() broken = ok %v, err %v", ok, err)
	}
	if err := c.Set("k", []byte("{not json"), time.Minute); err == nil {
		t.Error("Set() should reject invalid JSON")
	}
}

func TestKey(t *testing.T) {
	a := Key("content", "textrank", "3", "200")
	if a != Key("content", "textrank", "3", "200") {
		t.Error("Key is not stable")
	}
	if a == Key("content", "lexrank", "3", "200") {
		t.Error("Key should depend on the parameters")
	}
	if Key("ab", "c") == Key("b", "ca") {
		t.Error("Key should separate parameters from content")
	}
}

func TestFileCacheClear(t *testing.T) {
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	if err := c.Set("k", []byte(`1`), time.Minute); err != nil {
		t.Fatal(err)
	}
	if err := c.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "summaries")); !os.IsNotExist(err) {
		t.Errorf("cache dir should be removed, stat err = %v", err)
	}
}
