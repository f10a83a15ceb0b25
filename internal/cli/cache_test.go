package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCacheClearCommand(t *testing.T) {
	dir := t.TempDir()

	// Seed sharded entries the way the file cache lays them out.
	shard := filepath.Join(dir, "ab")
	if err := os.MkdirAll(shard, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"entry1", "entry2"} {
		if err := os.WriteFile(filepath.Join(shard, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	if err := runCommand(t, "cache", "clear", "--cache-dir", dir); err != nil {
		t.Fatalf("cache clear: %v", err)
	}

	remaining := 0
	_ = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			remaining++
		}
		return nil
	})
	if remaining != 0 {
		t.Errorf("cache clear left %d files behind", remaining)
	}
}

func TestCacheClearCommandMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "never-created")
	if err := runCommand(t, "cache", "clear", "--cache-dir", dir); err != nil {
		t.Fatalf("cache clear on missing dir: %v", err)
	}
}

func TestCachePathCommand(t *testing.T) {
	if err := runCommand(t, "cache", "path", "--cache-dir", t.TempDir()); err != nil {
		t.Fatalf("cache path: %v", err)
	}
}

func TestResolveCacheDir(t *testing.T) {
	if got, err := resolveCacheDir("/custom"); err != nil || got != "/custom" {
		t.Errorf("resolveCacheDir(/custom) = %q, %v", got, err)
	}

	got, err := resolveCacheDir("")
	if err != nil {
		t.Fatalf("resolveCacheDir(\"\"): %v", err)
	}
	want, _ := cacheDir()
	if got != want {
		t.Errorf("resolveCacheDir(\"\") = %q, want %q", got, want)
	}
}
