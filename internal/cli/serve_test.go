package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/carmex/tierMCP/pkg/cache"
)

func changedNone(string) bool { return false }

func TestMergeServeConfig(t *testing.T) {
	cfg := Config{
		CacheDir: "/configured/cache",
		Server:   ServerConfig{Addr: ":9090"},
	}

	opts := mergeServeConfig(serveOpts{addr: ":8080"}, cfg, changedNone)
	if opts.addr != ":9090" {
		t.Errorf("addr = %q, want config value :9090", opts.addr)
	}
	if opts.cacheDir != "/configured/cache" {
		t.Errorf("cacheDir = %q, want config value", opts.cacheDir)
	}
}

func TestMergeServeConfigFlagsWin(t *testing.T) {
	cfg := Config{
		CacheDir: "/configured/cache",
		Server:   ServerConfig{Addr: ":9090"},
	}
	changed := func(name string) bool { return true }

	opts := mergeServeConfig(serveOpts{addr: ":8080", cacheDir: "/flag/cache"}, cfg, changed)
	if opts.addr != ":8080" {
		t.Errorf("addr = %q, explicit flag should win", opts.addr)
	}
	if opts.cacheDir != "/flag/cache" {
		t.Errorf("cacheDir = %q, explicit flag should win", opts.cacheDir)
	}
}

func TestMergeServeConfigEmptyFile(t *testing.T) {
	opts := mergeServeConfig(serveOpts{addr: ":8080"}, Config{}, changedNone)
	if opts.addr != ":8080" {
		t.Errorf("addr = %q, empty config should not override", opts.addr)
	}
}

func TestServeCacheNoCache(t *testing.T) {
	c := testCLI()

	store, err := c.serveCache(serveOpts{noCache: true}, Config{})
	if err != nil {
		t.Fatalf("serveCache: %v", err)
	}
	if _, ok := store.(*cache.NullCache); !ok {
		t.Errorf("store is %T, want *cache.NullCache", store)
	}
}

func TestServeCacheFileBacked(t *testing.T) {
	c := testCLI()

	store, err := c.serveCache(serveOpts{cacheDir: t.TempDir()}, Config{})
	if err != nil {
		t.Fatalf("serveCache: %v", err)
	}
	defer store.Close()

	if _, ok := store.(*cache.FileCache); !ok {
		t.Errorf("store is %T, want *cache.FileCache", store)
	}
}

func TestServeKeyer(t *testing.T) {
	if k := serveKeyer(Config{}); k != nil {
		t.Errorf("no namespace should give nil keyer, got %T", k)
	}

	k := serveKeyer(Config{Redis: RedisConfig{Namespace: "prod"}})
	if k == nil {
		t.Fatal("namespace should give a keyer")
	}
	if key := k.FetchKey("https://example.com/a.png"); !strings.HasPrefix(key, "prod:") {
		t.Errorf("FetchKey = %q, want prod: prefix", key)
	}
}

func TestFetchLimits(t *testing.T) {
	if got := fetchLimits(FetchConfig{}); got != nil {
		t.Errorf("empty fetch config should give nil limits, got %+v", got)
	}

	limits := fetchLimits(FetchConfig{TimeoutSeconds: 3, MaxBytes: 1024})
	if limits == nil {
		t.Fatal("configured fetch config should give limits")
	}
	if limits.FetchTimeout != 3*time.Second || limits.MaxBytes != 1024 {
		t.Errorf("limits = %+v", limits)
	}
}
