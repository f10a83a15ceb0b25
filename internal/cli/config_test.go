package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tiermcp.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, `
cache_dir = "/var/cache/tiermcp"

[fetch]
timeout_seconds = 5
max_bytes = 1048576

[server]
addr = ":9090"

[redis]
addr = "localhost:6379"
password = "secret"
db = 2
namespace = "prod"
`)

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}

	if cfg.CacheDir != "/var/cache/tiermcp" {
		t.Errorf("CacheDir = %q", cfg.CacheDir)
	}
	if cfg.Fetch.TimeoutSeconds != 5 || cfg.Fetch.MaxBytes != 1048576 {
		t.Errorf("Fetch = %+v", cfg.Fetch)
	}
	if got := cfg.Fetch.Timeout(); got != 5*time.Second {
		t.Errorf("Fetch.Timeout() = %v, want 5s", got)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if cfg.Redis.Addr != "localhost:6379" || cfg.Redis.Password != "secret" || cfg.Redis.DB != 2 {
		t.Errorf("Redis = %+v", cfg.Redis)
	}
	if cfg.Redis.Namespace != "prod" {
		t.Errorf("Redis.Namespace = %q", cfg.Redis.Namespace)
	}
}

func TestLoadConfigPartial(t *testing.T) {
	path := writeConfigFile(t, `
[server]
addr = ":3000"
`)

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Server.Addr != ":3000" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if cfg.CacheDir != "" || cfg.Redis.Addr != "" {
		t.Errorf("unset sections should stay zero: %+v", cfg)
	}
}

func TestLoadConfigExplicitMissing(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("explicit missing config should be an error")
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := writeConfigFile(t, `cache_dir = [broken`)
	if _, err := loadConfig(path); err == nil {
		t.Fatal("malformed config should be an error")
	}
}

func TestDefaultConfigPathXDG(t *testing.T) {
	configHome := t.TempDir()
	oldXdg := os.Getenv("XDG_CONFIG_HOME")
	os.Setenv("XDG_CONFIG_HOME", configHome)
	defer func() {
		if oldXdg != "" {
			os.Setenv("XDG_CONFIG_HOME", oldXdg)
		} else {
			os.Unsetenv("XDG_CONFIG_HOME")
		}
	}()

	expected := filepath.Join(configHome, appName, "tiermcp.toml")
	if got := defaultConfigPath(); got != expected {
		t.Errorf("defaultConfigPath() = %q, want %q", got, expected)
	}
}

func TestLoadConfigDefaultMissingIsFine(t *testing.T) {
	// Point the default location at an empty directory.
	configHome := t.TempDir()
	oldXdg := os.Getenv("XDG_CONFIG_HOME")
	os.Setenv("XDG_CONFIG_HOME", configHome)
	defer func() {
		if oldXdg != "" {
			os.Setenv("XDG_CONFIG_HOME", oldXdg)
		} else {
			os.Unsetenv("XDG_CONFIG_HOME")
		}
	}()

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig(\"\") with no file: %v", err)
	}
	if cfg != (Config{}) {
		t.Errorf("expected zero config, got %+v", cfg)
	}
}
