package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the optional tiermcp.toml file. Flags always win; file
// values fill in what the user did not set explicitly.
type Config struct {
	CacheDir string       `toml:"cache_dir"`
	Fetch    FetchConfig  `toml:"fetch"`
	Server   ServerConfig `toml:"server"`
	Redis    RedisConfig  `toml:"redis"`
}

// FetchConfig bounds remote image fetches.
type FetchConfig struct {
	TimeoutSeconds int   `toml:"timeout_seconds"`
	MaxBytes       int64 `toml:"max_bytes"`
}

// Timeout returns the configured fetch timeout, zero when unset.
func (f FetchConfig) Timeout() time.Duration {
	return time.Duration(f.TimeoutSeconds) * time.Second
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// RedisConfig selects a shared Redis cache for server deployments.
// When Addr is empty the local file cache is used instead. Namespace
// prefixes every cache key so multiple deployments can share one
// Redis without collisions.
type RedisConfig struct {
	Addr      string `toml:"addr"`
	Password  string `toml:"password"`
	DB        int    `toml:"db"`
	Namespace string `toml:"namespace"`
}

// loadConfig reads the TOML config at path. An empty path tries the
// default location, where a missing file is fine; an explicitly given
// path must exist.
func loadConfig(path string) (Config, error) {
	var cfg Config

	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
		if path == "" {
			return cfg, nil
		}
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if !explicit && os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// defaultConfigPath returns ~/.config/tiermcp/tiermcp.toml, honoring
// XDG_CONFIG_HOME. Empty when the home directory is unknown.
func defaultConfigPath() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, appName+".toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, appName+".toml")
}
