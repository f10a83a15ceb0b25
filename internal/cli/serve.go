package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/carmex/tierMCP/internal/api"
	"github.com/carmex/tierMCP/pkg/cache"
	"github.com/carmex/tierMCP/pkg/pipeline"
	"github.com/carmex/tierMCP/pkg/safehttp"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr       string
	configPath string
	noCache    bool
	cacheDir   string
}

// serveCommand creates the serve command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tier-list renderer as an HTTP API",
		Long: `Serve the tier-list renderer as an HTTP API.

POST /v1/tierlist takes the tier-list config as a JSON body and
responds with the rendered PNG. Settings can also come from a TOML
config file (default: ~/.config/tiermcp/tiermcp.toml); flags win over
file values. The server shuts down gracefully on SIGINT/SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts, cmd.Flags().Changed)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "TOML config file")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&opts.cacheDir, "cache-dir", "", "cache directory (default: XDG cache)")

	return cmd
}

// runServe builds the runner from flags and file config, then blocks
// serving HTTP until ctx is cancelled.
func (c *CLI) runServe(ctx context.Context, opts serveOpts, changed func(string) bool) error {
	fileCfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	opts = mergeServeConfig(opts, fileCfg, changed)

	store, err := c.serveCache(opts, fileCfg)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	runner := pipeline.NewRunner(store, serveKeyer(fileCfg), c.Logger)
	defer runner.Close()

	var apiOpts []api.Option
	if limits := fetchLimits(fileCfg.Fetch); limits != nil {
		apiOpts = append(apiOpts, api.WithFetcher(safehttp.NewFetcher(*limits)))
	}

	c.Logger.Info("starting HTTP server", "addr", opts.addr)
	return api.New(opts.addr, runner, c.Logger, apiOpts...).ListenAndServe(ctx)
}

// mergeServeConfig applies file-config values for flags the user did
// not set explicitly.
func mergeServeConfig(opts serveOpts, cfg Config, changed func(string) bool) serveOpts {
	if !changed("addr") && cfg.Server.Addr != "" {
		opts.addr = cfg.Server.Addr
	}
	if !changed("cache-dir") && cfg.CacheDir != "" {
		opts.cacheDir = cfg.CacheDir
	}
	return opts
}

// serveCache picks the cache backend: Redis when configured, the
// local file cache otherwise.
func (c *CLI) serveCache(opts serveOpts, cfg Config) (cache.Cache, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil
	}
	if cfg.Redis.Addr != "" {
		c.Logger.Info("using redis cache", "addr", cfg.Redis.Addr)
		return cache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	}
	return newCache(false, opts.cacheDir)
}

// serveKeyer returns a namespaced keyer when the config sets one,
// nil for the runner default.
func serveKeyer(cfg Config) cache.Keyer {
	if cfg.Redis.Namespace == "" {
		return nil
	}
	return cache.NewScopedKeyer(nil, cfg.Redis.Namespace+":")
}

// fetchLimits converts file config into fetch limits, nil when the
// file sets nothing so the pipeline defaults apply.
func fetchLimits(cfg FetchConfig) *safehttp.Limits {
	if cfg.TimeoutSeconds <= 0 && cfg.MaxBytes <= 0 {
		return nil
	}
	return &safehttp.Limits{
		FetchTimeout: cfg.Timeout(),
		MaxBytes:     cfg.MaxBytes,
	}
}
