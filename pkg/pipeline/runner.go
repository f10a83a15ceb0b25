package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/carmex/tierMCP/pkg/cache"
	"github.com/carmex/tierMCP/pkg/observability"
	"github.com/carmex/tierMCP/pkg/render"
	"github.com/carmex/tierMCP/pkg/safehttp"
	"github.com/carmex/tierMCP/pkg/tierlist"
)

// Runner encapsulates pipeline execution with caching.
// CLI, API, and MCP all use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete validate → layout → render pipeline with
// caching.
//
// The config is validated before any cache work, so INVALID_INPUT
// surfaces identically whether or not an artifact is cached. Configs
// that fail validation or exceed a resource ceiling never produce an
// artifact, so a cached artifact is proof the config rendered cleanly
// before.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	configHash, err := ConfigHash(cfg)
	if err != nil {
		return nil, err
	}

	result := &Result{
		ConfigHash: configHash,
		Artifacts:  make(map[string][]byte),
		Stats: Stats{
			ItemCount: len(cfg.Items),
			TierCount: len(cfg.EffectiveTiers()),
		},
	}

	if !opts.Refresh && r.loadArtifacts(ctx, configHash, &opts, result) {
		result.PNG = result.Artifacts[FormatPNG]
		result.CacheInfo.ArtifactHit = true
		r.Logger.Debug("artifact cache hit", "config", shortHash(configHash))
		return result, nil
	}

	fetcher := &fetchCache{
		cache:   r.Cache,
		keyer:   r.Keyer,
		next:    r.baseFetcher(opts),
		refresh: opts.Refresh,
	}
	renderer := r.newRenderer(opts, fetcher)

	observability.Render().OnRenderStart(ctx, result.Stats.ItemCount, result.Stats.TierCount)
	renderStart := time.Now()
	png, err := renderer.Render(ctx, cfg)
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Render().OnRenderComplete(ctx, result.Stats.ItemCount, len(png), result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}

	result.PNG = png
	result.Artifacts[FormatPNG] = png
	result.CacheInfo.ImageHits = fetcher.hits
	result.CacheInfo.ImageMisses = fetcher.misses

	r.storeArtifacts(ctx, configHash, &opts, result)

	r.Logger.Info("rendered tier list",
		"items", result.Stats.ItemCount,
		"tiers", result.Stats.TierCount,
		"bytes", len(png),
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Render is a convenience wrapper around Execute for callers that only
// want the PNG.
func (r *Runner) Render(ctx context.Context, cfg *tierlist.Config) ([]byte, error) {
	result, err := r.Execute(ctx, Options{Config: cfg, Logger: r.Logger})
	if err != nil {
		return nil, err
	}
	return result.PNG, nil
}

// loadArtifacts fills result.Artifacts from cache. It reports whether
// every requested format was present.
func (r *Runner) loadArtifacts(ctx context.Context, configHash string, opts *Options, result *Result) bool {
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(configHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			observability.Cache().OnCacheMiss(ctx, "artifact")
			return false
		}
		observability.Cache().OnCacheHit(ctx, "artifact")
		result.Artifacts[format] = data
	}
	return len(result.Artifacts) == len(opts.Formats)
}

// storeArtifacts writes every rendered format back to the cache.
func (r *Runner) storeArtifacts(ctx context.Context, configHash string, opts *Options, result *Result) {
	for _, format := range opts.Formats {
		data, ok := result.Artifacts[format]
		if !ok {
			continue
		}
		key := r.Keyer.ArtifactKey(configHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			r.Logger.Debug("artifact cache write failed", "err", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
}

// baseFetcher returns the fetcher behind the cache decorator.
func (r *Runner) baseFetcher(opts Options) render.Fetcher {
	if opts.Fetcher != nil {
		return opts.Fetcher
	}
	return safehttp.NewFetcher(safehttp.DefaultLimits())
}

// newRenderer builds the per-call renderer. Renderers are cheap; the
// fetch cache decorator and geometry bind per call.
func (r *Runner) newRenderer(opts Options, fetcher render.Fetcher) *render.Renderer {
	ropts := []render.Option{
		render.WithGeometry(opts.Geometry),
		render.WithFetcher(fetcher),
		render.WithLogger(opts.Logger),
	}
	if opts.Guard != nil {
		ropts = append(ropts, render.WithGuard(opts.Guard))
	}
	return render.New(ropts...)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
