package pipeline

import (
	"context"
	"time"

	"github.com/carmex/tierMCP/pkg/cache"
	"github.com/carmex/tierMCP/pkg/observability"
	"github.com/carmex/tierMCP/pkg/render"
)

// fetchCache decorates a Fetcher with byte caching keyed by URL.
//
// Only the fetch is cached. The safety guard runs in the renderer
// before this decorator is consulted, so a cached URL is still
// re-validated with fresh DNS on every render.
//
// One fetchCache serves one Execute call; renders fetch sequentially,
// so the counters need no locking.
type fetchCache struct {
	cache   cache.Cache
	keyer   cache.Keyer
	next    render.Fetcher
	refresh bool

	hits   int
	misses int
}

func (f *fetchCache) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	key := f.keyer.FetchKey(rawURL)

	if !f.refresh {
		if data, hit, err := f.cache.Get(ctx, key); err == nil && hit {
			f.hits++
			observability.Cache().OnCacheHit(ctx, "fetch")
			return data, nil
		}
		observability.Cache().OnCacheMiss(ctx, "fetch")
	}

	f.misses++
	start := time.Now()
	observability.Fetch().OnFetchStart(ctx, rawURL)
	data, err := f.next.Fetch(ctx, rawURL)
	observability.Fetch().OnFetchComplete(ctx, rawURL, len(data), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	_ = f.cache.Set(ctx, key, data, cache.TTLImage)
	observability.Cache().OnCacheSet(ctx, "fetch", len(data))
	return data, nil
}
