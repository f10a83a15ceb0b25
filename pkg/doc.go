// Package pkg provides the core libraries for Tiermcp tier-list rendering.
//
// # Overview
//
// Tiermcp turns a JSON tier-list config into a finished PNG image. The pkg
// directory is organized into three main areas:
//
//  1. Domain logic (config parsing, layout, drawing)
//  2. Infrastructure (caching, safe HTTP fetching, observability)
//  3. Orchestration (the pipeline shared by CLI, API, and MCP server)
//
// # Architecture
//
// The typical data flow through Tiermcp:
//
//	JSON config
//	     ↓
//	[tierlist] package (parse + validate)
//	     ↓
//	[render/layout] package (geometry + resource ceilings)
//	     ↓
//	[render] package (fetch, draw, encode)
//	     ↓
//	PNG output
//
// # Quick Start
//
// Parse a config and render it:
//
//	import (
//	    "context"
//	    "github.com/carmex/tierMCP/pkg/render"
//	    "github.com/carmex/tierMCP/pkg/tierlist"
//	)
//
//	cfg, _ := tierlist.ReadFile("board.json")
//	r := render.New()
//	png, _ := r.Render(context.Background(), cfg)
//
// Production entry points go through [pipeline] instead, which adds artifact
// and image caching around the same call.
//
// # Main Packages
//
// [tierlist] - Config model, JSON parsing, and validation. Item tier
// references resolve against tier ids first, then display labels.
//
// [render] - Sequential rendering. Draws background, title, tier rows, and
// items onto a raster canvas and encodes PNG. Per-item fetch or decode
// failures degrade that item to a text cell; unsafe URLs abort the render.
//
// [render/layout] - Pure geometry. Computes row heights, item positions, and
// the canvas size, and enforces the item-count and canvas-height ceilings
// before any pixel work starts.
//
// [render/text] - Font measurement, size fitting, and label wrapping, with a
// memoizing cache keyed by text and width.
//
// [safehttp] - SSRF-guarded image fetching. The guard re-resolves DNS on
// every call, rejects private and special-purpose addresses, and refuses
// redirects; the fetcher adds timeouts, size caps, and bounded retries.
//
// [pipeline] - Orchestration used by CLI, API, and MCP. Hashes the config to
// an artifact key, consults the cache, and renders on miss with per-URL
// image caching layered onto the fetcher.
//
// [cache] - Content-addressed byte cache. File-backed with sharded
// directories for the CLI, Redis-backed for server deployments, and a
// null implementation for cache-off runs.
//
// [errors] - Stable error codes shared across CLI, HTTP, and MCP surfaces,
// with user-facing messages that keep internal details private.
//
// [observability] - Hook interfaces for render, fetch, and cache events.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/tierlist/... # Specific package
package pkg
