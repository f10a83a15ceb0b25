// Package pipeline provides the core render pipeline for tiermcp.
//
// This package implements the validate → layout → render flow behind
// every entry point. By centralizing this logic, we ensure consistent
// behavior across CLI, HTTP API, and MCP tool, and avoid duplicating
// the caching rules.
//
// # Architecture
//
// A Runner wraps the renderer with two caches:
//
//  1. Fetch cache: remote image bytes keyed by URL, so repeated
//     renders of the same config do not re-download. URL safety
//     validation still runs on every render regardless of cache state.
//  2. Artifact cache: finished PNGs keyed by config hash and geometry,
//     so an unchanged config costs one cache read.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{Config: cfg}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png := result.PNG
package pipeline

import (
	"encoding/json"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/carmex/tierMCP/pkg/cache"
	"github.com/carmex/tierMCP/pkg/errors"
	"github.com/carmex/tierMCP/pkg/render"
	"github.com/carmex/tierMCP/pkg/render/layout"
	"github.com/carmex/tierMCP/pkg/tierlist"
)

// Format constants for output formats.
const (
	FormatPNG = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG: true,
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid format: %q (must be png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Config is the tier list to render.
	Config *tierlist.Config `json:"config"`

	// Geometry overrides the layout dimensions. Zero fields fall back
	// to the standard defaults.
	Geometry layout.Geometry `json:"geometry"`

	// Formats selects the output formats. Defaults to ["png"].
	Formats []string `json:"formats,omitempty"`

	// Refresh bypasses cache reads. Results are still written back.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger  *log.Logger    `json:"-"`
	Guard   render.Guard   `json:"-"` // overrides the URL safety guard
	Fetcher render.Fetcher `json:"-"` // overrides the image fetcher

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same
// effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Config == nil {
		return errors.New(errors.ErrCodeInvalidInput, "config is required")
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPNG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ArtifactKeyOpts returns cache key options for one output format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		Geometry: GeometryHash(o.Geometry),
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ConfigHash is the content hash of the rendered config.
	ConfigHash string

	// PNG is the finished image. Shorthand for Artifacts["png"].
	PNG []byte

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which parts of the run hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ItemCount  int // raw item count, before tier resolution
	TierCount  int // effective ladder length
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for a pipeline run.
type CacheInfo struct {
	ArtifactHit bool // whether the finished PNG came from cache
	ImageHits   int  // image fetches served from cache
	ImageMisses int  // image fetches that went to the network
}

// ConfigHash returns the canonical content hash of a config. Two
// configs hash equal exactly when their JSON forms are identical.
func ConfigHash(cfg *tierlist.Config) (string, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "hash config")
	}
	return cache.Hash(data), nil
}

// GeometryHash returns the content hash of a geometry with defaults
// applied, so equivalent geometries share cache entries.
func GeometryHash(g layout.Geometry) string {
	data, _ := json.Marshal(g.WithDefaults())
	return cache.Hash(data)
}
