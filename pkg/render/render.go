// Package render turns a tier-list config into finished PNG bytes.
//
// Render is a sequential state machine: validate, lay out (resource
// ceilings first), allocate the surface, then draw background, title,
// rows, and items in order, and finally encode. Remote images are
// fetched one at a time, in row order; a failed fetch degrades the
// one affected item to its text or placeholder form, while an unsafe
// URL classification aborts the whole render. Either the complete
// image comes back or an error does; no partial output exists.
//
// All state lives on the call stack for one Render call. A Renderer
// is safe for concurrent use as long as its collaborators are; the
// default guard and fetcher are.
package render

import (
	"context"
	"image"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"

	"github.com/carmex/tierMCP/pkg/errors"
	"github.com/carmex/tierMCP/pkg/fonts"
	"github.com/carmex/tierMCP/pkg/render/layout"
	"github.com/carmex/tierMCP/pkg/render/text"
	"github.com/carmex/tierMCP/pkg/safehttp"
	"github.com/carmex/tierMCP/pkg/tierlist"
)

// Guard classifies image URLs before any fetch.
type Guard interface {
	Check(ctx context.Context, rawURL string) error
}

// Fetcher downloads image bytes under resource bounds.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithGeometry overrides the layout geometry.
func WithGeometry(g layout.Geometry) Option {
	return func(r *Renderer) { r.geometry = g }
}

// WithGuard overrides the URL safety guard.
func WithGuard(g Guard) Option {
	return func(r *Renderer) { r.guard = g }
}

// WithFetcher overrides the image fetcher.
func WithFetcher(f Fetcher) Option {
	return func(r *Renderer) { r.fetcher = f }
}

// WithLogger overrides the logger.
func WithLogger(l *log.Logger) Option {
	return func(r *Renderer) { r.logger = l }
}

// WithCanvasFactory overrides surface construction, mainly for tests.
func WithCanvasFactory(fn NewCanvasFunc) Option {
	return func(r *Renderer) { r.newCanvas = fn }
}

// Renderer renders tier lists.
type Renderer struct {
	geometry  layout.Geometry
	guard     Guard
	fetcher   Fetcher
	logger    *log.Logger
	newCanvas NewCanvasFunc
}

// New creates a Renderer with production defaults: standard geometry,
// the system-resolver guard, a bounded fetcher, and the gg canvas.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		geometry:  layout.DefaultGeometry(),
		guard:     safehttp.NewGuard(),
		fetcher:   safehttp.NewFetcher(safehttp.DefaultLimits()),
		logger:    log.Default(),
		newCanvas: NewCanvas,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// renderState carries the per-call drawing state: the surface, one
// fit cache per font weight, and the face providers behind them.
type renderState struct {
	canvas   Canvas
	boldM    *fonts.Measurer
	regularM *fonts.Measurer
	boldFits *text.Cache
	itemFits *text.Cache
}

// Render produces the PNG for cfg.
//
// Validation and layout errors return before any surface work. Once
// drawing starts the only abort is an unsafe URL classification;
// every other per-item failure falls back and rendering continues.
func (r *Renderer) Render(ctx context.Context, cfg *tierlist.Config) ([]byte, error) {
	if cfg == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nil config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	l, err := layout.Build(cfg, r.geometry)
	if err != nil {
		return nil, err
	}

	for _, item := range l.Dropped {
		r.logger.Warn("dropping item, tier reference did not resolve",
			"item", item.ID, "tier", item.Tier)
	}

	boldM := fonts.NewMeasurer(fonts.Bold)
	regularM := fonts.NewMeasurer(fonts.Regular)
	st := &renderState{
		canvas:   r.newCanvas(l.Width, l.Height),
		boldM:    boldM,
		regularM: regularM,
		boldFits: text.NewCache(boldM),
		itemFits: text.NewCache(regularM),
	}

	r.drawBackground(st, cfg, l)
	if cfg.Title != "" {
		r.drawTitle(st, cfg.Title, l)
	}
	for _, row := range l.Rows {
		if err := r.drawRow(ctx, st, row, l); err != nil {
			return nil, err
		}
	}

	png, err := st.canvas.EncodePNG()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return png, nil
}

// loadImage runs the full image path for one item: safety check,
// bounded fetch, decode, and crop-scale to a square cell thumbnail.
func (r *Renderer) loadImage(ctx context.Context, rawURL string, cellSize int) (image.Image, error) {
	if err := r.guard.Check(ctx, rawURL); err != nil {
		return nil, err
	}
	data, err := r.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	img, err := DecodeImage(data)
	if err != nil {
		return nil, err
	}
	return imaging.Fill(img, cellSize, cellSize, imaging.Center, imaging.Lanczos), nil
}
