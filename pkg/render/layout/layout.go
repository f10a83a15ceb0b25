// Package layout computes tier-list geometry.
//
// A Layout is built entirely before any drawing surface exists: row
// heights, total canvas height, and every item cell position come out
// of one pass here. The renderer consumes the computed cells verbatim,
// so item placement can never disagree between the sizing pass and the
// drawing pass.
//
// The resource ceilings live here too. Item count is checked against
// the item ceiling before anything else, and the computed canvas
// height is checked against the height ceiling before the function
// returns, which is always before a surface is allocated.
package layout

import (
	"github.com/carmex/tierMCP/pkg/errors"
	"github.com/carmex/tierMCP/pkg/tierlist"
)

// Default geometry. One cell row at the defaults is exactly
// DefaultMinRowHeight tall: CellSize + 2*CellPadding.
const (
	DefaultCanvasWidth     = 1200
	DefaultLabelWidth      = 140
	DefaultCellSize        = 100
	DefaultCellPadding     = 8
	DefaultMinRowHeight    = 116
	DefaultRowGap          = 4
	DefaultHeaderHeight    = 64
	DefaultMaxItems        = 50
	DefaultMaxCanvasHeight = 5000
)

// Geometry is the explicit configuration for layout and rendering
// dimensions. Callers construct it (or take DefaultGeometry) and pass
// it down; nothing in the render path reads tunables from globals.
// Zero fields fall back to the package defaults.
type Geometry struct {
	CanvasWidth     int `json:"canvas_width"`
	LabelWidth      int `json:"label_width"`
	CellSize        int `json:"cell_size"`
	CellPadding     int `json:"cell_padding"`
	MinRowHeight    int `json:"min_row_height"`
	RowGap          int `json:"row_gap"`
	HeaderHeight    int `json:"header_height"`
	MaxItems        int `json:"max_items"`
	MaxCanvasHeight int `json:"max_canvas_height"`
}

// DefaultGeometry returns the standard dimensions.
func DefaultGeometry() Geometry {
	return Geometry{
		CanvasWidth:     DefaultCanvasWidth,
		LabelWidth:      DefaultLabelWidth,
		CellSize:        DefaultCellSize,
		CellPadding:     DefaultCellPadding,
		MinRowHeight:    DefaultMinRowHeight,
		RowGap:          DefaultRowGap,
		HeaderHeight:    DefaultHeaderHeight,
		MaxItems:        DefaultMaxItems,
		MaxCanvasHeight: DefaultMaxCanvasHeight,
	}
}

// WithDefaults returns a copy with zero fields filled in from the
// package defaults. Build applies it internally; callers that derive
// cache keys from a Geometry should apply it first so equivalent
// geometries hash identically.
func (g Geometry) WithDefaults() Geometry {
	def := DefaultGeometry()
	if g.CanvasWidth <= 0 {
		g.CanvasWidth = def.CanvasWidth
	}
	if g.LabelWidth <= 0 {
		g.LabelWidth = def.LabelWidth
	}
	if g.CellSize <= 0 {
		g.CellSize = def.CellSize
	}
	if g.CellPadding <= 0 {
		g.CellPadding = def.CellPadding
	}
	if g.MinRowHeight <= 0 {
		g.MinRowHeight = def.MinRowHeight
	}
	if g.RowGap <= 0 {
		g.RowGap = def.RowGap
	}
	if g.HeaderHeight <= 0 {
		g.HeaderHeight = def.HeaderHeight
	}
	if g.MaxItems <= 0 {
		g.MaxItems = def.MaxItems
	}
	if g.MaxCanvasHeight <= 0 {
		g.MaxCanvasHeight = def.MaxCanvasHeight
	}
	return g
}

// Cell is one item's box within a row. Coordinates are absolute
// canvas pixels of the cell's top-left corner; every cell is
// CellSize square.
type Cell struct {
	Item tierlist.Item
	X    int
	Y    int
}

// Row is one tier's horizontal band.
type Row struct {
	Tier   tierlist.Tier
	Y      int
	Height int
	Cells  []Cell
}

// Layout is the complete geometry of one render.
type Layout struct {
	Width        int
	Height       int
	HeaderHeight int // 0 when the config has no title
	ItemsPerRow  int
	Rows         []Row
	Dropped      []tierlist.Item
	Geometry     Geometry
}

// Build computes the layout for a config.
//
// Error codes:
//   - TOO_MANY_ITEMS when the raw item count exceeds the ceiling,
//     checked before tier resolution
//   - CANVAS_TOO_TALL when the computed height exceeds the ceiling
func Build(cfg *tierlist.Config, g Geometry) (*Layout, error) {
	g = g.WithDefaults()

	if len(cfg.Items) > g.MaxItems {
		return nil, errors.New(errors.ErrCodeTooManyItems, "too many items: %d (max %d)", len(cfg.Items), g.MaxItems)
	}

	tiers := cfg.EffectiveTiers()
	buckets, dropped := tierlist.Bucket(tiers, cfg.Items)

	contentWidth := g.CanvasWidth - g.LabelWidth
	itemsPerRow := contentWidth / (g.CellSize + g.CellPadding)
	if itemsPerRow < 1 {
		itemsPerRow = 1
	}

	headerHeight := 0
	if cfg.Title != "" {
		headerHeight = g.HeaderHeight
	}

	l := &Layout{
		Width:        g.CanvasWidth,
		HeaderHeight: headerHeight,
		ItemsPerRow:  itemsPerRow,
		Rows:         make([]Row, 0, len(tiers)),
		Dropped:      dropped,
		Geometry:     g,
	}

	y := headerHeight
	for i, tier := range tiers {
		items := buckets[i]
		row := Row{Tier: tier, Y: y, Height: rowHeight(len(items), itemsPerRow, g)}
		for j, item := range items {
			col, line := j%itemsPerRow, j/itemsPerRow
			row.Cells = append(row.Cells, Cell{
				Item: item,
				X:    g.LabelWidth + g.CellPadding + col*(g.CellSize+g.CellPadding),
				Y:    y + g.CellPadding + line*(g.CellSize+g.CellPadding),
			})
		}
		l.Rows = append(l.Rows, row)
		y += row.Height + g.RowGap
	}
	l.Height = y

	if l.Height > g.MaxCanvasHeight {
		return nil, errors.New(errors.ErrCodeCanvasTooTall, "canvas height %dpx exceeds the %dpx ceiling", l.Height, g.MaxCanvasHeight)
	}
	return l, nil
}

// rowHeight sizes one tier band: enough cell lines for n items plus
// padding, never less than the minimum row height.
func rowHeight(n, itemsPerRow int, g Geometry) int {
	lines := (n + itemsPerRow - 1) / itemsPerRow
	h := lines*(g.CellSize+g.CellPadding) + g.CellPadding
	if h < g.MinRowHeight {
		return g.MinRowHeight
	}
	return h
}
