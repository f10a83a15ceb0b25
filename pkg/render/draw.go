package render

import (
	"context"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/carmex/tierMCP/pkg/errors"
	"github.com/carmex/tierMCP/pkg/fonts"
	"github.com/carmex/tierMCP/pkg/render/layout"
	"github.com/carmex/tierMCP/pkg/render/text"
	"github.com/carmex/tierMCP/pkg/tierlist"
)

// Palette for the parts of the board the config does not color.
var (
	defaultBackground = mustHex("#1A1A17")
	rowBackground     = mustHex("#2A2A27")
	cellBackground    = mustHex("#3F3F3B")
	labelTextColor    = mustHex("#1A1A17")
	lightTextColor    = mustHex("#F2F2F0")
)

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic("render: bad palette literal " + s)
	}
	return c
}

func (r *Renderer) drawBackground(st *renderState, cfg *tierlist.Config, l *layout.Layout) {
	bg := color.Color(defaultBackground)
	if cfg.BackgroundColor != "" {
		if c, err := tierlist.ParseColor(cfg.BackgroundColor); err == nil {
			bg = c
		}
	}
	st.canvas.FillRect(0, 0, float64(l.Width), float64(l.Height), bg)
}

func (r *Renderer) drawTitle(st *renderState, title string, l *layout.Layout) {
	pad := float64(l.Geometry.CellPadding)
	fit := st.boldFits.Fit(title, text.Options{
		MaxWidth:  float64(l.Width) - 2*pad,
		MaxHeight: float64(l.HeaderHeight) - 2*pad,
		MaxSize:   text.TitleSizeMax,
		MinSize:   text.TitleSizeMin,
	})
	drawFitLines(st.canvas, st.boldM, fit, float64(l.Width)/2, float64(l.HeaderHeight)/2, lightTextColor)
}

func (r *Renderer) drawRow(ctx context.Context, st *renderState, row layout.Row, l *layout.Layout) error {
	g := l.Geometry
	st.canvas.FillRect(float64(g.LabelWidth), float64(row.Y),
		float64(l.Width-g.LabelWidth), float64(row.Height), rowBackground)

	// Colors were validated with the config, so a parse failure here
	// is a programming error, not caller input.
	tierColor, err := tierlist.ParseColor(row.Tier.Color)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "tier %s color", row.Tier.ID)
	}
	st.canvas.FillRect(0, float64(row.Y), float64(g.LabelWidth), float64(row.Height), tierColor)
	r.drawLabel(st, row, g)

	for _, cell := range row.Cells {
		if err := r.drawItem(ctx, st, cell, g); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) drawLabel(st *renderState, row layout.Row, g layout.Geometry) {
	pad := float64(g.CellPadding)
	fit := st.boldFits.Fit(row.Tier.Label, text.Options{
		MaxWidth:  float64(g.LabelWidth) - 2*pad,
		MaxHeight: float64(row.Height) - 2*pad,
		MaxSize:   text.LabelSizeMax,
		MinSize:   text.LabelSizeMin,
	})
	cx := float64(g.LabelWidth) / 2
	cy := float64(row.Y) + float64(row.Height)/2
	drawFitLines(st.canvas, st.boldM, fit, cx, cy, labelTextColor)
}

func (r *Renderer) drawItem(ctx context.Context, st *renderState, cell layout.Cell, g layout.Geometry) error {
	if cell.Item.ImageURL != "" {
		img, err := r.loadImage(ctx, cell.Item.ImageURL, g.CellSize)
		switch {
		case err == nil:
			st.canvas.DrawImage(img, cell.X, cell.Y)
			return nil
		case errors.IsClientSafety(err):
			// One unsafe URL taints the whole render.
			return err
		default:
			r.logger.Warn("image unavailable, using fallback",
				"item", cell.Item.ID, "url", cell.Item.ImageURL, "err", err)
		}
	}
	r.drawItemText(st, cell, g)
	return nil
}

// drawItemText renders the text form of an item: its text when it has
// one, a placeholder glyph otherwise.
func (r *Renderer) drawItemText(st *renderState, cell layout.Cell, g layout.Geometry) {
	label := cell.Item.Text
	if label == "" {
		label = "?"
	}

	size := float64(g.CellSize)
	st.canvas.FillRect(float64(cell.X), float64(cell.Y), size, size, cellBackground)

	pad := float64(g.CellPadding)
	fit := st.itemFits.Fit(label, text.Options{
		MaxWidth:  size - 2*pad,
		MaxHeight: size - 2*pad,
		MaxSize:   text.ItemSizeMax,
		MinSize:   text.ItemSizeMin,
	})
	drawFitLines(st.canvas, st.regularM, fit, float64(cell.X)+size/2, float64(cell.Y)+size/2, lightTextColor)
}

// drawFitLines draws a fitted block centered on (cx, cy).
func drawFitLines(canvas Canvas, m *fonts.Measurer, fit text.Fit, cx, cy float64, col color.Color) {
	if len(fit.Lines) == 0 {
		return
	}
	face := m.Face(fit.Size)
	lineHeight := float64(fit.Size) * text.DefaultLineHeight
	top := cy - fit.BlockHeight(0)/2
	for i, line := range fit.Lines {
		canvas.DrawTextCentered(line, cx, top+(float64(i)+0.5)*lineHeight, face, col)
	}
}
