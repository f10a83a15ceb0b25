package render

import (
	"bytes"
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

// Canvas is the drawing surface the renderer targets. The production
// implementation wraps a gg raster context; tests substitute their
// own to observe draw calls without rasterizing.
type Canvas interface {
	// FillRect fills an axis-aligned rectangle.
	FillRect(x, y, w, h float64, c color.Color)

	// DrawImage draws img with its top-left corner at (x, y).
	DrawImage(img image.Image, x, y int)

	// DrawTextCentered draws one line of text centered on (cx, cy).
	DrawTextCentered(s string, cx, cy float64, face font.Face, c color.Color)

	// EncodePNG returns the finished surface as PNG bytes.
	EncodePNG() ([]byte, error)
}

// NewCanvasFunc builds a Canvas of the given pixel size.
type NewCanvasFunc func(width, height int) Canvas

// NewCanvas creates the production raster canvas.
func NewCanvas(width, height int) Canvas {
	return &ggCanvas{dc: gg.NewContext(width, height)}
}

type ggCanvas struct {
	dc *gg.Context
}

func (c *ggCanvas) FillRect(x, y, w, h float64, col color.Color) {
	c.dc.SetColor(col)
	c.dc.DrawRectangle(x, y, w, h)
	c.dc.Fill()
}

func (c *ggCanvas) DrawImage(img image.Image, x, y int) {
	c.dc.DrawImage(img, x, y)
}

func (c *ggCanvas) DrawTextCentered(s string, cx, cy float64, face font.Face, col color.Color) {
	c.dc.SetFontFace(face)
	c.dc.SetColor(col)
	c.dc.DrawStringAnchored(s, cx, cy, 0.5, 0.5)
}

func (c *ggCanvas) EncodePNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
