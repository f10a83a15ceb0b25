// Package fonts provides font faces for raster rendering.
//
// Faces are built from the Go fonts embedded in golang.org/x/image,
// so rendering needs no font files on the host system. Two weights
// are exposed: regular for item text, bold for tier labels and the
// title.
package fonts

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// FontFamily is the family name of the embedded faces.
const FontFamily = "Go"

// Weight selects between the embedded faces.
type Weight int

const (
	Regular Weight = iota
	Bold
)

var (
	parseOnce   sync.Once
	regularFont *truetype.Font
	boldFont    *truetype.Font
	parseErr    error
)

func parseFonts() {
	regularFont, parseErr = truetype.Parse(goregular.TTF)
	if parseErr != nil {
		return
	}
	boldFont, parseErr = truetype.Parse(gobold.TTF)
}

// Face returns a font.Face at the given pixel size. At 72 DPI one
// point equals one pixel, so size is the pixel height of the face.
//
// Faces returned here are not safe for concurrent use; callers that
// render in parallel must build their own.
func Face(size float64, weight Weight) font.Face {
	parseOnce.Do(parseFonts)
	if parseErr != nil {
		// The font data is embedded in the binary; a parse failure
		// means the build itself is broken.
		panic(fmt.Sprintf("fonts: embedded font data invalid: %v", parseErr))
	}
	f := regularFont
	if weight == Bold {
		f = boldFont
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// Width returns the advance width of s in pixels for the given face.
func Width(face font.Face, s string) float64 {
	return float64(font.MeasureString(face, s)) / 64
}

// Measurer measures text width per font size for one weight, caching
// faces by size. It is not safe for concurrent use; each render call
// owns its own measurers.
type Measurer struct {
	weight Weight
	faces  map[int]font.Face
}

// NewMeasurer creates a Measurer for the given weight.
func NewMeasurer(weight Weight) *Measurer {
	return &Measurer{
		weight: weight,
		faces:  make(map[int]font.Face),
	}
}

// TextWidth returns the advance width of text in pixels at size.
func (m *Measurer) TextWidth(text string, size int) float64 {
	return Width(m.face(size), text)
}

// Face returns the cached face for a size.
func (m *Measurer) Face(size int) font.Face {
	return m.face(size)
}

func (m *Measurer) face(size int) font.Face {
	f, ok := m.faces[size]
	if !ok {
		f = Face(float64(size), m.weight)
		m.faces[size] = f
	}
	return f
}
