// Package text fits variable-length strings into fixed boxes.
//
// Fitting searches font sizes from largest to smallest, wrapping the
// text greedily at each size. The largest size whose wrapped block
// fits the box without breaking inside a word wins. When every size
// forces an intra-word break, the largest size that at least fits the
// box height is used instead, and as a last resort the minimum size
// is returned regardless of height. Fitting never fails.
//
// The search is a pure function of its inputs, so results can be
// memoized; [Cache] does exactly that for the span of one render.
package text

import "strings"

// DefaultLineHeight is the multiplier applied to the font size when
// computing line and block heights.
const DefaultLineHeight = 1.2

// Font size ranges per text role, in pixels.
const (
	LabelSizeMax = 24
	LabelSizeMin = 8
	ItemSizeMax  = 16
	ItemSizeMin  = 8
	TitleSizeMax = 32
	TitleSizeMin = 12
)

// Measurer reports the rendered advance width of text at a font size.
// The font weight is bound into the Measurer, not passed per call.
type Measurer interface {
	TextWidth(text string, size int) float64
}

// Options bound one fitting search.
type Options struct {
	MaxWidth   float64 // box width in pixels
	MaxHeight  float64 // box height in pixels
	MaxSize    int     // largest font size tried
	MinSize    int     // smallest font size tried
	LineHeight float64 // 0 means DefaultLineHeight
}

// Fit is the result of a fitting search.
type Fit struct {
	Lines      []string // wrapped lines, top to bottom
	Size       int      // chosen font size in pixels
	HardBroken bool     // true when a word was broken mid-run
}

// BlockHeight returns the total height of the fitted block.
func (f Fit) BlockHeight(lineHeight float64) float64 {
	if lineHeight <= 0 {
		lineHeight = DefaultLineHeight
	}
	return float64(len(f.Lines)) * float64(f.Size) * lineHeight
}

// FitText fits text into the box described by opts.
//
// Empty or whitespace-only text short-circuits to a zero-line result
// without searching. Whitespace runs are normalized to single spaces
// by the wrap; original spacing inside the text is not preserved.
func FitText(m Measurer, text string, opts Options) Fit {
	lineHeight := opts.LineHeight
	if lineHeight <= 0 {
		lineHeight = DefaultLineHeight
	}
	if opts.MinSize < 1 {
		opts.MinSize = 1
	}
	if opts.MaxSize < opts.MinSize {
		opts.MaxSize = opts.MinSize
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return Fit{Size: opts.MaxSize}
	}

	// A hard-broken candidate that fits the box is kept as fallback
	// while the search keeps looking for a clean fit further down.
	var fallback *Fit
	for size := opts.MaxSize; size >= opts.MinSize; size-- {
		lines, hard := wrapWords(m, words, size, opts.MaxWidth)
		if float64(len(lines))*float64(size)*lineHeight <= opts.MaxHeight {
			fit := Fit{Lines: lines, Size: size, HardBroken: hard}
			if !hard {
				return fit
			}
			if fallback == nil {
				fallback = &fit
			}
		}
	}
	if fallback != nil {
		return *fallback
	}

	// Nothing fit the height at any size. Render at the minimum size
	// anyway; the box clips rather than the text disappearing.
	lines, hard := wrapWords(m, words, opts.MinSize, opts.MaxWidth)
	return Fit{Lines: lines, Size: opts.MinSize, HardBroken: hard}
}

// wrapWords greedily packs words into lines narrower than maxWidth.
// A single word wider than the box is broken at rune boundaries; its
// last fragment stays open so following words continue the flow.
func wrapWords(m Measurer, words []string, size int, maxWidth float64) (lines []string, hard bool) {
	current := ""
	flush := func() {
		if current != "" {
			lines = append(lines, current)
			current = ""
		}
	}

	for _, word := range words {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if m.TextWidth(candidate, size) < maxWidth {
			current = candidate
			continue
		}

		flush()
		if m.TextWidth(word, size) < maxWidth {
			current = word
			continue
		}

		hard = true
		frags := breakWord(m, word, size, maxWidth)
		lines = append(lines, frags[:len(frags)-1]...)
		current = frags[len(frags)-1]
	}
	flush()
	return lines, hard
}

// breakWord splits a word into maximal fragments narrower than
// maxWidth. A single rune wider than the box still forms a fragment
// of its own, so the split always terminates.
func breakWord(m Measurer, word string, size int, maxWidth float64) []string {
	var frags []string
	current := ""
	for _, r := range word {
		candidate := current + string(r)
		if current != "" && m.TextWidth(candidate, size) >= maxWidth {
			frags = append(frags, current)
			current = string(r)
			continue
		}
		current = candidate
	}
	if current != "" {
		frags = append(frags, current)
	}
	return frags
}

// cacheKey identifies one fitting search. Options only holds numbers,
// so the whole key is comparable.
type cacheKey struct {
	text string
	opts Options
}

// Cache memoizes fitting results. Each render call owns one Cache per
// font weight; nothing is shared across calls, so no locking.
type Cache struct {
	m    Measurer
	fits map[cacheKey]Fit
}

// NewCache creates a Cache around a Measurer.
func NewCache(m Measurer) *Cache {
	return &Cache{m: m, fits: make(map[cacheKey]Fit)}
}

// Fit returns the memoized fit for text and opts.
func (c *Cache) Fit(text string, opts Options) Fit {
	k := cacheKey{text: text, opts: opts}
	if f, ok := c.fits[k]; ok {
		return f
	}
	f := FitText(c.m, text, opts)
	c.fits[k] = f
	return f
}
