// Package tierlist defines the tier-list configuration model.
//
// A Config describes one tier list: an ordered ladder of tiers and a
// flat set of items that reference tiers by id or display label. The
// model is wire-compatible with the JSON accepted by the CLI, HTTP
// API, and MCP tool, and carries no state beyond one render call.
package tierlist

import (
	"encoding/json"
	"os"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/carmex/tierMCP/pkg/errors"
)

// Length caps on user-supplied display strings.
const (
	MaxLabelLen = 50
	MaxTextLen  = 50
)

// Tier is one row of the ladder.
type Tier struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// Item is one entry placed into a tier. Tier references the target
// tier by id or display label. An item renders its image when
// ImageURL is set and fetchable, its text otherwise, and a
// placeholder when it has neither.
type Item struct {
	ID       string `json:"id"`
	Tier     string `json:"tier"`
	ImageURL string `json:"imageUrl,omitempty"`
	Text     string `json:"text,omitempty"`
}

// Config is a complete tier-list description.
type Config struct {
	Title           string `json:"title,omitempty"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
	Tiers           []Tier `json:"tiers,omitempty"`
	Items           []Item `json:"items"`
}

// DefaultTiers returns the standard S through F ladder with the
// classic row colors.
func DefaultTiers() []Tier {
	return []Tier{
		{ID: "S", Label: "S", Color: "#FF7F7F"},
		{ID: "A", Label: "A", Color: "#FFBF7F"},
		{ID: "B", Label: "B", Color: "#FFDF7F"},
		{ID: "C", Label: "C", Color: "#FFFF7F"},
		{ID: "D", Label: "D", Color: "#BFFF7F"},
		{ID: "F", Label: "F", Color: "#7FBFFF"},
	}
}

// EffectiveTiers returns the configured ladder, or the default ladder
// when the config does not declare tiers.
func (c *Config) EffectiveTiers() []Tier {
	if len(c.Tiers) > 0 {
		return c.Tiers
	}
	return DefaultTiers()
}

// Validate checks the config against the schema rules. A nil Items
// slice is treated as an empty tier list, which is valid and renders
// the ladder with empty rows.
func (c *Config) Validate() error {
	if c.BackgroundColor != "" {
		if _, err := ParseColor(c.BackgroundColor); err != nil {
			return errors.New(errors.ErrCodeInvalidInput, "invalid backgroundColor %q", c.BackgroundColor)
		}
	}

	seen := make(map[string]bool, len(c.Tiers))
	for i, t := range c.Tiers {
		if t.ID == "" {
			return errors.New(errors.ErrCodeInvalidInput, "tier %d has no id", i)
		}
		if seen[t.ID] {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate tier id %q", t.ID)
		}
		seen[t.ID] = true
		if len(t.Label) > MaxLabelLen {
			return errors.New(errors.ErrCodeInvalidInput, "tier %q label exceeds %d characters", t.ID, MaxLabelLen)
		}
		if t.Color == "" {
			return errors.New(errors.ErrCodeInvalidInput, "tier %q has no color", t.ID)
		}
		if _, err := ParseColor(t.Color); err != nil {
			return errors.New(errors.ErrCodeInvalidInput, "tier %q has invalid color %q", t.ID, t.Color)
		}
	}

	for i, item := range c.Items {
		if item.ID == "" {
			return errors.New(errors.ErrCodeInvalidInput, "item %d has no id", i)
		}
		if len(item.Text) > MaxTextLen {
			return errors.New(errors.ErrCodeInvalidInput, "item %q text exceeds %d characters", item.ID, MaxTextLen)
		}
	}

	return nil
}

// ParseColor parses a CSS-style hex color ("#RGB" or "#RRGGBB").
func ParseColor(s string) (colorful.Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse color %q", s)
	}
	return c, nil
}

// Parse decodes a JSON config. It does not validate; callers run
// Validate before rendering.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse tier-list config")
	}
	return &cfg, nil
}

// ReadFile loads and decodes a JSON config file.
func ReadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config file %s", path)
	}
	return Parse(data)
}
