package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ============================================================================
// COLOR RESOLVER — count + ChartConfig → ordered colors
// ============================================================================
// Priority chain, first match wins:
//   1. ChartConfig.Colors      explicit palette, cycled
//   2. ChartStyle color name   one color repeated
//   3. ChartStyle theme name   theme palette, cycled
//   4. default palette         cycled
//
// Tables below are read-only. Accessors hand out copies.
// ============================================================================

// defaultColors is the fallback palette, cycled modulo its length.
var defaultColors = [...]string{
	"#FF6384", "#36A2EB", "#FFCE56", "#4BC0C0", "#9966FF",
	"#FF9F40", "#FF6384", "#C9CBCF", "#4BC0C0", "#FF6384",
}

var namedColors = map[string]string{
	"light_blue": "#ADD8E6",
	"light blue": "#ADD8E6",
	"blue":       "#36A2EB",
	"red":        "#FF6384",
	"green":      "#4BC0C0",
	"yellow":     "#FFCE56",
	"purple":     "#9966FF",
	"orange":     "#FF9F40",
	"pink":       "#FFB1C1",
	"gray":       "#C9CBCF",
	"grey":       "#C9CBCF",
}

var themes = map[string][5]string{
	"pastel":  {"#FFB3BA", "#FFDFBA", "#FFFFBA", "#BAFFC9", "#BAE1FF"},
	"vibrant": {"#FF0054", "#FF5400", "#FFBD00", "#00C49A", "#390099"},
}

// ResolveColors returns exactly count colors for cfg. cfg may be nil.
// The result depends only on its inputs.
func ResolveColors(cfg *ChartConfig, count int) []string {
	if count <= 0 {
		return []string{}
	}

	out := make([]string, count)

	if cfg != nil && len(cfg.Colors) > 0 {
		for i := range out {
			out[i] = cfg.Colors[i%len(cfg.Colors)]
		}
		return out
	}

	style := ""
	if cfg != nil {
		style = strings.ToLower(cfg.ChartStyle)
	}

	if c, ok := namedColors[style]; ok {
		for i := range out {
			out[i] = c
		}
		return out
	}

	if theme, ok := themes[style]; ok {
		for i := range out {
			out[i] = theme[i%len(theme)]
		}
		return out
	}

	for i := range out {
		out[i] = defaultColors[i%len(defaultColors)]
	}
	return out
}

// DefaultPalette returns a copy of the default palette.
func DefaultPalette() []string {
	out := make([]string, len(defaultColors))
	copy(out, defaultColors[:])
	return out
}

// Palette returns a copy of the named theme palette (case-insensitive).
func Palette(name string) ([]string, bool) {
	theme, ok := themes[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	out := make([]string, len(theme))
	copy(out, theme[:])
	return out, true
}

// NamedColor looks up a single color by name (case-insensitive).
func NamedColor(name string) (string, bool) {
	c, ok := namedColors[strings.ToLower(name)]
	return c, ok
}

// WithAlpha converts a hex color ("#36A2EB", "#fff", "36A2EB") into a CSS
// rgba() string with the given alpha.
func WithAlpha(color string, alpha float64) (string, error) {
	hex := strings.TrimSpace(color)
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return "", fmt.Errorf("parse color %q: %w", color, err)
	}
	r, g, b := c.RGB255()
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, strconv.FormatFloat(alpha, 'f', -1, 64)), nil
}
