package draw

import (
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/spektr-org/pulse/engine"
)

// parseColor turns a spec color into a drawing color.
// Accepts "#RRGGBB", "#RGB", "RRGGBB", "rgb(r, g, b)", "rgba(r, g, b, a)"
// and the palette's named colors.
func parseColor(s string) (drawing.Color, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return drawing.Color{}, false
	}

	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "rgb") {
		return parseRGBFunc(lower)
	}

	if hex, ok := engine.NamedColor(s); ok {
		s = hex
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return drawing.Color{}, false
	}
	r, g, b := c.RGB255()
	return drawing.Color{R: r, G: g, B: b, A: 255}, true
}

// parseRGBFunc parses "rgb(r,g,b)" and "rgba(r,g,b,a)" with any spacing.
func parseRGBFunc(s string) (drawing.Color, bool) {
	open, end := strings.IndexByte(s, '('), strings.LastIndexByte(s, ')')
	if open < 0 || end != len(s)-1 || end < open {
		return drawing.Color{}, false
	}
	name := strings.TrimSpace(s[:open])
	parts := strings.Split(s[open+1:end], ",")

	switch {
	case name == "rgb" && len(parts) == 3:
	case name == "rgba" && len(parts) == 4:
	default:
		return drawing.Color{}, false
	}

	var rgb [3]uint8
	for i := range rgb {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || v < 0 || v > 255 {
			return drawing.Color{}, false
		}
		rgb[i] = uint8(v)
	}

	a := 1.0
	if len(parts) == 4 {
		var err error
		a, err = strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return drawing.Color{}, false
		}
	}

	return drawing.Color{R: rgb[0], G: rgb[1], B: rgb[2], A: uint8(math.Round(a * 255))}, true
}

// colorOr parses s, falling back to def.
func colorOr(s string, def drawing.Color) drawing.Color {
	if c, ok := parseColor(s); ok {
		return c
	}
	return def
}
