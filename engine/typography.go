package engine

import (
	"strconv"
	"strings"
)

// Title font sizes, px.
const (
	FontSizeSmall = 12
	FontSizeLarge = 18
)

// titleRules are applied independently and in order; later size rules win.
var titleRules = []struct {
	substr string
	apply  func(*Typography)
}{
	{"bold", func(t *Typography) { t.Bold = true }},
	{"italic", func(t *Typography) { t.Italic = true }},
	{"large", func(t *Typography) { t.FontSize = FontSizeLarge }},
	{"small", func(t *Typography) { t.FontSize = FontSizeSmall }},
}

// ResolveTypography parses ChartConfig.TitleStyle and applies the explicit
// FontWeight/FontSize overrides on top. Unknown text is ignored.
func ResolveTypography(cfg *ChartConfig) Typography {
	var t Typography
	if cfg == nil {
		return t
	}

	if style := strings.ToLower(cfg.TitleStyle); style != "" {
		for _, rule := range titleRules {
			if strings.Contains(style, rule.substr) {
				rule.apply(&t)
			}
		}
	}

	if w := strings.TrimSpace(cfg.FontWeight); w != "" {
		t.FontWeight = w
		t.Bold = isBoldWeight(w)
	}

	if px, ok := parseFontSize(cfg.FontSize); ok {
		t.FontSize = px
	}

	return t
}

func isBoldWeight(w string) bool {
	switch strings.ToLower(w) {
	case "bold", "bolder":
		return true
	}
	n, err := strconv.Atoi(w)
	return err == nil && n >= 600
}

// parseFontSize accepts "22px", "22", "small" and "large".
func parseFontSize(s string) (int, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "":
		return 0, false
	case "small":
		return FontSizeSmall, true
	case "large":
		return FontSizeLarge, true
	}
	n, err := strconv.ParseFloat(strings.TrimSuffix(s, "px"), 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return int(n + 0.5), true
}
