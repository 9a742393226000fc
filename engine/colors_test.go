package engine

import (
	"reflect"
	"testing"
)

// ============================================================================
// COLOR RESOLVER TESTS
// ============================================================================

func TestResolveColorsCount(t *testing.T) {
	configs := map[string]*ChartConfig{
		"nil":      nil,
		"empty":    {},
		"explicit": {Colors: []string{"#111", "#222", "#333"}},
		"named":    {ChartStyle: "red"},
		"theme":    {ChartStyle: "vibrant"},
		"unknown":  {ChartStyle: "plaid"},
	}

	for name, cfg := range configs {
		for _, count := range []int{0, 1, 4, 5, 10, 11, 37} {
			got := ResolveColors(cfg, count)
			if len(got) != count {
				t.Errorf("%s: ResolveColors(count=%d) returned %d colors", name, count, len(got))
			}
			again := ResolveColors(cfg, count)
			if !reflect.DeepEqual(got, again) {
				t.Errorf("%s: ResolveColors(count=%d) not deterministic: %v vs %v", name, count, got, again)
			}
		}
	}
}

func TestResolveColorsNegativeCount(t *testing.T) {
	got := ResolveColors(nil, -3)
	if got == nil || len(got) != 0 {
		t.Fatalf("ResolveColors(-3) = %#v, want empty non-nil slice", got)
	}
}

func TestResolveColorsExplicitCycle(t *testing.T) {
	cfg := &ChartConfig{Colors: []string{"#111", "#222"}}
	got := ResolveColors(cfg, 5)
	want := []string{"#111", "#222", "#111", "#222", "#111"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ResolveColors = %v, want %v", got, want)
	}
}

func TestResolveColorsExplicitBeatsStyle(t *testing.T) {
	cfg := &ChartConfig{Colors: []string{"#abcdef"}, ChartStyle: "pastel"}
	for i, c := range ResolveColors(cfg, 3) {
		if c != "#abcdef" {
			t.Fatalf("color[%d] = %q, want explicit palette", i, c)
		}
	}
}

func TestResolveColorsNamedColor(t *testing.T) {
	tests := []struct {
		style string
		want  string
	}{
		{"blue", "#36A2EB"},
		{"RED", "#FF6384"},
		{"Light Blue", "#ADD8E6"},
		{"light_blue", "#ADD8E6"},
		{"grey", "#C9CBCF"},
		{"Gray", "#C9CBCF"},
	}

	for _, tt := range tests {
		got := ResolveColors(&ChartConfig{ChartStyle: tt.style}, 4)
		for i, c := range got {
			if c != tt.want {
				t.Errorf("style %q: color[%d] = %q, want %q", tt.style, i, c, tt.want)
			}
		}
	}
}

func TestResolveColorsThemeMixedCase(t *testing.T) {
	pastel, ok := Palette("pastel")
	if !ok {
		t.Fatal("pastel palette missing")
	}

	got := ResolveColors(&ChartConfig{ChartStyle: "Pastel"}, 7)
	if !reflect.DeepEqual(got[:5], pastel) {
		t.Fatalf("first five = %v, want %v", got[:5], pastel)
	}
	if got[5] != got[0] || got[6] != got[1] {
		t.Fatalf("theme did not cycle at 5: %v", got)
	}
}

func TestResolveColorsDefaultPalette(t *testing.T) {
	def := DefaultPalette()
	got := ResolveColors(&ChartConfig{ChartStyle: "light blue-ish"}, 12)
	if !reflect.DeepEqual(got[:10], def) {
		t.Fatalf("default palette mismatch: %v", got[:10])
	}
	if got[10] != def[0] || got[11] != def[1] {
		t.Fatalf("default did not cycle at 10: %v", got)
	}
}

func TestPaletteAccessorsReturnCopies(t *testing.T) {
	p, _ := Palette("vibrant")
	p[0] = "#000000"
	again, _ := Palette("vibrant")
	if again[0] == "#000000" {
		t.Fatal("Palette exposed shared state")
	}

	d := DefaultPalette()
	d[0] = "#000000"
	if DefaultPalette()[0] == "#000000" {
		t.Fatal("DefaultPalette exposed shared state")
	}
}

func TestWithAlpha(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"#36A2EB", "rgba(54, 162, 235, 0.2)"},
		{"36A2EB", "rgba(54, 162, 235, 0.2)"},
		{"#fff", "rgba(255, 255, 255, 0.2)"},
	}
	for _, tt := range tests {
		got, err := WithAlpha(tt.in, 0.2)
		if err != nil {
			t.Fatalf("WithAlpha(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("WithAlpha(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if _, err := WithAlpha("tomato", 0.2); err == nil {
		t.Error("WithAlpha(tomato) expected error")
	}
}
