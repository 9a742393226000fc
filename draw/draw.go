package draw

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/spektr-org/pulse/engine"
)

// ============================================================================
// DRAW — ChartSpec → PNG / SVG
// ============================================================================
// Mapping:
//   pie      → chart.PieChart, one slice per numeric value
//   bar      → chart.BarChart, one bar per numeric value
//   line     → chart.Chart, continuous series over label positions
//   scatter  → chart.Chart, dots-only continuous series
//
// Non-numeric values are skipped. Table and error specs are not drawable.
// ============================================================================

var (
	// ErrNotDrawable is returned for table and error specs.
	ErrNotDrawable = errors.New("draw: spec is not a chart")
	// ErrEmptyChart is returned when a chart has nothing numeric to draw.
	ErrEmptyChart = errors.New("draw: chart has no numeric values")
)

const (
	minBarWidth = 4
	maxBarWidth = 60
	dotWidth    = 5
)

// renderer is implemented by chart.Chart, chart.BarChart and chart.PieChart.
type renderer interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

// Render draws spec to w. Nothing is written when drawing fails.
func Render(w io.Writer, spec engine.Spec, opts ...Option) error {
	cfg := applyOptions(opts)

	cs, ok := spec.(*engine.ChartSpec)
	if !ok || cs == nil {
		return fmt.Errorf("%w: %s", ErrNotDrawable, kindOf(spec))
	}
	if len(cs.Datasets) == 0 {
		return ErrEmptyChart
	}

	provider := chart.PNG
	if cfg.Format == SVG {
		provider = chart.SVG
	}

	var (
		r   renderer
		err error
	)
	switch cs.Type {
	case engine.KindPie:
		r, err = pieChart(cs, cfg)
	case engine.KindBar:
		r, err = barChart(cs, cfg)
	case engine.KindLine:
		r, err = lineChart(cs, cfg)
	case engine.KindScatter:
		r, err = scatterChart(cs, cfg)
	default:
		return fmt.Errorf("%w: %s", ErrNotDrawable, cs.Type)
	}
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := r.Render(provider, &buf); err != nil {
		return fmt.Errorf("draw: render %s: %w", cs.Type, err)
	}
	_, err = buf.WriteTo(w)
	return err
}

func kindOf(spec engine.Spec) string {
	if spec == nil {
		return "nil"
	}
	return string(spec.Kind())
}

// ============================================================================
// CHART BUILDERS
// ============================================================================

func pieChart(cs *engine.ChartSpec, cfg *config) (chart.PieChart, error) {
	ds := cs.Datasets[0]

	var values []chart.Value
	for i, v := range ds.Data {
		f, ok := engine.Float(v)
		if !ok || f <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: labelAt(cs.Labels, i),
			Value: f,
			Style: chart.Style{
				FillColor:   colorOr(ds.ColorAt(i), chart.ColorBlue),
				StrokeColor: colorOr(ds.BorderColor, drawing.ColorWhite),
				StrokeWidth: float64(ds.BorderWidth),
			},
		})
	}
	if len(values) == 0 {
		return chart.PieChart{}, ErrEmptyChart
	}

	return chart.PieChart{
		Title:      cs.Title,
		TitleStyle: titleStyle(cs.Typography),
		Width:      cfg.Width,
		Height:     cfg.Height,
		Background: background(cs),
		Values:     values,
	}, nil
}

func barChart(cs *engine.ChartSpec, cfg *config) (chart.BarChart, error) {
	ds := cs.Datasets[0]

	var bars []chart.Value
	lo, hi := 0.0, 0.0
	for i, v := range ds.Data {
		f, ok := engine.Float(v)
		if !ok {
			continue
		}
		lo, hi = math.Min(lo, f), math.Max(hi, f)
		bars = append(bars, chart.Value{
			Label: labelAt(cs.Labels, i),
			Value: f,
			Style: chart.Style{
				FillColor:   colorOr(ds.ColorAt(i), chart.ColorBlue),
				StrokeColor: colorOr(ds.BorderColor, colorOr(ds.ColorAt(i), chart.ColorBlue)),
				StrokeWidth: float64(ds.BorderWidth),
			},
		})
	}
	if len(bars) == 0 {
		return chart.BarChart{}, ErrEmptyChart
	}
	if hi == lo {
		hi = lo + 1
	}

	return chart.BarChart{
		Title:      cs.Title,
		TitleStyle: titleStyle(cs.Typography),
		Width:      cfg.Width,
		Height:     cfg.Height,
		Background: background(cs),
		BarWidth:   barWidth(cfg.Width, len(bars)),
		YAxis: chart.YAxis{
			Range:          &chart.ContinuousRange{Min: lo, Max: hi},
			GridMajorStyle: gridStyle(cs),
		},
		Bars: bars,
	}, nil
}

func lineChart(cs *engine.ChartSpec, cfg *config) (chart.Chart, error) {
	ds := cs.Datasets[0]

	var xs, ys []float64
	var ticks []chart.Tick
	for i, v := range ds.Data {
		f, ok := engine.Float(v)
		if !ok {
			continue
		}
		x := float64(i)
		xs = append(xs, x)
		ys = append(ys, f)
		ticks = append(ticks, chart.Tick{Value: x, Label: labelAt(cs.Labels, i)})
	}
	if len(xs) == 0 {
		return chart.Chart{}, ErrEmptyChart
	}
	// go-chart derives the x range from the ticks, so one tick needs
	// blank neighbors to span a non-zero range.
	if len(ticks) == 1 {
		r := paddedRange(xs)
		ticks = []chart.Tick{{Value: r.Min}, ticks[0], {Value: r.Max}}
	}

	stroke := colorOr(ds.BorderColor, chart.ColorBlue)
	series := chart.ContinuousSeries{
		Name:    ds.Label,
		XValues: xs,
		YValues: ys,
		Style: chart.Style{
			StrokeColor: stroke,
			StrokeWidth: 2,
			FillColor:   colorOr(ds.BackgroundColor, stroke.WithAlpha(51)),
			DotColor:    stroke,
			DotWidth:    3,
		},
	}

	c := chart.Chart{
		Title:      cs.Title,
		TitleStyle: titleStyle(cs.Typography),
		Width:      cfg.Width,
		Height:     cfg.Height,
		Background: background(cs),
		XAxis: chart.XAxis{
			Ticks: ticks,
			Range: paddedRange(xs),
		},
		YAxis: chart.YAxis{
			Range:          paddedRange(ys),
			GridMajorStyle: gridStyle(cs),
		},
		Series: []chart.Series{series},
	}
	if cs.Legend.Display {
		c.Elements = []chart.Renderable{chart.Legend(&c)}
	}
	return c, nil
}

func scatterChart(cs *engine.ChartSpec, cfg *config) (chart.Chart, error) {
	ds := cs.Datasets[0]

	var xs, ys []float64
	for _, p := range ds.Points {
		x, okX := engine.Float(p.X)
		y, okY := engine.Float(p.Y)
		if !okX || !okY {
			continue
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	if len(xs) == 0 {
		return chart.Chart{}, ErrEmptyChart
	}

	dot := colorOr(ds.BackgroundColor, colorOr(ds.BorderColor, chart.ColorBlue))
	c := chart.Chart{
		Title:      cs.Title,
		TitleStyle: titleStyle(cs.Typography),
		Width:      cfg.Width,
		Height:     cfg.Height,
		Background: background(cs),
		XAxis:      chart.XAxis{Range: paddedRange(xs)},
		YAxis: chart.YAxis{
			Range:          paddedRange(ys),
			GridMajorStyle: gridStyle(cs),
		},
		Series: []chart.Series{chart.ContinuousSeries{
			Name:    ds.Label,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    dotWidth,
				DotColor:    dot,
			},
		}},
	}
	if cs.Legend.Display {
		c.Elements = []chart.Renderable{chart.Legend(&c)}
	}
	return c, nil
}

// ============================================================================
// HELPERS
// ============================================================================

func labelAt(labels []string, i int) string {
	if i >= 0 && i < len(labels) {
		return labels[i]
	}
	return ""
}

// titleStyle carries the font size only; go-chart renders one typeface.
func titleStyle(t engine.Typography) chart.Style {
	st := chart.Style{}
	if t.FontSize > 0 {
		st.FontSize = float64(t.FontSize)
	}
	return st
}

func background(cs *engine.ChartSpec) chart.Style {
	st := chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}}
	if c, ok := parseColor(cs.BackgroundColor); ok {
		st.FillColor = c
	}
	return st
}

func gridStyle(cs *engine.ChartSpec) chart.Style {
	c, ok := parseColor(cs.GridColor)
	if !ok {
		return chart.Style{}
	}
	return chart.Style{StrokeColor: c, StrokeWidth: 1}
}

func barWidth(canvas, n int) int {
	w := canvas / (2 * n)
	if w < minBarWidth {
		return minBarWidth
	}
	if w > maxBarWidth {
		return maxBarWidth
	}
	return w
}

// paddedRange returns an axis range covering values. A flat series gets
// one unit of room on each side; go-chart rejects zero-width ranges.
func paddedRange(values []float64) *chart.ContinuousRange {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	if lo == hi {
		lo, hi = lo-1, hi+1
	}
	return &chart.ContinuousRange{Min: lo, Max: hi}
}
