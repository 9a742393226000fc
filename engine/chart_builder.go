package engine

// ============================================================================
// CHART BUILDER — Produces ChartSpec for pie / bar / scatter / line
// ============================================================================
// Field positions: record.Value(0) is the category (x), record.Value(1) the
// value (y). Short records yield nil, which drawing treats as a gap.
// ============================================================================

const (
	defaultSeriesLabel    = "Value"
	defaultLegendPosition = "bottom"

	// lineTension is the curve smoothing constant for line charts.
	lineTension = 0.1
	// lineFillAlpha is the opacity of the derived line fill.
	lineFillAlpha = 0.2
)

func newChartSpec(kind Kind, result VisualizationResult) *ChartSpec {
	spec := &ChartSpec{
		Type:       kind,
		Title:      result.Title,
		Typography: ResolveTypography(result.ChartConfig),
		Labels:     []string{},
		Datasets:   []Dataset{},
	}
	if cfg := result.ChartConfig; cfg != nil {
		spec.BackgroundColor = cfg.BackgroundColor
		spec.GridColor = cfg.GridColor
	}
	return spec
}

func buildPie(result VisualizationResult) *ChartSpec {
	spec := newChartSpec(KindPie, result)
	labels, values := extractSeries(result.Rows)

	ds := Dataset{
		Label:            seriesLabel(result.ChartConfig),
		Data:             values,
		BackgroundColors: ResolveColors(result.ChartConfig, len(result.Rows)),
		BorderWidth:      1,
	}
	if cfg := result.ChartConfig; cfg != nil {
		ds.BorderColor = cfg.BorderColor
	}

	spec.Labels = labels
	spec.Datasets = append(spec.Datasets, ds)
	spec.Legend = Legend{Display: true, Position: legendPosition(result.ChartConfig)}
	return spec
}

func buildBar(result VisualizationResult) *ChartSpec {
	spec := newChartSpec(KindBar, result)
	labels, values := extractSeries(result.Rows)

	ds := Dataset{
		Label:            seriesLabel(result.ChartConfig),
		Data:             values,
		BackgroundColors: ResolveColors(result.ChartConfig, len(result.Rows)),
		BorderWidth:      1,
	}
	if cfg := result.ChartConfig; cfg != nil {
		ds.BorderColor = cfg.BorderColor
	}

	spec.Labels = labels
	spec.Datasets = append(spec.Datasets, ds)
	spec.Legend = Legend{Display: false}
	return spec
}

func buildScatter(result VisualizationResult) *ChartSpec {
	spec := newChartSpec(KindScatter, result)
	color := ResolveColors(result.ChartConfig, 1)[0]

	points := make([]Point, 0, len(result.Rows))
	for _, r := range result.Rows {
		points = append(points, Point{
			X: ToNumber(r.Value(0)),
			Y: ToNumber(r.Value(1)),
		})
	}

	spec.Datasets = append(spec.Datasets, Dataset{
		Label:           result.Title,
		Points:          points,
		BackgroundColor: color,
		BorderColor:     color,
	})
	spec.Legend = Legend{Display: false}
	return spec
}

func buildLine(result VisualizationResult, cfg *config) *ChartSpec {
	spec := newChartSpec(KindLine, result)
	labels, values := extractSeries(result.Rows)

	border := ""
	fill := ""
	if cc := result.ChartConfig; cc != nil {
		border = cc.BorderColor
		fill = cc.BackgroundColor
	}
	if border == "" {
		border = ResolveColors(result.ChartConfig, 1)[0]
	}
	if fill == "" {
		rgba, err := WithAlpha(border, lineFillAlpha)
		if err != nil {
			cfg.Logger.Debug("pulse: cannot derive line fill, using border color", "color", border, "err", err)
			rgba = border
		}
		fill = rgba
	}

	spec.Labels = labels
	spec.Datasets = append(spec.Datasets, Dataset{
		Label:           seriesLabel(result.ChartConfig),
		Data:            values,
		BorderColor:     border,
		BackgroundColor: fill,
		Tension:         lineTension,
	})
	// The canvas background stays empty for lines: background_color is the fill.
	spec.BackgroundColor = ""
	spec.Legend = Legend{Display: false}
	return spec
}

// ============================================================================
// HELPERS
// ============================================================================

// extractSeries reads category labels and values from the first two fields.
func extractSeries(rows []Record) ([]string, []any) {
	labels := make([]string, 0, len(rows))
	values := make([]any, 0, len(rows))
	for _, r := range rows {
		labels = append(labels, DisplayString(r.Value(0)))
		values = append(values, ToNumber(r.Value(1)))
	}
	return labels, values
}

func seriesLabel(cfg *ChartConfig) string {
	if cfg != nil && cfg.YField != "" {
		return cfg.YField
	}
	return defaultSeriesLabel
}

func legendPosition(cfg *ChartConfig) string {
	if cfg != nil && cfg.LegendPosition != "" {
		return cfg.LegendPosition
	}
	return defaultLegendPosition
}
