package preview

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/spektr-org/pulse/engine"
	"github.com/spektr-org/pulse/stats"
)

// ============================================================================
// PREVIEW — Spec → styled terminal text
// ============================================================================
// pie / bar / line  → one row per point: ■ label  value  ████
// scatter           → one row per point: ● (x, y)
// table             → bordered table, one page at a time
// error             → red alert box
// ============================================================================

const (
	pointMarker   = "■"
	scatterMarker = "●"
	barCell       = "█"
	noData        = "No data"
)

// Render returns a terminal rendering of spec.
func Render(spec engine.Spec, opts ...Option) string {
	cfg := applyOptions(opts)

	switch s := spec.(type) {
	case *engine.ErrorSpec:
		if s != nil {
			return renderError(s)
		}
	case *engine.TableSpec:
		if s != nil {
			return renderTable(s, cfg)
		}
	case *engine.ChartSpec:
		if s != nil {
			return renderChart(s, cfg)
		}
	}
	return mutedStyle.Render(noData)
}

// Query renders the query text echoed by the backend.
func Query(sql string) string {
	return mutedStyle.Render(strings.TrimSpace(sql))
}

func renderError(es *engine.ErrorSpec) string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		alertTitleStyle.Render(es.Title),
		es.Message,
	)
	return alertStyle.Render(body)
}

// ============================================================================
// CHARTS
// ============================================================================

func renderChart(cs *engine.ChartSpec, cfg *config) string {
	var b strings.Builder
	if cs.Title != "" {
		b.WriteString(titleStyle(cs.Typography).Render(cs.Title))
		b.WriteString("\n")
	}

	if len(cs.Datasets) == 0 {
		b.WriteString(mutedStyle.Render(noData))
		return b.String()
	}
	ds := cs.Datasets[0]

	if cs.Type == engine.KindScatter {
		return b.String() + renderPoints(ds)
	}

	if len(ds.Data) == 0 {
		b.WriteString(mutedStyle.Render(noData))
		return b.String()
	}

	labelWidth, valueWidth := 0, 0
	values := make([]string, len(ds.Data))
	peak := 0.0
	for i, v := range ds.Data {
		labelWidth = max(labelWidth, lipgloss.Width(labelAt(cs.Labels, i)))
		values[i] = formatValue(v)
		valueWidth = max(valueWidth, lipgloss.Width(values[i]))
		if f, ok := engine.Float(v); ok {
			peak = math.Max(peak, math.Abs(f))
		}
	}

	labelStyle := lipgloss.NewStyle().Width(labelWidth)
	valueStyle := lipgloss.NewStyle().Width(valueWidth).Align(lipgloss.Right)

	lines := make([]string, 0, len(ds.Data))
	for i, v := range ds.Data {
		color := swatch(ds.ColorAt(i))
		line := fmt.Sprintf("%s %s  %s",
			color.Render(pointMarker),
			labelStyle.Render(labelAt(cs.Labels, i)),
			valueStyle.Render(values[i]),
		)
		if n := barLength(v, peak, cfg.BarWidth); n > 0 {
			line += "  " + color.Render(strings.Repeat(barCell, n))
		}
		lines = append(lines, line)
	}
	b.WriteString(strings.Join(lines, "\n"))

	if ds.Label != "" && cs.Type != engine.KindPie {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(ds.Label))
	}
	return b.String()
}

func renderPoints(ds engine.Dataset) string {
	if len(ds.Points) == 0 {
		return mutedStyle.Render(noData)
	}
	color := swatch(ds.ColorAt(0))
	lines := make([]string, 0, len(ds.Points))
	for _, p := range ds.Points {
		lines = append(lines, fmt.Sprintf("%s (%s, %s)",
			color.Render(scatterMarker), formatValue(p.X), formatValue(p.Y)))
	}
	return strings.Join(lines, "\n")
}

// barLength scales |v| against peak. Non-numeric values get no bar.
func barLength(v any, peak float64, width int) int {
	f, ok := engine.Float(v)
	if !ok || peak == 0 || width <= 0 {
		return 0
	}
	n := int(math.Round(math.Abs(f) / peak * float64(width)))
	if n == 0 && f != 0 {
		n = 1
	}
	return n
}

// ============================================================================
// TABLES
// ============================================================================

func renderTable(ts *engine.TableSpec, cfg *config) string {
	var b strings.Builder
	if ts.Title != "" {
		b.WriteString(titleStyle(ts.Typography).Render(ts.Title))
		b.WriteString("\n")
	}

	if len(ts.Columns) == 0 || len(ts.Rows) == 0 {
		b.WriteString(mutedStyle.Render(noData))
		return b.String()
	}

	pages := ts.PageCount()
	page := clamp(cfg.Page, 1, pages)

	headers := make([]string, len(ts.Columns))
	for i, col := range ts.Columns {
		headers[i] = col.Label
	}

	rows := make([][]string, 0, ts.PageSize)
	for _, r := range ts.Page(page) {
		row := make([]string, len(r.Cells))
		for i, c := range r.Cells {
			row[i] = formatValue(c)
		}
		rows = append(rows, row)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col < len(ts.Columns) && ts.Columns[col].Align == "right" {
				return cellStyle.Align(lipgloss.Right)
			}
			return cellStyle
		})

	b.WriteString(t.String())
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(pageFooter(page, pages, len(ts.Rows))))
	return b.String()
}

func pageFooter(page, pages, total int) string {
	return fmt.Sprintf("Page %d of %d · %s rows", page, pages, stats.FormatInt(int64(total)))
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

// formatValue renders a cell: whole numbers with separators, fractions with
// two decimals, nil as empty.
func formatValue(v any) string {
	f, ok := engine.Float(v)
	if !ok {
		return engine.DisplayString(v)
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return stats.FormatInt(int64(f))
	}
	return strconv.FormatFloat(f, 'f', 2, 64)
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
